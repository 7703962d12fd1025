package outfitbloom

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/outfitbloom/outfitbloom-backend/internal/cache"
	"github.com/outfitbloom/outfitbloom-backend/internal/config"
	"github.com/outfitbloom/outfitbloom-backend/internal/exchange"
	"github.com/outfitbloom/outfitbloom-backend/internal/gateway"
	"github.com/outfitbloom/outfitbloom-backend/internal/geoip"
	"github.com/outfitbloom/outfitbloom-backend/internal/lib/jwt"
	"github.com/outfitbloom/outfitbloom-backend/internal/lib/sl"
	"github.com/outfitbloom/outfitbloom-backend/internal/migrations"
	rabbit "github.com/outfitbloom/outfitbloom-backend/internal/rabbitmq"
	affiliateservice "github.com/outfitbloom/outfitbloom-backend/internal/services/affiliate"
	authservice "github.com/outfitbloom/outfitbloom-backend/internal/services/auth"
	currencyservice "github.com/outfitbloom/outfitbloom-backend/internal/services/currency"
	gemsservice "github.com/outfitbloom/outfitbloom-backend/internal/services/gems"
	paymentservice "github.com/outfitbloom/outfitbloom-backend/internal/services/payment"
	recommendationservice "github.com/outfitbloom/outfitbloom-backend/internal/services/recommendation"
	taskservice "github.com/outfitbloom/outfitbloom-backend/internal/services/task"
	wardrobeservice "github.com/outfitbloom/outfitbloom-backend/internal/services/wardrobe"
	"github.com/outfitbloom/outfitbloom-backend/internal/storage/repository"
)

// App — HTTP-приложение со всеми зависимостями.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	geo      *geoip.Resolver
	amqpConn *amqp.Connection
	amqpCh   *amqp.Channel
}

// New собирает приложение: хранилище с миграциями, кеш, geoip, платежные
// шлюзы, провайдер курсов, брокер уведомлений и все сервисы с маршрутами.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	geoResolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		return nil, err
	}

	razorpayClient := gateway.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	stripeClient := gateway.NewStripeClient(cfg.StripeSecretKey)
	exchangeClient := exchange.NewClient(cfg.ExchangeAPIKey)

	// Брокер уведомлений опционален: без него квитанции не отправляются.
	var amqpConn *amqp.Connection
	var amqpCh *amqp.Channel
	var publisher paymentservice.ReceiptPublisher
	if cfg.RabbitMQConnection != "" {
		amqpConn, err = rabbit.Connect(cfg.RabbitMQConnection, cfg.ConnectRetries, cfg.ConnectDelay)
		if err != nil {
			return nil, err
		}
		amqpCh, err = rabbit.SetupChannel(amqpConn, rabbit.GetNotificationQueues())
		if err != nil {
			amqpConn.Close()
			return nil, err
		}
		publisher = rabbit.NewReceiptPublisher(amqpCh)
	} else {
		logger.Warn("rabbitmq connection is not configured, receipts disabled")
	}

	// Хранилище изображений опционально: без него загрузка в гардероб отключена.
	var uploader wardrobeservice.ImageUploader
	if cfg.CloudinaryCloudName != "" {
		uploader = gateway.NewCloudinaryClient(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	} else {
		logger.Warn("cloudinary is not configured, wardrobe image uploads disabled")
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	svc := Services{
		Auth:     authservice.New(db, jwtMaker),
		Task:     taskservice.New(db, cacheRedis, logger),
		Wardrobe: wardrobeservice.New(db, cacheRedis, uploader, logger),
		Payment: paymentservice.New(db, razorpayClient, stripeClient, exchangeClient,
			geoResolver, publisher, paymentservice.Options{
				PriceUSD:         cfg.PriceUSD,
				GSTRate:          cfg.GSTRate,
				StripeSuccessURL: cfg.StripeSuccessURL,
				StripeCancelURL:  cfg.StripeCancelURL,
				RazorpaySecret:   cfg.RazorpayKeySecret,
			}, logger),
		Currency:       currencyservice.New(exchangeClient),
		Recommendation: recommendationservice.New(db),
		Gems:           gemsservice.New(db),
		Affiliate:      affiliateservice.New(db),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, svc, cfg.WebhookSecret)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		geo:      geoResolver,
		amqpConn: amqpConn,
		amqpCh:   amqpCh,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.amqpCh != nil {
		if err := a.amqpCh.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if err := a.geo.Close(); err != nil {
		a.logger.Error("failed to close geoip database", sl.Err(err))
	}
	if err := a.db.DB.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
