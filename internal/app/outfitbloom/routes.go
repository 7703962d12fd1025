// Package outfitbloom собирает HTTP-приложение: хранилище, кеш, платежные
// шлюзы, сервисы и маршруты.
package outfitbloom

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	affiliatecreate "github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/affiliate/create"
	affiliatelist "github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/affiliate/list"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/auth/login"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/auth/register"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/currency/convert"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/currency/rates"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/currency/supported"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/gems/reward"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/health"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/payment/createorder"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/payment/history"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/payment/paymentwebhook"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/payment/verify"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/recommendation/generate"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/recommendation/suggestions"
	taskcreate "github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/task/create"
	tasklist "github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/task/list"
	taskremove "github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/task/remove"
	taskupdate "github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/task/update"
	wardrobeanalytics "github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/wardrobe/analytics"
	wardrobecreate "github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/wardrobe/create"
	wardrobelist "github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/wardrobe/list"
	wardroberemove "github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/wardrobe/remove"
	wardrobesearch "github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/wardrobe/search"
	wardrobeupdate "github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/wardrobe/update"
	wardrobeupload "github.com/outfitbloom/outfitbloom-backend/internal/http/handlers/wardrobe/upload"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/middlewarectx"

	affiliateservice "github.com/outfitbloom/outfitbloom-backend/internal/services/affiliate"
	authservice "github.com/outfitbloom/outfitbloom-backend/internal/services/auth"
	currencyservice "github.com/outfitbloom/outfitbloom-backend/internal/services/currency"
	gemsservice "github.com/outfitbloom/outfitbloom-backend/internal/services/gems"
	paymentservice "github.com/outfitbloom/outfitbloom-backend/internal/services/payment"
	recommendationservice "github.com/outfitbloom/outfitbloom-backend/internal/services/recommendation"
	taskservice "github.com/outfitbloom/outfitbloom-backend/internal/services/task"
	wardrobeservice "github.com/outfitbloom/outfitbloom-backend/internal/services/wardrobe"
)

// Services — сервисы, используемые маршрутами приложения.
type Services struct {
	Auth           *authservice.Service
	Task           *taskservice.Service
	Wardrobe       *wardrobeservice.Service
	Payment        *paymentservice.Service
	Currency       *currencyservice.Service
	Recommendation *recommendationservice.Service
	Gems           *gemsservice.Service
	Affiliate      *affiliateservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, webhookSecret string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, svc.Auth).ServeHTTP)

		r.Get("/currency/rates", rates.New(logger, svc.Currency).ServeHTTP)
		r.Get("/currency/convert", convert.New(logger, svc.Currency).ServeHTTP)
		r.Get("/currency/supported", supported.New(logger, svc.Currency).ServeHTTP)

		r.Get("/affiliates", affiliatelist.New(logger, svc.Affiliate).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/tasks", taskcreate.New(logger, svc.Task).ServeHTTP)
			r.Get("/tasks", tasklist.New(logger, svc.Task).ServeHTTP)
			r.Put("/tasks/{id}", taskupdate.New(logger, svc.Task).ServeHTTP)
			r.Delete("/tasks/{id}", taskremove.New(logger, svc.Task).ServeHTTP)

			r.Post("/wardrobe", wardrobecreate.New(logger, svc.Wardrobe).ServeHTTP)
			r.Get("/wardrobe", wardrobelist.New(logger, svc.Wardrobe).ServeHTTP)
			r.Get("/wardrobe/search", wardrobesearch.New(logger, svc.Wardrobe).ServeHTTP)
			r.Get("/wardrobe/analytics", wardrobeanalytics.New(logger, svc.Wardrobe).ServeHTTP)
			r.Post("/wardrobe/upload", wardrobeupload.New(logger, svc.Wardrobe).ServeHTTP)
			r.Put("/wardrobe/{id}", wardrobeupdate.New(logger, svc.Wardrobe).ServeHTTP)
			r.Delete("/wardrobe/{id}", wardroberemove.New(logger, svc.Wardrobe).ServeHTTP)

			r.Post("/payments/create-order", createorder.New(logger, svc.Payment).ServeHTTP)
			r.Post("/payments/verify", verify.New(logger, svc.Payment).ServeHTTP)
			r.Get("/payments/history", history.New(logger, svc.Payment).ServeHTTP)

			r.Get("/recommendations/generate", generate.New(logger, svc.Recommendation).ServeHTTP)
			r.Get("/recommendations/suggestions", suggestions.New(logger, svc.Recommendation).ServeHTTP)

			r.Post("/gems/reward", reward.New(logger, svc.Gems).ServeHTTP)
			r.Post("/affiliates", affiliatecreate.New(logger, svc.Affiliate).ServeHTTP)
		})

		// Webhook endpoint (без аутентификации)
		r.Post("/payments/webhook", paymentwebhook.New(logger, svc.Payment, webhookSecret).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
