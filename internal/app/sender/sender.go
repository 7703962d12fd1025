// Package sender собирает воркер отправки писем-квитанций:
// подключение к брокеру уведомлений, SMTP транспорт и потребитель очереди.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/outfitbloom/outfitbloom-backend/internal/config"
	"github.com/outfitbloom/outfitbloom-backend/internal/lib/smtp"
	rabbit "github.com/outfitbloom/outfitbloom-backend/internal/rabbitmq"
	senderservice "github.com/outfitbloom/outfitbloom-backend/internal/services/sender"
)

// App — воркер отправки уведомлений.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New собирает воркер: брокер, топология очередей и SMTP транспорт.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbit.Connect(cfg.RabbitMQConnection, cfg.ConnectRetries, cfg.ConnectDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbit.SetupChannel(conn, rabbit.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди квитанций и ждет отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbit.ConsumerMessage(ctx, a.ch, "payment_receipts_queue", a.senderService.SendPaymentReceipt)
	if err != nil {
		a.logger.Error("failed to start payment_receipts_queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
