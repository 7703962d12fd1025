// Package paymentwebhook реализует HTTP-обработчик вебхука платежного шлюза.
//
// Тело запроса подписывается HMAC-SHA256 с общим секретом, подпись передается
// в заголовке X-Api-Signature в base64. Запросы с неверной подписью отклоняются.
package paymentwebhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/outfitbloom/outfitbloom-backend/internal/lib/sl"
	"github.com/outfitbloom/outfitbloom-backend/internal/services/payment"
	"github.com/outfitbloom/outfitbloom-backend/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики платежей.
type Service interface {
	ConfirmFromWebhook(ctx context.Context, event payment.WebhookEvent) (bool, error)
}

// Handler обрабатывает события платежного шлюза.
type Handler struct {
	log           *slog.Logger
	service       Service
	webhookSecret string
	validate      *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: secret,
		validate:      validator.New(),
	}
}

// Проверка подписи webhook (X-Api-Signature)
func (h *Handler) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expectedSig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expectedSig), []byte(signature))
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"
	log := h.log.With(slog.String("op", op))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("X-Api-Signature")
	if signature == "" || !h.verifySignature(body, signature) {
		log.Error("invalid or missing webhook signature")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var event payment.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Error("failed to unmarshal webhook payload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(event); err != nil {
		log.Error("invalid webhook payload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "checkout.session.completed", "payment.succeeded":
		confirmed, err := h.service.ConfirmFromWebhook(r.Context(), event)
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("webhook references unknown payment",
				slog.String("gateway_order_id", event.GatewayOrderID))
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("failed to process webhook event", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		log.Info("webhook processed",
			slog.String("type", event.Type),
			slog.String("gateway_order_id", event.GatewayOrderID),
			slog.Bool("confirmed", confirmed))
	default:
		log.Info("ignored webhook event", slog.String("type", event.Type))
	}

	w.WriteHeader(http.StatusOK)
}
