// Package createorder реализует HTTP-обработчик создания платежного заказа
// для перехода на премиум-тариф. Шлюз выбирается по стране клиента,
// определенной по его IP-адресу.
package createorder

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/outfitbloom/outfitbloom-backend/internal/http/middlewarectx"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/response"
	"github.com/outfitbloom/outfitbloom-backend/internal/lib/sl"
	"github.com/outfitbloom/outfitbloom-backend/internal/services/payment"
)

// Request — структура входных данных создания заказа.
// Сумма опциональна: без нее действует тарифная цена из конфигурации.
type Request struct {
	Amount float64 `json:"amount,omitempty"`
}

// Handler обрабатывает HTTP-запросы создания платежного заказа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики платежей.
type Service interface {
	CreateOrder(ctx context.Context, userUID, clientIP string, amountUSD float64) (*payment.OrderDetails, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Создание платежного заказа
// @Description Создает заказ на премиум-доступ. Клиенты из Индии направляются в Razorpay, остальные — в Stripe.
// @Tags Payments
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body Request false "Сумма в USD (опционально)"
// @Success 201 {object} response.Response "Данные заказа"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или сумма"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 502 {object} response.ErrorResponse "Платежный шлюз недоступен"
// @Router /api/v1/payments/create-order [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.createorder"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if req.Amount < 0 {
		log.Error("negative amount", slog.Float64("amount", req.Amount))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("amount must be positive"))
		return
	}

	order, err := h.service.CreateOrder(r.Context(), userUID, clientIP(r), req.Amount)
	if err != nil {
		log.Error("failed to create payment order", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to create payment order"))
		return
	}

	log.Info("payment order created",
		slog.String("gateway", order.Gateway),
		slog.String("order_id", order.OrderID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(order))
}

// clientIP извлекает IP клиента из X-Forwarded-For или адреса соединения.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
