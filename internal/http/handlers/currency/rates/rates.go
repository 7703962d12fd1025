// Package rates реализует HTTP-обработчик получения курсов валют.
package rates

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/outfitbloom/outfitbloom-backend/internal/exchange"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/response"
	"github.com/outfitbloom/outfitbloom-backend/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы курсов валют.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс валютной бизнес-логики.
type Service interface {
	Rates(ctx context.Context, base string) (*exchange.Rates, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Курсы валют
// @Description Возвращает живые курсы для базовой валюты (по умолчанию USD).
// @Tags Currency
// @Produce  json
// @Param base query string false "Базовая валюта, код ISO 4217"
// @Success 200 {object} response.Response "Курсы валют"
// @Failure 502 {object} response.ErrorResponse "Провайдер курсов недоступен"
// @Router /api/v1/currency/rates [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.currency.rates"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	base := strings.ToUpper(r.URL.Query().Get("base"))
	if base == "" {
		base = "USD"
	}

	rates, err := h.service.Rates(r.Context(), base)
	if err != nil {
		log.Error("failed to fetch rates", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to fetch exchange rates"))
		return
	}

	log.Info("rates fetched", slog.String("base", base))
	render.JSON(w, r, response.StatusOKWithData(rates))
}
