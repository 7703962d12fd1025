// Package supported реализует HTTP-обработчик списка поддерживаемых валют.
package supported

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/outfitbloom/outfitbloom-backend/internal/http/response"
	"github.com/outfitbloom/outfitbloom-backend/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы списка валют.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс валютной бизнес-логики.
type Service interface {
	Supported(ctx context.Context) ([]string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Поддерживаемые валюты
// @Description Возвращает отсортированный список кодов валют провайдера.
// @Tags Currency
// @Produce  json
// @Success 200 {object} response.Response "Коды валют"
// @Failure 502 {object} response.ErrorResponse "Провайдер курсов недоступен"
// @Router /api/v1/currency/supported [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.currency.supported"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	codes, err := h.service.Supported(r.Context())
	if err != nil {
		log.Error("failed to fetch supported currencies", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to fetch exchange rates"))
		return
	}

	log.Info("supported currencies fetched", slog.Int("count", len(codes)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":      len(codes),
		"currencies": codes,
	}))
}
