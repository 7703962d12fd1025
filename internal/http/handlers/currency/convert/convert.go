// Package convert реализует HTTP-обработчик конвертации суммы между валютами.
// Параметры передаются строкой запроса: amount, from, to.
package convert

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/outfitbloom/outfitbloom-backend/internal/http/response"
	"github.com/outfitbloom/outfitbloom-backend/internal/lib/sl"
	"github.com/outfitbloom/outfitbloom-backend/internal/services/currency"
)

// Handler обрабатывает HTTP-запросы конвертации валют.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс валютной бизнес-логики.
type Service interface {
	Convert(ctx context.Context, from, to string, amount float64) (*currency.Conversion, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Конвертация валют
// @Description Конвертирует сумму между валютами по живому курсу, округляя до двух знаков.
// @Tags Currency
// @Produce  json
// @Param amount query number true "Сумма для конвертации"
// @Param from query string true "Код исходной валюты (ISO 4217)"
// @Param to query string true "Код целевой валюты (ISO 4217)"
// @Success 200 {object} response.Response "Результат конвертации"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры или код валюты"
// @Failure 502 {object} response.ErrorResponse "Провайдер курсов недоступен"
// @Router /api/v1/currency/convert [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.currency.convert"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	from := strings.ToUpper(r.URL.Query().Get("from"))
	to := strings.ToUpper(r.URL.Query().Get("to"))
	if len(from) != 3 || len(to) != 3 {
		log.Error("missing or invalid currency codes",
			slog.String("from", from), slog.String("to", to))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("from and to must be 3-letter currency codes"))
		return
	}

	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil || amount <= 0 {
		log.Error("missing or invalid amount", slog.String("amount", r.URL.Query().Get("amount")))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("amount must be a positive number"))
		return
	}

	result, err := h.service.Convert(r.Context(), from, to, amount)
	if err != nil {
		if errors.Is(err, currency.ErrUnknownCurrency) {
			log.Error("unknown currency code", slog.String("to", to))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown currency code"))
			return
		}
		log.Error("failed to convert", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to fetch exchange rates"))
		return
	}

	log.Info("conversion done",
		slog.String("from", result.From),
		slog.String("to", result.To))
	render.JSON(w, r, response.StatusOKWithData(result))
}
