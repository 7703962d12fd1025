// Package list реализует HTTP-обработчик партнерского каталога товаров.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/outfitbloom/outfitbloom-backend/internal/http/response"
	"github.com/outfitbloom/outfitbloom-backend/internal/lib/sl"
	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

// Handler обрабатывает HTTP-запросы каталога.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	List(ctx context.Context, productName string) ([]*models.AffiliateProduct, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Партнерский каталог
// @Description Возвращает товары каталога, опционально отфильтрованные по названию.
// @Tags Affiliates
// @Produce  json
// @Param q query string false "Подстрока названия товара"
// @Success 200 {object} response.Response "Товары каталога"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/affiliates [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.affiliate.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	products, err := h.service.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		log.Error("failed to list affiliate products", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list affiliate products"))
		return
	}

	log.Info("affiliate products listed", slog.Int("count", len(products)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":    len(products),
		"products": products,
	}))
}
