// Package search реализует HTTP-обработчик поиска по гардеробу.
//
// Параметры фильтра передаются строкой запроса: color, season, garment_type,
// formality. Пустые параметры не участвуют в фильтрации.
package search

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/outfitbloom/outfitbloom-backend/internal/http/middlewarectx"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/response"
	"github.com/outfitbloom/outfitbloom-backend/internal/lib/sl"
	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

// Handler обрабатывает HTTP-запросы поиска по гардеробу.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики гардероба.
type Service interface {
	Search(ctx context.Context, userUID string, filter models.WardrobeFilter) ([]*models.WardrobeItem, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Поиск по гардеробу
// @Description Ищет предметы по цвету, сезону, типу одежды и формальности.
// @Tags Wardrobe
// @Security BearerAuth
// @Produce  json
// @Param color query string false "Цвет"
// @Param season query string false "Сезон"
// @Param garment_type query string false "Тип одежды"
// @Param formality query string false "Формальность"
// @Success 200 {object} response.Response "Найденные предметы"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/wardrobe/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wardrobe.search"

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

	filter := models.WardrobeFilter{
		Color:       r.URL.Query().Get("color"),
		Season:      r.URL.Query().Get("season"),
		GarmentType: r.URL.Query().Get("garment_type"),
		Formality:   r.URL.Query().Get("formality"),
	}

	items, err := h.service.Search(r.Context(), userUID, filter)
	if err != nil {
		log.Error("failed to search wardrobe items", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to search wardrobe items"))
		return
	}

	log.Info("wardrobe search done", slog.Int("count", len(items)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count": len(items),
		"items": items,
	}))
}
