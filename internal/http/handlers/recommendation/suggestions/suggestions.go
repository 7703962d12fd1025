// Package suggestions реализует HTTP-обработчик набора рекомендованных образов.
package suggestions

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/outfitbloom/outfitbloom-backend/internal/http/middlewarectx"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/response"
	"github.com/outfitbloom/outfitbloom-backend/internal/lib/sl"
	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

// Handler обрабатывает HTTP-запросы набора образов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс движка подбора.
type Service interface {
	Suggestions(ctx context.Context, userUID string, count int) ([]*models.OutfitSuggestion, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Набор образов
// @Description Возвращает несколько вариантов образа (по умолчанию три).
// @Tags Recommendations
// @Security BearerAuth
// @Produce  json
// @Param count query int false "Количество образов, максимум 5"
// @Success 200 {object} response.Response "Варианты образов"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/recommendations/suggestions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recommendation.suggestions"

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

	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil {
		count = 0
	}

	items, err := h.service.Suggestions(r.Context(), userUID, count)
	if err != nil {
		log.Error("failed to build suggestions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build suggestions"))
		return
	}

	log.Info("suggestions built", slog.Int("count", len(items)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":       len(items),
		"suggestions": items,
	}))
}
