// Package analytics реализует HTTP-обработчик сводки гардероба пользователя.
package analytics

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

// Handler обрабатывает HTTP-запросы сводки гардероба.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики гардероба.
type Service interface {
	Analytics(ctx context.Context, userUID string) (*models.WardrobeAnalytics, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка гардероба
// @Description Возвращает общее число предметов и количество в разрезе цвета, сезона, типа одежды и формальности.
// @Tags Wardrobe
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response "Сводка гардероба"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/wardrobe/analytics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wardrobe.analytics"

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

	stats, err := h.service.Analytics(r.Context(), userUID)
	if err != nil {
		log.Error("failed to build wardrobe analytics", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build wardrobe analytics"))
		return
	}

	log.Info("wardrobe analytics built", slog.Int("total_items", stats.TotalItems))
	render.JSON(w, r, response.StatusOKWithData(stats))
}
