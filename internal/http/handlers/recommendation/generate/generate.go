// Package generate реализует HTTP-обработчик генерации рекомендованного образа.
package generate

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

// Handler обрабатывает HTTP-запросы генерации образа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс движка подбора.
type Service interface {
	Generate(ctx context.Context, userUID, season, formality string) (*models.OutfitSuggestion, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Генерация образа
// @Description Собирает образ из гардероба пользователя с учетом сезона и формальности.
// @Tags Recommendations
// @Security BearerAuth
// @Produce  json
// @Param season query string false "Сезон"
// @Param formality query string false "Формальность"
// @Success 200 {object} response.Response "Рекомендованный образ"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/recommendations/generate [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recommendation.generate"

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

	suggestion, err := h.service.Generate(r.Context(), userUID,
		r.URL.Query().Get("season"), r.URL.Query().Get("formality"))
	if err != nil {
		log.Error("failed to generate outfit", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to generate outfit"))
		return
	}

	log.Info("outfit generated")
	render.JSON(w, r, response.StatusOKWithData(suggestion))
}
