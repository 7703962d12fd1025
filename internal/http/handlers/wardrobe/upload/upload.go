// Package upload реализует HTTP-обработчик добавления предмета гардероба
// с загрузкой изображения. Файл принимается в multipart/form-data и
// отправляется во внешнее хранилище, в предмете сохраняется его URL.
package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/outfitbloom/outfitbloom-backend/internal/http/middlewarectx"
	"github.com/outfitbloom/outfitbloom-backend/internal/http/response"
	"github.com/outfitbloom/outfitbloom-backend/internal/lib/sl"
	"github.com/outfitbloom/outfitbloom-backend/internal/models"
	"github.com/outfitbloom/outfitbloom-backend/internal/services/wardrobe"
)

// Лимит на размер multipart-формы с изображением.
const maxUploadSize = 10 << 20

// Handler обрабатывает HTTP-запросы добавления предмета с изображением.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики гардероба.
type Service interface {
	CreateWithImage(ctx context.Context, userUID string, req models.DummyWardrobeItem, filename string, file io.Reader) (*models.WardrobeItem, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func allowedImage(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// ServeHTTP godoc
// @Summary Добавление предмета гардероба с изображением
// @Description Принимает multipart/form-data с атрибутами предмета и файлом image (jpg, jpeg, png).
// @Tags Wardrobe
// @Security BearerAuth
// @Accept  mpfd
// @Produce  json
// @Param garment_type formData string true "Тип одежды"
// @Param color formData string false "Цвет"
// @Param season formData string false "Сезон"
// @Param formality formData string false "Формальность"
// @Param image formData file true "Изображение предмета"
// @Success 201 {object} response.Response "Предмет создан"
// @Failure 400 {object} response.ErrorResponse "Некорректная форма или файл"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Failure 503 {object} response.ErrorResponse "Загрузка изображений не настроена"
// @Router /api/v1/wardrobe/upload [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wardrobe.upload"

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

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	req := models.DummyWardrobeItem{
		GarmentType: r.FormValue("garment_type"),
		Color:       r.FormValue("color"),
		Pattern:     r.FormValue("pattern"),
		Fabric:      r.FormValue("fabric"),
		Season:      r.FormValue("season"),
		Formality:   r.FormValue("formality"),
		Status:      r.FormValue("status"),
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		log.Error("image file is missing", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("image file is required"))
		return
	}
	defer file.Close()

	if !allowedImage(header.Filename) {
		log.Error("unsupported image format", slog.String("filename", header.Filename))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("image must be jpg, jpeg or png"))
		return
	}

	item, err := h.service.CreateWithImage(r.Context(), userUID, req, header.Filename, file)
	if err != nil {
		if errors.Is(err, wardrobe.ErrUploadsDisabled) {
			log.Error("image uploads are not configured")
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("image uploads are not configured"))
			return
		}
		log.Error("failed to create wardrobe item with image", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create wardrobe item"))
		return
	}

	log.Info("wardrobe item created with image",
		slog.Int("id", item.ID),
		slog.String("image_url", item.ImageURL))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(item))
}
