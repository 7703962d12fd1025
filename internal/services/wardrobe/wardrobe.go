// Package wardrobe содержит бизнес-логику цифрового гардероба:
// CRUD по предметам одежды и поиск по атрибутам.
package wardrobe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/outfitbloom/outfitbloom-backend/internal/lib/sl"
	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

const listCacheTTL = 2 * time.Minute

// ErrUploadsDisabled возвращается, когда хранилище изображений не настроено.
var ErrUploadsDisabled = errors.New("image uploads are not configured")

// Repository описывает контракт хранилища гардероба.
type Repository interface {
	CreateWardrobeItem(ctx context.Context, item models.WardrobeItem) (int, error)
	ListWardrobeItems(ctx context.Context, userUID string) ([]*models.WardrobeItem, error)
	SearchWardrobeItems(ctx context.Context, userUID string, filter models.WardrobeFilter) ([]*models.WardrobeItem, error)
	WardrobeAnalytics(ctx context.Context, userUID string) (*models.WardrobeAnalytics, error)
	UpdateWardrobeItem(ctx context.Context, item models.WardrobeItem) (*models.WardrobeItem, error)
	RemoveWardrobeItem(ctx context.Context, id int, userUID string) error
}

// ImageUploader описывает контракт внешнего хранилища изображений.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

// Cache описывает контракт кеша списочных выборок.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service реализует операции над гардеробом.
type Service struct {
	repo     Repository
	cache    Cache
	uploader ImageUploader
	log      *slog.Logger
}

// New создает новый экземпляр Service. uploader может быть nil —
// тогда загрузка изображений отключена.
func New(repo Repository, cache Cache, uploader ImageUploader, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		uploader: uploader,
		log:      log,
	}
}

func listCacheKey(userUID string) string {
	return "wardrobe:" + userUID
}

// Create добавляет предмет в гардероб. Статус по умолчанию active.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyWardrobeItem) (*models.WardrobeItem, error) {
	status := req.Status
	if status == "" {
		status = "active"
	}

	item := models.WardrobeItem{
		GarmentType: req.GarmentType,
		Color:       req.Color,
		Pattern:     req.Pattern,
		Fabric:      req.Fabric,
		Season:      req.Season,
		Formality:   req.Formality,
		ImageURL:    req.ImageURL,
		Status:      status,
		UserUID:     userUID,
	}
	id, err := s.repo.CreateWardrobeItem(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id

	s.invalidateList(ctx, userUID)
	return &item, nil
}

// CreateWithImage загружает изображение во внешнее хранилище и добавляет
// предмет с полученным URL.
func (s *Service) CreateWithImage(ctx context.Context, userUID string, req models.DummyWardrobeItem, filename string, file io.Reader) (*models.WardrobeItem, error) {
	const op = "services.wardrobe.CreateWithImage"

	if s.uploader == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUploadsDisabled)
	}

	url, err := s.uploader.Upload(ctx, filename, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.ImageURL = url
	return s.Create(ctx, userUID, req)
}

// List возвращает гардероб пользователя; выборка кешируется.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.WardrobeItem, error) {
	key := listCacheKey(userUID)

	var cached []*models.WardrobeItem
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("wardrobe cache read failed", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	items, err := s.repo.ListWardrobeItems(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, items, listCacheTTL); err != nil {
		s.log.Warn("wardrobe cache write failed", sl.Err(err))
	}
	return items, nil
}

// Search ищет предметы по непустым полям фильтра, без кеширования.
func (s *Service) Search(ctx context.Context, userUID string, filter models.WardrobeFilter) ([]*models.WardrobeItem, error) {
	return s.repo.SearchWardrobeItems(ctx, userUID, filter)
}

// Analytics возвращает сводку гардероба по атрибутам, без кеширования.
func (s *Service) Analytics(ctx context.Context, userUID string) (*models.WardrobeAnalytics, error) {
	return s.repo.WardrobeAnalytics(ctx, userUID)
}

// Update обновляет предмет по ID и владельцу.
func (s *Service) Update(ctx context.Context, userUID string, id int, req models.DummyWardrobeItem) (*models.WardrobeItem, error) {
	status := req.Status
	if status == "" {
		status = "active"
	}

	item := models.WardrobeItem{
		ID:          id,
		GarmentType: req.GarmentType,
		Color:       req.Color,
		Pattern:     req.Pattern,
		Fabric:      req.Fabric,
		Season:      req.Season,
		Formality:   req.Formality,
		ImageURL:    req.ImageURL,
		Status:      status,
		UserUID:     userUID,
	}
	updated, err := s.repo.UpdateWardrobeItem(ctx, item)
	if err != nil {
		return nil, err
	}

	s.invalidateList(ctx, userUID)
	return updated, nil
}

// Remove удаляет предмет по ID и владельцу.
func (s *Service) Remove(ctx context.Context, userUID string, id int) error {
	if err := s.repo.RemoveWardrobeItem(ctx, id, userUID); err != nil {
		return err
	}
	s.invalidateList(ctx, userUID)
	return nil
}

func (s *Service) invalidateList(ctx context.Context, userUID string) {
	if err := s.cache.Invalidate(ctx, listCacheKey(userUID)); err != nil {
		s.log.Warn("wardrobe cache invalidate failed", sl.Err(err))
	}
}
