// Package task содержит бизнес-логику работы с задачами пользователя:
// создание с проверкой квоты бесплатного тарифа, чтение с кешированием,
// обновление и удаление с обслуживанием счётчика квоты.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/outfitbloom/outfitbloom-backend/internal/lib/sl"
	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

const listCacheTTL = 2 * time.Minute

// Repository описывает контракт хранилища задач.
type Repository interface {
	CreateTask(ctx context.Context, task models.Task) (int, error)
	ListTasks(ctx context.Context, userUID string) ([]*models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) (*models.Task, error)
	RemoveTask(ctx context.Context, id int, userUID string) error
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Cache описывает контракт кеша списочных выборок.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service реализует операции над задачами.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func listCacheKey(userUID string) string {
	return "tasks:" + userUID
}

// Create создает задачу. Для непремиум-пользователей действует квота:
// хранилище атомарно проверяет счётчик и возвращает ErrQuotaExceeded на пределе.
// Приоритет по умолчанию medium, язык по умолчанию — язык пользователя.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyTask) (*models.Task, error) {
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("parse due_date: %w", err)
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	language := req.Language
	if language == "" {
		user, err := s.repo.GetUser(ctx, userUID)
		if err != nil {
			return nil, err
		}
		language = user.Language
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    priority,
		Language:    language,
		UserUID:     userUID,
	}
	id, err := s.repo.CreateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	task.ID = id

	s.invalidateList(ctx, userUID)
	return &task, nil
}

// List возвращает задачи пользователя; выборка кешируется на короткое время.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.Task, error) {
	key := listCacheKey(userUID)

	var cached []*models.Task
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("task list cache read failed", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	tasks, err := s.repo.ListTasks(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, tasks, listCacheTTL); err != nil {
		s.log.Warn("task list cache write failed", sl.Err(err))
	}
	return tasks, nil
}

// Update обновляет задачу по ID и владельцу.
func (s *Service) Update(ctx context.Context, userUID string, id int, req models.DummyTask) (*models.Task, error) {
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("parse due_date: %w", err)
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	completed := false
	if req.Completed != nil {
		completed = *req.Completed
	}

	task := models.Task{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    priority,
		Completed:   completed,
		Language:    req.Language,
		UserUID:     userUID,
	}
	updated, err := s.repo.UpdateTask(ctx, task)
	if err != nil {
		return nil, err
	}

	s.invalidateList(ctx, userUID)
	return updated, nil
}

// Remove удаляет задачу по ID и владельцу.
func (s *Service) Remove(ctx context.Context, userUID string, id int) error {
	if err := s.repo.RemoveTask(ctx, id, userUID); err != nil {
		return err
	}
	s.invalidateList(ctx, userUID)
	return nil
}

func (s *Service) invalidateList(ctx context.Context, userUID string) {
	if err := s.cache.Invalidate(ctx, listCacheKey(userUID)); err != nil {
		s.log.Warn("task list cache invalidate failed", sl.Err(err))
	}
}
