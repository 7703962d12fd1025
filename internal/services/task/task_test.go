package task

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/outfitbloom/outfitbloom-backend/internal/models"
	"github.com/outfitbloom/outfitbloom-backend/internal/storage/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateTask(ctx context.Context, task models.Task) (int, error) {
	args := m.Called(ctx, task)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListTasks(ctx context.Context, userUID string) ([]*models.Task, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockRepository) UpdateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockRepository) RemoveTask(ctx context.Context, id int, userUID string) error {
	return m.Called(ctx, id, userUID).Error(0)
}

func (m *MockRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testUserUID = "11111111-2222-3333-4444-555555555555"

func TestCreate(t *testing.T) {
	t.Run("успешное создание с дефолтным приоритетом", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)

		repo.On("GetUser", mock.Anything, testUserUID).
			Return(&models.User{UUID: testUserUID, Language: "en"}, nil)
		repo.On("CreateTask", mock.Anything, mock.MatchedBy(func(task models.Task) bool {
			return task.Title == "Buy fabric" &&
				task.Priority == "medium" &&
				task.Language == "en" &&
				task.UserUID == testUserUID
		})).Return(42, nil)
		cache.On("Invalidate", mock.Anything, "tasks:"+testUserUID).Return(nil)

		svc := New(repo, cache, newNoopLogger())

		task, err := svc.Create(context.Background(), testUserUID, models.DummyTask{
			Title:       "Buy fabric",
			Description: "cotton, 2m",
			DueDate:     "2026-09-15",
		})
		require.NoError(t, err)
		assert.Equal(t, 42, task.ID)
		assert.Equal(t, "medium", task.Priority)
		assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), task.DueDate)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("явный приоритет и язык не перетираются дефолтами", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)

		repo.On("CreateTask", mock.Anything, mock.MatchedBy(func(task models.Task) bool {
			return task.Priority == "high" && task.Language == "hi"
		})).Return(1, nil)
		cache.On("Invalidate", mock.Anything, mock.Anything).Return(nil)

		svc := New(repo, cache, newNoopLogger())

		_, err := svc.Create(context.Background(), testUserUID, models.DummyTask{
			Title:    "Plan outfit",
			DueDate:  "2026-09-01",
			Priority: "high",
			Language: "hi",
		})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "GetUser")
	})

	t.Run("невалидная дата", func(t *testing.T) {
		svc := New(new(MockRepository), new(MockCache), newNoopLogger())

		_, err := svc.Create(context.Background(), testUserUID, models.DummyTask{
			Title:   "Bad date",
			DueDate: "15-09-2026",
		})
		assert.Error(t, err)
	})

	t.Run("квота пробрасывается из хранилища", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)

		repo.On("CreateTask", mock.Anything, mock.Anything).
			Return(0, repository.ErrQuotaExceeded)

		svc := New(repo, cache, newNoopLogger())

		_, err := svc.Create(context.Background(), testUserUID, models.DummyTask{
			Title:    "Over limit",
			DueDate:  "2026-09-01",
			Priority: "low",
			Language: "en",
		})
		assert.ErrorIs(t, err, repository.ErrQuotaExceeded)
		cache.AssertNotCalled(t, "Invalidate")
	})
}

func TestList(t *testing.T) {
	t.Run("попадание в кеш не трогает хранилище", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)

		cache.On("Get", mock.Anything, "tasks:"+testUserUID, mock.Anything).
			Return(true, nil)

		svc := New(repo, cache, newNoopLogger())

		_, err := svc.List(context.Background(), testUserUID)
		require.NoError(t, err)
		repo.AssertNotCalled(t, "ListTasks")
	})

	t.Run("промах кеша читает хранилище и пишет кеш", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)

		tasks := []*models.Task{{ID: 1, Title: "Iron shirt"}}
		cache.On("Get", mock.Anything, "tasks:"+testUserUID, mock.Anything).
			Return(false, nil)
		repo.On("ListTasks", mock.Anything, testUserUID).Return(tasks, nil)
		cache.On("Set", mock.Anything, "tasks:"+testUserUID, tasks, listCacheTTL).
			Return(nil)

		svc := New(repo, cache, newNoopLogger())

		got, err := svc.List(context.Background(), testUserUID)
		require.NoError(t, err)
		assert.Equal(t, tasks, got)
		cache.AssertExpectations(t)
	})

	t.Run("ошибка кеша не ломает выборку", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)

		cache.On("Get", mock.Anything, mock.Anything, mock.Anything).
			Return(false, assert.AnError)
		repo.On("ListTasks", mock.Anything, testUserUID).
			Return([]*models.Task{}, nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(assert.AnError)

		svc := New(repo, cache, newNoopLogger())

		_, err := svc.List(context.Background(), testUserUID)
		assert.NoError(t, err)
	})
}

func TestRemove(t *testing.T) {
	t.Run("удаление инвалидирует кеш списка", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)

		repo.On("RemoveTask", mock.Anything, 7, testUserUID).Return(nil)
		cache.On("Invalidate", mock.Anything, "tasks:"+testUserUID).Return(nil)

		svc := New(repo, cache, newNoopLogger())

		require.NoError(t, svc.Remove(context.Background(), testUserUID, 7))
		cache.AssertExpectations(t)
	})

	t.Run("задача не найдена", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)

		repo.On("RemoveTask", mock.Anything, 7, testUserUID).
			Return(repository.ErrNotFound)

		svc := New(repo, cache, newNoopLogger())

		err := svc.Remove(context.Background(), testUserUID, 7)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		cache.AssertNotCalled(t, "Invalidate")
	})
}
