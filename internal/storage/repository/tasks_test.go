package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

func testTask(userUID, title string) models.Task {
	return models.Task{
		Title:       title,
		Description: "description",
		DueDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Priority:    "medium",
		Language:    "en",
		UserUID:     userUID,
	}
}

func TestCreateTask_FreeQuota(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	t.Run("бесплатный пользователь упирается в лимит задач", func(t *testing.T) {
		uid := factory.CreateUser(t, "free user", "free@example.com", false)

		for i := range models.FreeTaskLimit {
			_, err := storage.CreateTask(ctx, testTask(uid, "task"))
			require.NoError(t, err, "task %d must fit into the quota", i+1)
		}
		assert.Equal(t, models.FreeTaskLimit, factory.TaskCount(t, uid))

		_, err := storage.CreateTask(ctx, testTask(uid, "over the limit"))
		assert.ErrorIs(t, err, ErrQuotaExceeded)
		assert.Equal(t, models.FreeTaskLimit, factory.TaskCount(t, uid))
	})

	t.Run("удаление задачи освобождает место в квоте", func(t *testing.T) {
		uid := factory.CreateUser(t, "second user", "second@example.com", false)

		var lastID int
		for range models.FreeTaskLimit {
			id, err := storage.CreateTask(ctx, testTask(uid, "task"))
			require.NoError(t, err)
			lastID = id
		}

		_, err := storage.CreateTask(ctx, testTask(uid, "over the limit"))
		require.ErrorIs(t, err, ErrQuotaExceeded)

		require.NoError(t, storage.RemoveTask(ctx, lastID, uid))
		assert.Equal(t, models.FreeTaskLimit-1, factory.TaskCount(t, uid))

		_, err = storage.CreateTask(ctx, testTask(uid, "fits again"))
		assert.NoError(t, err)
	})

	t.Run("премиум пользователь не ограничен квотой", func(t *testing.T) {
		uid := factory.CreateUser(t, "premium user", "premium@example.com", true)

		for range models.FreeTaskLimit + 5 {
			_, err := storage.CreateTask(ctx, testTask(uid, "task"))
			require.NoError(t, err)
		}
		// Счётчик премиум-пользователя не ведется
		assert.Equal(t, 0, factory.TaskCount(t, uid))
	})
}

func TestRemoveTask(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	t.Run("счётчик не уходит ниже нуля", func(t *testing.T) {
		uid := factory.CreateUser(t, "user", "counter@example.com", false)

		id, err := storage.CreateTask(ctx, testTask(uid, "only task"))
		require.NoError(t, err)
		require.NoError(t, storage.RemoveTask(ctx, id, uid))
		assert.Equal(t, 0, factory.TaskCount(t, uid))

		// Прямой сброс счётчика имитирует переход на премиум
		_, err = storage.DB.Exec("UPDATE users SET task_count = 0 WHERE uid = $1", uid)
		require.NoError(t, err)

		id2, err := storage.CreateTask(ctx, testTask(uid, "another task"))
		require.NoError(t, err)
		require.NoError(t, storage.RemoveTask(ctx, id2, uid))
		assert.Equal(t, 0, factory.TaskCount(t, uid))
	})

	t.Run("чужая задача недоступна для удаления", func(t *testing.T) {
		owner := factory.CreateUser(t, "owner", "owner@example.com", false)
		stranger := factory.CreateUser(t, "stranger", "stranger@example.com", false)

		id, err := storage.CreateTask(ctx, testTask(owner, "private task"))
		require.NoError(t, err)

		err = storage.RemoveTask(ctx, id, stranger)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("удаление несуществующей задачи", func(t *testing.T) {
		uid := factory.CreateUser(t, "user", "missing@example.com", false)
		err := storage.RemoveTask(ctx, 99999, uid)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateTask(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	uid := factory.CreateUser(t, "user", "update@example.com", false)
	id, err := storage.CreateTask(ctx, testTask(uid, "initial"))
	require.NoError(t, err)

	t.Run("успешное обновление задачи", func(t *testing.T) {
		task := testTask(uid, "renamed")
		task.ID = id
		task.Completed = true

		updated, err := storage.UpdateTask(ctx, task)
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
		assert.True(t, updated.Completed)
	})

	t.Run("чужая задача недоступна для обновления", func(t *testing.T) {
		stranger := factory.CreateUser(t, "stranger", "stranger2@example.com", false)
		task := testTask(stranger, "hijack")
		task.ID = id

		_, err := storage.UpdateTask(ctx, task)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListTasks(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	uid := factory.CreateUser(t, "user", "list@example.com", false)

	late := testTask(uid, "late")
	late.DueDate = time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	early := testTask(uid, "early")
	early.DueDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := storage.CreateTask(ctx, late)
	require.NoError(t, err)
	_, err = storage.CreateTask(ctx, early)
	require.NoError(t, err)

	tasks, err := storage.ListTasks(ctx, uid)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "early", tasks[0].Title)
	assert.Equal(t, "late", tasks[1].Title)
}
