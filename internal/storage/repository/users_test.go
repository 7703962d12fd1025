package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

func TestRegisterUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("новый пользователь получает uid и дефолты", func(t *testing.T) {
		uid, err := storage.RegisterUser(ctx, models.User{
			Name:         "New User",
			Email:        "reg@example.com",
			PasswordHash: "hashedpassword",
			Language:     "en",
		})
		require.NoError(t, err)
		require.NotEmpty(t, uid)

		user, err := storage.GetUser(ctx, uid)
		require.NoError(t, err)
		assert.False(t, user.IsPremium)
		assert.Equal(t, 0, user.TaskCount)
		assert.Equal(t, 0, user.Gems)
		assert.Equal(t, "en", user.Language)
	})

	t.Run("дубликат email отклоняется", func(t *testing.T) {
		_, err := storage.RegisterUser(ctx, models.User{
			Name:         "Dup User",
			Email:        "reg@example.com",
			PasswordHash: "hashedpassword",
			Language:     "en",
		})
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("поиск по email", func(t *testing.T) {
		user, err := storage.GetUserByEmail(ctx, "reg@example.com")
		require.NoError(t, err)
		assert.Equal(t, "New User", user.Name)

		_, err = storage.GetUserByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAddGems(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	t.Run("начисление увеличивает баланс и пишет журнал", func(t *testing.T) {
		uid := factory.CreateUser(t, "gems", "gems@example.com", false)

		balance, err := storage.AddGems(ctx, uid, "task_completed", 5)
		require.NoError(t, err)
		assert.Equal(t, 5, balance)

		balance, err = storage.AddGems(ctx, uid, "daily_login", 2)
		require.NoError(t, err)
		assert.Equal(t, 7, balance)

		var entries int
		err = storage.DB.QueryRow("SELECT COUNT(*) FROM gems_log WHERE user_uid = $1", uid).Scan(&entries)
		require.NoError(t, err)
		assert.Equal(t, 2, entries)
	})

	t.Run("неизвестный пользователь", func(t *testing.T) {
		_, err := storage.AddGems(ctx, "11111111-2222-3333-4444-555555555555", "task_completed", 5)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
