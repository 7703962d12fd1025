package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

func TestWardrobeAnalytics(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	uid := factory.CreateUser(t, "fashionista", "wa@example.com", false)
	other := factory.CreateUser(t, "neighbor", "wb@example.com", false)

	add := func(owner, garmentType, color, season, formality string) {
		t.Helper()
		_, err := storage.CreateWardrobeItem(ctx, models.WardrobeItem{
			GarmentType: garmentType,
			Color:       color,
			Season:      season,
			Formality:   formality,
			Status:      "active",
			UserUID:     owner,
		})
		require.NoError(t, err)
	}

	add(uid, "shirt", "red", "summer", "casual")
	add(uid, "shirt", "blue", "summer", "formal")
	add(uid, "pants", "blue", "", "casual")
	add(other, "dress", "green", "summer", "formal")

	t.Run("считает предметы в разрезе атрибутов владельца", func(t *testing.T) {
		stats, err := storage.WardrobeAnalytics(ctx, uid)
		require.NoError(t, err)

		assert.Equal(t, 3, stats.TotalItems)
		assert.Equal(t, map[string]int{"shirt": 2, "pants": 1}, stats.ByGarmentType)
		assert.Equal(t, map[string]int{"red": 1, "blue": 2}, stats.ByColor)
		assert.Equal(t, map[string]int{"summer": 2}, stats.BySeason)
		assert.Equal(t, map[string]int{"casual": 2, "formal": 1}, stats.ByFormality)
	})

	t.Run("пустой гардероб дает нулевую сводку", func(t *testing.T) {
		empty := factory.CreateUser(t, "minimalist", "wc@example.com", false)

		stats, err := storage.WardrobeAnalytics(ctx, empty)
		require.NoError(t, err)

		assert.Equal(t, 0, stats.TotalItems)
		assert.Empty(t, stats.ByColor)
		assert.Empty(t, stats.ByGarmentType)
	})
}
