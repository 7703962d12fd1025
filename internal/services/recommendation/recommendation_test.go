package recommendation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

type MockWardrobeRepository struct {
	mock.Mock
}

func (m *MockWardrobeRepository) SearchWardrobeItems(ctx context.Context, userUID string, filter models.WardrobeFilter) ([]*models.WardrobeItem, error) {
	args := m.Called(ctx, userUID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WardrobeItem), args.Error(1)
}

const testUserUID = "11111111-2222-3333-4444-555555555555"

func TestGenerate(t *testing.T) {
	t.Run("пустой гардероб заполняется встроенным каталогом", func(t *testing.T) {
		wardrobe := new(MockWardrobeRepository)
		wardrobe.On("SearchWardrobeItems", mock.Anything, testUserUID, mock.Anything).
			Return([]*models.WardrobeItem{}, nil)

		svc := New(wardrobe)

		suggestion, err := svc.Generate(context.Background(), testUserUID, "", "")
		require.NoError(t, err)
		assert.NotEmpty(t, suggestion.Outfit.Top.Name)
		assert.NotEmpty(t, suggestion.Outfit.Bottom.Name)
		assert.NotEmpty(t, suggestion.Outfit.Shoes.Name)
		assert.Equal(t, "mock", suggestion.Meta["engine"])
	})

	t.Run("вещи гардероба имеют приоритет над каталогом", func(t *testing.T) {
		wardrobe := new(MockWardrobeRepository)
		wardrobe.On("SearchWardrobeItems", mock.Anything, testUserUID, mock.Anything).
			Return([]*models.WardrobeItem{
				{GarmentType: "shirt", Color: "red", Status: "active"},
				{GarmentType: "jeans", Color: "blue", Status: "active"},
			}, nil)

		svc := New(wardrobe)

		suggestion, err := svc.Generate(context.Background(), testUserUID, "", "")
		require.NoError(t, err)
		assert.Equal(t, "red shirt", suggestion.Outfit.Top.Name)
		assert.Equal(t, "blue jeans", suggestion.Outfit.Bottom.Name)
		// обуви в гардеробе нет, слот закрывается каталогом
		assert.NotEmpty(t, suggestion.Outfit.Shoes.Name)
	})

	t.Run("неактивные вещи не попадают в образ", func(t *testing.T) {
		wardrobe := new(MockWardrobeRepository)
		wardrobe.On("SearchWardrobeItems", mock.Anything, testUserUID, mock.Anything).
			Return([]*models.WardrobeItem{
				{GarmentType: "shirt", Color: "red", Status: "archived"},
			}, nil)

		svc := New(wardrobe)

		suggestion, err := svc.Generate(context.Background(), testUserUID, "", "")
		require.NoError(t, err)
		assert.NotEqual(t, "red shirt", suggestion.Outfit.Top.Name)
	})

	t.Run("сезон и формальность уходят в фильтр и мету", func(t *testing.T) {
		wardrobe := new(MockWardrobeRepository)
		wardrobe.On("SearchWardrobeItems", mock.Anything, testUserUID,
			models.WardrobeFilter{Season: "summer", Formality: "casual"}).
			Return([]*models.WardrobeItem{}, nil)

		svc := New(wardrobe)

		suggestion, err := svc.Generate(context.Background(), testUserUID, "summer", "casual")
		require.NoError(t, err)
		assert.Equal(t, "summer", suggestion.Meta["season"])
		assert.Equal(t, "casual", suggestion.Meta["formality"])
		wardrobe.AssertExpectations(t)
	})
}

func TestSuggestions(t *testing.T) {
	wardrobe := new(MockWardrobeRepository)
	wardrobe.On("SearchWardrobeItems", mock.Anything, testUserUID, mock.Anything).
		Return([]*models.WardrobeItem{}, nil)

	svc := New(wardrobe)

	cases := []struct {
		name      string
		count     int
		wantCount int
	}{
		{name: "запрошенное количество в пределах лимита", count: 2, wantCount: 2},
		{name: "ноль заменяется на значение по умолчанию", count: 0, wantCount: 3},
		{name: "превышение лимита заменяется на значение по умолчанию", count: 10, wantCount: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			suggestions, err := svc.Suggestions(context.Background(), testUserUID, tc.count)
			require.NoError(t, err)
			assert.Len(t, suggestions, tc.wantCount)
		})
	}
}

func TestSlotFor(t *testing.T) {
	assert.Equal(t, "top", slotFor("Shirt"))
	assert.Equal(t, "bottom", slotFor("jeans"))
	assert.Equal(t, "shoes", slotFor("SNEAKERS"))
	assert.Equal(t, "", slotFor("hat"))
}
