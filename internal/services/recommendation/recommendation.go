// Package recommendation содержит движок подбора образов. Текущая реализация —
// заглушка: образ собирается из активного гардероба пользователя, недостающие
// слоты заполняются из встроенного каталога.
package recommendation

import (
	"context"
	"math/rand"
	"strings"

	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

// WardrobeRepository описывает доступ к гардеробу для подбора.
type WardrobeRepository interface {
	SearchWardrobeItems(ctx context.Context, userUID string, filter models.WardrobeFilter) ([]*models.WardrobeItem, error)
}

// Service реализует подбор образов.
type Service struct {
	wardrobe WardrobeRepository
}

// New создает новый экземпляр Service.
func New(wardrobe WardrobeRepository) *Service {
	return &Service{wardrobe: wardrobe}
}

// Встроенные варианты на случай пустого гардероба.
var fallbackPieces = map[string][]models.OutfitPiece{
	"top": {
		{Name: "Classic white shirt", Color: "white", Type: "shirt"},
		{Name: "Navy crew-neck tee", Color: "navy", Type: "t-shirt"},
		{Name: "Light beige blouse", Color: "beige", Type: "blouse"},
	},
	"bottom": {
		{Name: "Straight-cut jeans", Color: "blue", Type: "jeans"},
		{Name: "Slim khaki chinos", Color: "khaki", Type: "chinos"},
		{Name: "Black midi skirt", Color: "black", Type: "skirt"},
	},
	"shoes": {
		{Name: "White leather sneakers", Color: "white", Type: "sneakers"},
		{Name: "Brown suede loafers", Color: "brown", Type: "loafers"},
		{Name: "Black ankle boots", Color: "black", Type: "boots"},
	},
}

var slotGarments = map[string][]string{
	"top":    {"shirt", "t-shirt", "blouse", "sweater", "hoodie", "jacket"},
	"bottom": {"jeans", "chinos", "trousers", "skirt", "shorts"},
	"shoes":  {"sneakers", "loafers", "boots", "sandals", "heels"},
}

// Generate собирает один образ для пользователя с учетом сезона и формальности.
func (s *Service) Generate(ctx context.Context, userUID, season, formality string) (*models.OutfitSuggestion, error) {
	items, err := s.wardrobe.SearchWardrobeItems(ctx, userUID, models.WardrobeFilter{
		Season:    season,
		Formality: formality,
	})
	if err != nil {
		return nil, err
	}

	slots := bucketBySlot(items)
	outfit := models.Outfit{
		Top:    pickPiece(slots, "top"),
		Bottom: pickPiece(slots, "bottom"),
		Shoes:  pickPiece(slots, "shoes"),
	}

	meta := map[string]any{"engine": "mock"}
	if season != "" {
		meta["season"] = season
	}
	if formality != "" {
		meta["formality"] = formality
	}

	return &models.OutfitSuggestion{Outfit: outfit, Meta: meta}, nil
}

// Suggestions возвращает несколько вариантов образа.
func (s *Service) Suggestions(ctx context.Context, userUID string, count int) ([]*models.OutfitSuggestion, error) {
	if count <= 0 || count > 5 {
		count = 3
	}
	suggestions := make([]*models.OutfitSuggestion, 0, count)
	for range count {
		suggestion, err := s.Generate(ctx, userUID, "", "")
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions, nil
}

func bucketBySlot(items []*models.WardrobeItem) map[string][]models.OutfitPiece {
	buckets := make(map[string][]models.OutfitPiece)
	for _, item := range items {
		if item.Status != "active" {
			continue
		}
		slot := slotFor(item.GarmentType)
		if slot == "" {
			continue
		}
		buckets[slot] = append(buckets[slot], models.OutfitPiece{
			Name:  pieceName(item),
			Color: item.Color,
			Type:  item.GarmentType,
		})
	}
	return buckets
}

func pieceName(item *models.WardrobeItem) string {
	if item.Color == "" {
		return item.GarmentType
	}
	return item.Color + " " + item.GarmentType
}

func slotFor(garmentType string) string {
	garment := strings.ToLower(garmentType)
	for slot, garments := range slotGarments {
		for _, g := range garments {
			if g == garment {
				return slot
			}
		}
	}
	return ""
}

func pickPiece(buckets map[string][]models.OutfitPiece, slot string) models.OutfitPiece {
	pieces := buckets[slot]
	if len(pieces) == 0 {
		pieces = fallbackPieces[slot]
	}
	return pieces[rand.Intn(len(pieces))]
}
