package models

// OutfitPiece — один предмет рекомендованного образа.
type OutfitPiece struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Type  string `json:"type"`
}

// Outfit — рекомендованный комплект одежды.
type Outfit struct {
	Top    OutfitPiece `json:"top"`
	Bottom OutfitPiece `json:"bottom"`
	Shoes  OutfitPiece `json:"shoes"`
}

// OutfitSuggestion — образ вместе с метаданными генерации.
type OutfitSuggestion struct {
	Outfit Outfit         `json:"outfit"`
	Meta   map[string]any `json:"meta"`
}
