package models

import "time"

// WardrobeItem представляет предмет гардероба пользователя.
type WardrobeItem struct {
	ID          int       `json:"id"`
	GarmentType string    `json:"garment_type"` // Тип одежды (shirt, pants и т.д.)
	Color       string    `json:"color"`
	Pattern     string    `json:"pattern"`
	Fabric      string    `json:"fabric"`
	Season      string    `json:"season"`
	Formality   string    `json:"formality"`
	ImageURL    string    `json:"image_url"`
	Status      string    `json:"status"` // active или archived
	UserUID     string    `json:"user_uid"`
	AddedDate   time.Time `json:"added_date"`
}

// DummyWardrobeItem используется для приёма данных из JSON-запроса
// до их валидации и сохранения.
type DummyWardrobeItem struct {
	GarmentType string `json:"garment_type" validate:"required,min=2"`
	Color       string `json:"color" validate:"omitempty"`
	Pattern     string `json:"pattern" validate:"omitempty"`
	Fabric      string `json:"fabric" validate:"omitempty"`
	Season      string `json:"season" validate:"omitempty"`
	Formality   string `json:"formality" validate:"omitempty"`
	ImageURL    string `json:"image_url" validate:"omitempty,uri"`
	Status      string `json:"status" validate:"omitempty,oneof=active archived"`
}

// WardrobeAnalytics — сводка гардероба пользователя: общее число предметов
// и количество в разрезе каждого атрибута. Пустые значения атрибутов
// в разрезы не попадают.
type WardrobeAnalytics struct {
	TotalItems    int            `json:"total_items"`
	ByColor       map[string]int `json:"by_color"`
	BySeason      map[string]int `json:"by_season"`
	ByGarmentType map[string]int `json:"by_garment_type"`
	ByFormality   map[string]int `json:"by_formality"`
}

// WardrobeFilter представляет параметры поиска по гардеробу,
// которые передаются в слой доступа к данным. Пустые поля не участвуют в фильтре.
type WardrobeFilter struct {
	Color       string
	Season      string
	GarmentType string
	Formality   string
}
