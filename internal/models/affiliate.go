package models

import "time"

// AffiliateProduct представляет товар партнерского каталога.
type AffiliateProduct struct {
	ID           int       `json:"id"`
	ProductName  string    `json:"product_name"`
	AffiliateURL string    `json:"affiliate_url"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"` // По умолчанию INR
	Category     string    `json:"category"`
	Platform     string    `json:"platform"` // amazon, flipkart, myntra или other
	ImageURL     string    `json:"image_url"`
	Status       string    `json:"status"` // active, inactive, out_of_stock
	UserUID      string    `json:"user_uid,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// DummyAffiliateProduct используется для приёма данных из JSON-запроса.
type DummyAffiliateProduct struct {
	ProductName  string  `json:"product_name" validate:"required"`
	AffiliateURL string  `json:"affiliate_url" validate:"required,uri"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Currency     string  `json:"currency" validate:"omitempty,len=3"`
	Category     string  `json:"category" validate:"omitempty"`
	Platform     string  `json:"platform" validate:"omitempty,oneof=amazon flipkart myntra other"`
	ImageURL     string  `json:"image_url" validate:"omitempty,uri"`
}
