// Package affiliate содержит бизнес-логику партнерского каталога товаров.
package affiliate

import (
	"context"

	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

// Repository описывает контракт хранилища партнерских товаров.
type Repository interface {
	CreateAffiliateProduct(ctx context.Context, p models.AffiliateProduct) (int, error)
	ListAffiliateProducts(ctx context.Context, productName string) ([]*models.AffiliateProduct, error)
}

// Service реализует операции с каталогом.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create добавляет товар в каталог. Валюта по умолчанию INR, статус active.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyAffiliateProduct) (*models.AffiliateProduct, error) {
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	platform := req.Platform
	if platform == "" {
		platform = "other"
	}

	product := models.AffiliateProduct{
		ProductName:  req.ProductName,
		AffiliateURL: req.AffiliateURL,
		Price:        req.Price,
		Currency:     currency,
		Category:     req.Category,
		Platform:     platform,
		ImageURL:     req.ImageURL,
		Status:       "active",
		UserUID:      userUID,
	}
	id, err := s.repo.CreateAffiliateProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ID = id
	return &product, nil
}

// List возвращает товары каталога, опционально отфильтрованные по названию.
func (s *Service) List(ctx context.Context, productName string) ([]*models.AffiliateProduct, error) {
	return s.repo.ListAffiliateProducts(ctx, productName)
}
