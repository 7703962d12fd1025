package repository

import (
	"context"
	"fmt"

	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

// CreateAffiliateProduct вставляет новый товар партнерского каталога и возвращает его ID.
func (s *Storage) CreateAffiliateProduct(ctx context.Context, p models.AffiliateProduct) (int, error) {
	const op = "storage.CreateAffiliateProduct"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO affiliate_products (product_name, affiliate_url, price, currency,
			      category, platform, image_url, status, user_uid)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		p.ProductName, p.AffiliateURL, p.Price, p.Currency, p.Category, p.Platform,
		p.ImageURL, p.Status, p.UserUID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListAffiliateProducts возвращает товары каталога, опционально фильтруя по названию.
func (s *Storage) ListAffiliateProducts(ctx context.Context, productName string) ([]*models.AffiliateProduct, error) {
	const op = "storage.ListAffiliateProducts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, product_name, affiliate_url, price, currency, category, platform,
			      image_url, status, COALESCE(user_uid::text, ''), created_at
			  FROM affiliate_products
			  WHERE $1 = '' OR product_name ILIKE '%' || $1 || '%'
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, productName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AffiliateProduct
	for rows.Next() {
		var p models.AffiliateProduct
		if err := rows.Scan(&p.ID, &p.ProductName, &p.AffiliateURL, &p.Price, &p.Currency,
			&p.Category, &p.Platform, &p.ImageURL, &p.Status, &p.UserUID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
