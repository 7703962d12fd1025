package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

// CreateWardrobeItem вставляет новый предмет гардероба и возвращает его ID.
func (s *Storage) CreateWardrobeItem(ctx context.Context, item models.WardrobeItem) (int, error) {
	const op = "storage.CreateWardrobeItem"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO wardrobe_items (garment_type, color, pattern, fabric, season,
			      formality, image_url, status, user_uid)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		item.GarmentType, item.Color, item.Pattern, item.Fabric, item.Season,
		item.Formality, item.ImageURL, item.Status, item.UserUID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListWardrobeItems возвращает предметы гардероба пользователя, новые первыми.
func (s *Storage) ListWardrobeItems(ctx context.Context, userUID string) ([]*models.WardrobeItem, error) {
	const op = "storage.ListWardrobeItems"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, garment_type, color, pattern, fabric, season, formality,
			      image_url, status, user_uid, added_date
			  FROM wardrobe_items
			  WHERE user_uid = $1
			  ORDER BY added_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanWardrobeRows(op, rows)
}

// SearchWardrobeItems возвращает предметы гардероба пользователя по фильтру.
// Непустые поля фильтра сравниваются подстрокой без учета регистра.
func (s *Storage) SearchWardrobeItems(ctx context.Context, userUID string, filter models.WardrobeFilter) ([]*models.WardrobeItem, error) {
	const op = "storage.SearchWardrobeItems"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	conditions := []string{"user_uid = $1"}
	args := []any{userUID}
	addFilter := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+value+"%")
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
	}
	addFilter("color", filter.Color)
	addFilter("season", filter.Season)
	addFilter("garment_type", filter.GarmentType)
	addFilter("formality", filter.Formality)

	query := `SELECT id, garment_type, color, pattern, fabric, season, formality,
			      image_url, status, user_uid, added_date
			  FROM wardrobe_items
			  WHERE ` + strings.Join(conditions, " AND ") + `
			  ORDER BY added_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanWardrobeRows(op, rows)
}

// WardrobeAnalytics считает предметы гардероба пользователя в разрезе цвета,
// сезона, типа одежды и формальности. Предметы с пустым значением атрибута
// в соответствующий разрез не попадают.
func (s *Storage) WardrobeAnalytics(ctx context.Context, userUID string) (*models.WardrobeAnalytics, error) {
	const op = "storage.WardrobeAnalytics"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	stats := &models.WardrobeAnalytics{
		ByColor:       map[string]int{},
		BySeason:      map[string]int{},
		ByGarmentType: map[string]int{},
		ByFormality:   map[string]int{},
	}

	query := `SELECT COUNT(*) FROM wardrobe_items WHERE user_uid = $1`
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&stats.TotalItems); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Имена колонок фиксированы, в запрос не попадает пользовательский ввод.
	countBy := func(column string, dest map[string]int) error {
		query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM wardrobe_items
				  WHERE user_uid = $1 AND %s <> ''
				  GROUP BY %s`, column, column, column)
		rows, err := s.DB.QueryContext(ctx, query, userUID)
		if err != nil {
			return err
		}
		defer func() {
			_ = rows.Close()
		}()
		for rows.Next() {
			var value string
			var count int
			if err := rows.Scan(&value, &count); err != nil {
				return err
			}
			dest[value] = count
		}
		return rows.Err()
	}

	if err := countBy("color", stats.ByColor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := countBy("season", stats.BySeason); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := countBy("garment_type", stats.ByGarmentType); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := countBy("formality", stats.ByFormality); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// UpdateWardrobeItem обновляет предмет по ID и владельцу, возвращает обновлённую запись.
func (s *Storage) UpdateWardrobeItem(ctx context.Context, item models.WardrobeItem) (*models.WardrobeItem, error) {
	const op = "storage.UpdateWardrobeItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE wardrobe_items
			  SET garment_type = $1, color = $2, pattern = $3, fabric = $4, season = $5,
			      formality = $6, image_url = $7, status = $8
			  WHERE id = $9 AND user_uid = $10
			  RETURNING id, garment_type, color, pattern, fabric, season, formality,
			      image_url, status, user_uid, added_date`
	var it models.WardrobeItem
	if err := s.DB.QueryRowContext(ctx, query,
		item.GarmentType, item.Color, item.Pattern, item.Fabric, item.Season,
		item.Formality, item.ImageURL, item.Status, item.ID, item.UserUID).Scan(
		&it.ID, &it.GarmentType, &it.Color, &it.Pattern, &it.Fabric, &it.Season,
		&it.Formality, &it.ImageURL, &it.Status, &it.UserUID, &it.AddedDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &it, nil
}

// RemoveWardrobeItem удаляет предмет по ID и владельцу.
func (s *Storage) RemoveWardrobeItem(ctx context.Context, id int, userUID string) error {
	const op = "storage.RemoveWardrobeItem"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM wardrobe_items WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func scanWardrobeRows(op string, rows *sql.Rows) ([]*models.WardrobeItem, error) {
	var result []*models.WardrobeItem
	for rows.Next() {
		var it models.WardrobeItem
		if err := rows.Scan(&it.ID, &it.GarmentType, &it.Color, &it.Pattern, &it.Fabric,
			&it.Season, &it.Formality, &it.ImageURL, &it.Status, &it.UserUID, &it.AddedDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
