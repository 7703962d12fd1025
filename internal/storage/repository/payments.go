package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

// SavePayment сохраняет новую запись о платеже в статусе pending и возвращает её ID.
func (s *Storage) SavePayment(ctx context.Context, p models.Payment) (int, error) {
	const op = "storage.SavePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_uid, order_id, gateway, gateway_order_id, amount, currency, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		p.UserUID, p.OrderID, p.Gateway, p.GatewayOrderID, p.Amount, p.Currency,
		models.PaymentStatusPending).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPaymentByGatewayOrderID возвращает платеж по ID заказа шлюза и владельцу.
func (s *Storage) GetPaymentByGatewayOrderID(ctx context.Context, gatewayOrderID, userUID string) (*models.Payment, error) {
	const op = "storage.GetPaymentByGatewayOrderID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, order_id, gateway, gateway_order_id,
			      COALESCE(gateway_payment_id, ''), COALESCE(signature, ''),
			      amount, currency, status, created_at
			  FROM payments
			  WHERE gateway_order_id = $1 AND user_uid = $2`
	var p models.Payment
	if err := s.DB.QueryRowContext(ctx, query, gatewayOrderID, userUID).Scan(
		&p.ID, &p.UserUID, &p.OrderID, &p.Gateway, &p.GatewayOrderID,
		&p.GatewayPaymentID, &p.Signature, &p.Amount, &p.Currency, &p.Status,
		&p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// ListPayments возвращает платежи пользователя, новые первыми.
func (s *Storage) ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, order_id, gateway, gateway_order_id,
			      COALESCE(gateway_payment_id, ''), COALESCE(signature, ''),
			      amount, currency, status, created_at
			  FROM payments
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.UserUID, &p.OrderID, &p.Gateway, &p.GatewayOrderID,
			&p.GatewayPaymentID, &p.Signature, &p.Amount, &p.Currency, &p.Status,
			&p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ConfirmPayment переводит платеж из pending в success и активирует премиум
// владельцу в одной транзакции: выставляет is_premium и обнуляет счётчик задач.
//
// Переход выполняется условием status = 'pending', поэтому повторный вызов
// для уже подтвержденного платежа ничего не меняет (возвращает confirmed=false
// без ошибки) — дубликаты callback'ов шлюза не обрабатываются дважды.
// Если записи о платеже для пары заказ/пользователь нет вовсе, возвращается
// ErrNotFound.
func (s *Storage) ConfirmPayment(ctx context.Context, gatewayOrderID, userUID, gatewayPaymentID, signature string) (bool, error) {
	const op = "storage.ConfirmPayment"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE payments
			  SET status = $1, gateway_payment_id = $2, signature = $3
			  WHERE gateway_order_id = $4 AND user_uid = $5 AND status = $6`
	result, err := tx.ExecContext(ctx, query,
		models.PaymentStatusSuccess, gatewayPaymentID, signature,
		gatewayOrderID, userUID, models.PaymentStatusPending)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		var status string
		query = `SELECT status FROM payments WHERE gateway_order_id = $1 AND user_uid = $2`
		err = tx.QueryRowContext(ctx, query, gatewayOrderID, userUID).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		if err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		if err = tx.Commit(); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		return false, nil
	}

	query = `UPDATE users SET is_premium = true, task_count = 0 WHERE uid = $1`
	if _, err = tx.ExecContext(ctx, query, userUID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}
