package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

// CreateTask вставляет новую задачу и возвращает её ID.
//
// Для пользователей без премиума проверка квоты, инкремент счётчика и вставка
// выполняются в одной транзакции с блокировкой строки пользователя, чтобы
// параллельные запросы около границы квоты не разводили счётчик с фактом.
// При достижении предела возвращает ErrQuotaExceeded.
func (s *Storage) CreateTask(ctx context.Context, task models.Task) (int, error) {
	const op = "storage.CreateTask"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var isPremium bool
	var taskCount int
	query := `SELECT is_premium, task_count FROM users WHERE uid = $1 FOR UPDATE`
	if err = tx.QueryRowContext(ctx, query, task.UserUID).Scan(&isPremium, &taskCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if !isPremium {
		if taskCount >= models.FreeTaskLimit {
			return 0, fmt.Errorf("%s: %w", op, ErrQuotaExceeded)
		}
		query = `UPDATE users SET task_count = task_count + 1 WHERE uid = $1`
		if _, err = tx.ExecContext(ctx, query, task.UserUID); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	var newID int
	query = `INSERT INTO tasks (title, description, due_date, priority, completed, language, user_uid)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`
	if err = tx.QueryRowContext(ctx, query,
		task.Title, task.Description, task.DueDate, task.Priority, task.Completed,
		task.Language, task.UserUID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListTasks возвращает задачи пользователя, отсортированные по сроку выполнения.
func (s *Storage) ListTasks(ctx context.Context, userUID string) ([]*models.Task, error) {
	const op = "storage.ListTasks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, due_date, priority, completed, language, user_uid, created_at
			  FROM tasks
			  WHERE user_uid = $1
			  ORDER BY due_date ASC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Priority,
			&t.Completed, &t.Language, &t.UserUID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateTask обновляет задачу по ID и владельцу, возвращает обновлённую запись.
// Фильтр по user_uid не даёт изменить чужую задачу: для неё вернётся ErrNotFound.
func (s *Storage) UpdateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	const op = "storage.UpdateTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE tasks
			  SET title = $1, description = $2, due_date = $3, priority = $4,
			      completed = $5, language = $6
			  WHERE id = $7 AND user_uid = $8
			  RETURNING id, title, description, due_date, priority, completed, language, user_uid, created_at`
	var t models.Task
	if err := s.DB.QueryRowContext(ctx, query,
		task.Title, task.Description, task.DueDate, task.Priority, task.Completed,
		task.Language, task.ID, task.UserUID).Scan(&t.ID, &t.Title, &t.Description,
		&t.DueDate, &t.Priority, &t.Completed, &t.Language, &t.UserUID, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

// RemoveTask удаляет задачу по ID и владельцу.
//
// Для пользователей без премиума декремент счётчика квоты выполняется в той же
// транзакции и не опускает счётчик ниже нуля.
func (s *Storage) RemoveTask(ctx context.Context, id int, userUID string) error {
	const op = "storage.RemoveTask"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM tasks WHERE id = $1 AND user_uid = $2`
	result, err := tx.ExecContext(ctx, query, id, userUID)
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

	query = `UPDATE users
			 SET task_count = GREATEST(task_count - 1, 0)
			 WHERE uid = $1 AND is_premium = false`
	if _, err = tx.ExecContext(ctx, query, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
