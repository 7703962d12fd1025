// Package gems содержит бизнес-логику начисления наградных кристаллов.
package gems

import (
	"context"

	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

// Repository описывает контракт хранилища баланса кристаллов.
type Repository interface {
	AddGems(ctx context.Context, userUID, action string, amount int) (int, error)
}

// Service реализует операции с кристаллами.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Reward начисляет кристаллы за действие и возвращает новый баланс.
// Начисление и запись в журнал выполняются атомарно на уровне хранилища.
func (s *Service) Reward(ctx context.Context, userUID string, req models.DummyGemsReward) (int, error) {
	return s.repo.AddGems(ctx, userUID, req.Action, req.Amount)
}
