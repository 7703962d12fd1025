package models

import "time"

// GemsLog представляет запись журнала начисления наградных кристаллов.
type GemsLog struct {
	ID      int       `json:"id"`
	UserUID string    `json:"user_uid"`
	Action  string    `json:"action"` // Например: login, purchase, invite
	Amount  int       `json:"amount"`
	Date    time.Time `json:"date"`
}

// DummyGemsReward используется для приёма запроса на начисление кристаллов.
type DummyGemsReward struct {
	Action string `json:"action" validate:"required"`
	Amount int    `json:"amount" validate:"required,gt=0"`
}
