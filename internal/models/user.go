// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля, признак премиум-доступа
// и счётчик задач бесплатного тарифа.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID         string    `json:"uid"`      // Уникальный идентификатор пользователя
	Name         string    `json:"name"`     // Отображаемое имя
	Email        string    `json:"email"`    // Электронная почта (уникальная)
	PasswordHash string    `json:"-"`        // Хэш пароля пользователя
	IsPremium    bool      `json:"is_premium"` // Признак оплаченного премиум-доступа
	TaskCount    int       `json:"task_count"` // Счётчик задач бесплатного тарифа
	Language     string    `json:"language"` // Язык интерфейса, по умолчанию en
	Gems         int       `json:"gems"`     // Баланс наградных кристаллов
	CreatedAt    time.Time `json:"created_at"`
}

// FreeTaskLimit — предел количества задач для пользователей без премиума.
const FreeTaskLimit = 10
