// Package models содержит доменные структуры задач,
// а также вспомогательные типы для работы с данными из внешних источников (JSON-запросы).
package models

import "time"

// Task представляет собой основную модель задачи,
// используемую в бизнес-логике и хранилище.
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`       // Заголовок задачи
	Description string    `json:"description"` // Описание задачи
	DueDate     time.Time `json:"due_date"`    // Срок выполнения
	Priority    string    `json:"priority"`    // Приоритет: low, medium или high
	Completed   bool      `json:"completed"`   // Признак выполнения
	Language    string    `json:"language"`    // Язык задачи
	UserUID     string    `json:"user_uid"`    // Владелец задачи
	CreatedAt   time.Time `json:"created_at"`
}

// DummyTask используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Task.
// Дата приходит в виде строки, чтобы её можно было валидировать и парсить вручную.
type DummyTask struct {
	Title       string `json:"title" validate:"required"`                            // Заголовок
	Description string `json:"description" validate:"required"`                      // Описание
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02"`     // Срок в формате 2006-01-02
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`  // Приоритет (по умолчанию medium)
	Completed   *bool  `json:"completed,omitempty"`                                  // Признак выполнения (для обновления)
	Language    string `json:"language" validate:"omitempty"`                        // Язык (по умолчанию язык пользователя)
}
