// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, задач, гардероба, платежей и партнерского каталога.
// Предоставляет методы создания, чтения, обновления и удаления записей;
// доступ к чужим записям отсекается фильтром по владельцу в самих запросах.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища, по которым обработчики выбирают HTTP-статус.
var (
	// ErrNotFound — запись не существует или принадлежит другому пользователю.
	ErrNotFound = errors.New("record not found")
	// ErrQuotaExceeded — достигнут предел задач бесплатного тарифа.
	ErrQuotaExceeded = errors.New("free task quota exceeded")
	// ErrUserExists — пользователь с таким email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с доменными сущностями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}
