// Package smtp реализует транспорт отправки почтовых квитанций через SMTP со STARTTLS.
package smtp

import "io"

// Client описывает минимальный контракт SMTP-сессии, достаточный для отправки письма.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface описывает фабрику SMTP-соединений для воркера уведомлений.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
