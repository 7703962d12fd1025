// Package geoip определяет страну клиента по IP-адресу через базу MaxMind GeoIP2.
// Код страны используется для выбора платежного шлюза.
package geoip

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// ErrUnavailable возвращается, когда резолвер не инициализирован (база не задана).
var ErrUnavailable = errors.New("geoip resolver unavailable")

// CountryResolver описывает интерфейс определения ISO-кода страны по IP.
type CountryResolver interface {
	CountryCode(ip string) (string, error)
}

// Resolver реализует CountryResolver поверх базы MaxMind GeoIP2.
type Resolver struct {
	reader *geoip2.Reader
}

// NewResolver открывает базу GeoIP по указанному пути.
// При пустом пути возвращает nil-резолвер: выбор шлюза падает на дефолт.
func NewResolver(path string) (*Resolver, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database: %w", err)
	}
	return &Resolver{reader: reader}, nil
}

// CountryCode возвращает ISO-код страны для переданного IP.
func (r *Resolver) CountryCode(ip string) (string, error) {
	if r == nil || r.reader == nil {
		return "", ErrUnavailable
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", fmt.Errorf("geoip: invalid ip %q", ip)
	}
	record, err := r.reader.Country(parsed)
	if err != nil {
		return "", fmt.Errorf("geoip: lookup country: %w", err)
	}
	if record == nil || record.Country.IsoCode == "" {
		return "", nil
	}
	return record.Country.IsoCode, nil
}

// Close закрывает базу.
func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}
