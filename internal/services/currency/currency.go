// Package currency содержит бизнес-логику конвертации валют поверх
// внешнего провайдера курсов. Курсы запрашиваются на каждый вызов.
package currency

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/outfitbloom/outfitbloom-backend/internal/exchange"
)

// ErrUnknownCurrency возвращается, когда код валюты не известен провайдеру.
var ErrUnknownCurrency = errors.New("unknown currency code")

// RatesProvider описывает провайдера курсов валют.
type RatesProvider interface {
	GetRates(ctx context.Context, baseCurrency string) (*exchange.Rates, error)
}

// Conversion — результат конвертации суммы между валютами.
type Conversion struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	Amount      float64 `json:"amount"`
	Rate        float64 `json:"rate"`
	Converted   float64 `json:"converted"`
	LastUpdated string  `json:"last_updated"`
}

// Service реализует валютные операции.
type Service struct {
	rates RatesProvider
}

// New создает новый экземпляр Service.
func New(rates RatesProvider) *Service {
	return &Service{rates: rates}
}

// Rates возвращает актуальные курсы для базовой валюты.
func (s *Service) Rates(ctx context.Context, base string) (*exchange.Rates, error) {
	return s.rates.GetRates(ctx, base)
}

// Convert конвертирует сумму из одной валюты в другую по живому курсу.
// Результат округляется до двух знаков.
func (s *Service) Convert(ctx context.Context, from, to string, amount float64) (*Conversion, error) {
	const op = "services.currency.Convert"

	rates, err := s.rates.GetRates(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rate, ok := rates.Rates[to]
	if !ok {
		return nil, fmt.Errorf("%s: %q: %w", op, to, ErrUnknownCurrency)
	}

	return &Conversion{
		From:        from,
		To:          to,
		Amount:      amount,
		Rate:        rate,
		Converted:   round2(amount * rate),
		LastUpdated: rates.LastUpdated,
	}, nil
}

// Supported возвращает отсортированный список поддерживаемых кодов валют.
func (s *Service) Supported(ctx context.Context) ([]string, error) {
	const op = "services.currency.Supported"

	rates, err := s.rates.GetRates(ctx, "USD")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	codes := make([]string, 0, len(rates.Rates))
	for code := range rates.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
