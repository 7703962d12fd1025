// Package exchange содержит клиент внешнего провайдера курсов валют
// (ExchangeRate-API v6). Курсы не кешируются: каждый вызов — живой запрос.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRatesUnavailable возвращается, когда провайдер ответил без набора курсов.
var ErrRatesUnavailable = errors.New("failed to fetch exchange rates")

// Rates — курсы валют относительно базовой.
type Rates struct {
	Base        string             `json:"base"`
	Rates       map[string]float64 `json:"rates"`
	LastUpdated string             `json:"last_updated"`
}

type ratesResponse struct {
	Result          string             `json:"result"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
	TimeLastUpdate  string             `json:"time_last_update_utc"`
}

// Client — HTTP-клиент ExchangeRate-API.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент с ключом провайдера.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		apiURL:     "https://v6.exchangerate-api.com/v6",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetRates запрашивает актуальные курсы для базовой валюты.
func (c *Client) GetRates(ctx context.Context, baseCurrency string) (*Rates, error) {
	const op = "exchange.GetRates"

	url := fmt.Sprintf("%s/%s/latest/%s", c.apiURL, c.apiKey, baseCurrency)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if body.Result != "success" || body.ConversionRates == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrRatesUnavailable)
	}

	return &Rates{
		Base:        baseCurrency,
		Rates:       body.ConversionRates,
		LastUpdated: body.TimeLastUpdate,
	}, nil
}
