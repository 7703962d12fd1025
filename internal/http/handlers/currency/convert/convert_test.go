package convert

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/outfitbloom/outfitbloom-backend/internal/services/currency"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Convert(ctx context.Context, from, to string, amount float64) (*currency.Conversion, error) {
	args := m.Called(ctx, from, to, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*currency.Conversion), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServeHTTP(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		mockSetup  func(m *MockService)
		wantStatus int
		wantInBody string
	}{
		{
			name:  "успешная конвертация",
			query: "?amount=3.99&from=usd&to=inr",
			mockSetup: func(m *MockService) {
				m.On("Convert", mock.Anything, "USD", "INR", 3.99).
					Return(&currency.Conversion{
						From: "USD", To: "INR", Amount: 3.99, Rate: 83.0, Converted: 331.17,
					}, nil)
			},
			wantStatus: http.StatusOK,
			wantInBody: `"converted":331.17`,
		},
		{
			name:       "нет кодов валют",
			query:      "?amount=3.99",
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantInBody: "3-letter currency codes",
		},
		{
			name:       "некорректная сумма",
			query:      "?amount=abc&from=USD&to=INR",
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantInBody: "positive number",
		},
		{
			name:       "отрицательная сумма",
			query:      "?amount=-5&from=USD&to=INR",
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantInBody: "positive number",
		},
		{
			name:  "неизвестная валюта",
			query: "?amount=10&from=USD&to=XXX",
			mockSetup: func(m *MockService) {
				m.On("Convert", mock.Anything, "USD", "XXX", 10.0).
					Return(nil, currency.ErrUnknownCurrency)
			},
			wantStatus: http.StatusBadRequest,
			wantInBody: "unknown currency code",
		},
		{
			name:  "провайдер курсов недоступен",
			query: "?amount=10&from=USD&to=INR",
			mockSetup: func(m *MockService) {
				m.On("Convert", mock.Anything, "USD", "INR", 10.0).
					Return(nil, assert.AnError)
			},
			wantStatus: http.StatusBadGateway,
			wantInBody: "failed to fetch exchange rates",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := new(MockService)
			tc.mockSetup(service)
			handler := New(newNoopLogger(), service)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/convert"+tc.query, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantInBody)
			service.AssertExpectations(t)
		})
	}
}
