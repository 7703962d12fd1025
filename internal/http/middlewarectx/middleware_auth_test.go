package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/outfitbloom/outfitbloom-backend/internal/lib/jwt"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.CustomClaims), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJWTMiddleware(t *testing.T) {
	const testUserUID = "11111111-2222-3333-4444-555555555555"

	t.Run("валидный токен кладет uid и email в контекст", func(t *testing.T) {
		service := new(MockAuthService)
		service.On("ValidateToken", mock.Anything, "valid-token").
			Return(&jwt.CustomClaims{UserUID: testUserUID, Email: "user@example.com"}, nil)

		var gotUID, gotEmail any
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUID = r.Context().Value(UserUID)
			gotEmail = r.Context().Value(Email)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rr := httptest.NewRecorder()

		JWTMiddleware(service, newNoopLogger())(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, testUserUID, gotUID)
		assert.Equal(t, "user@example.com", gotEmail)
	})

	t.Run("запрос без заголовка Authorization отклоняется", func(t *testing.T) {
		service := new(MockAuthService)
		nextCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
		rr := httptest.NewRecorder()

		JWTMiddleware(service, newNoopLogger())(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, nextCalled)
		service.AssertNotCalled(t, "ValidateToken")
	})

	t.Run("заголовок без схемы Bearer отклоняется", func(t *testing.T) {
		service := new(MockAuthService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rr := httptest.NewRecorder()

		JWTMiddleware(service, newNoopLogger())(http.NotFoundHandler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("просроченный или битый токен отклоняется", func(t *testing.T) {
		service := new(MockAuthService)
		service.On("ValidateToken", mock.Anything, "expired-token").
			Return(nil, assert.AnError)

		nextCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		rr := httptest.NewRecorder()

		JWTMiddleware(service, newNoopLogger())(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, nextCalled)
	})
}
