package create

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/outfitbloom/outfitbloom-backend/internal/http/middlewarectx"
	"github.com/outfitbloom/outfitbloom-backend/internal/models"
	"github.com/outfitbloom/outfitbloom-backend/internal/storage/repository"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userUID string, req models.DummyTask) (*models.Task, error) {
	args := m.Called(ctx, userUID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testUserUID = "11111111-2222-3333-4444-555555555555"

func TestServeHTTP(t *testing.T) {
	cases := []struct {
		name        string
		body        string
		userUID     string
		mockSetup   func(m *MockService)
		wantStatus  int
		wantInBody  string
	}{
		{
			name:    "успешное создание",
			body:    `{"title": "Buy fabric", "description": "cotton", "due_date": "2026-09-15", "priority": "high"}`,
			userUID: testUserUID,
			mockSetup: func(m *MockService) {
				m.On("Create", mock.Anything, testUserUID, mock.Anything).
					Return(&models.Task{ID: 1, Title: "Buy fabric"}, nil)
			},
			wantStatus: http.StatusCreated,
			wantInBody: `"status":"OK"`,
		},
		{
			name:       "некорректный JSON",
			body:       `{"title": `,
			userUID:    testUserUID,
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantInBody: "invalid request body",
		},
		{
			name:       "ошибка валидации без обязательных полей",
			body:       `{"description": "no title"}`,
			userUID:    testUserUID,
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantInBody: "required field",
		},
		{
			name:       "дата в неверном формате",
			body:       `{"title": "t", "description": "d", "due_date": "15-09-2026", "priority": "low"}`,
			userUID:    testUserUID,
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantInBody: "can contain only date in format 2006-01-02",
		},
		{
			name:       "недопустимый приоритет",
			body:       `{"title": "t", "description": "d", "due_date": "2026-09-15", "priority": "urgent"}`,
			userUID:    testUserUID,
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantInBody: "must be one of",
		},
		{
			name:       "нет пользователя в контексте",
			body:       `{"title": "t", "description": "d", "due_date": "2026-09-15"}`,
			userUID:    "",
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusUnauthorized,
			wantInBody: "unauthorized",
		},
		{
			name:    "превышена квота бесплатного тарифа",
			body:    `{"title": "t", "description": "d", "due_date": "2026-09-15"}`,
			userUID: testUserUID,
			mockSetup: func(m *MockService) {
				m.On("Create", mock.Anything, testUserUID, mock.Anything).
					Return(nil, repository.ErrQuotaExceeded)
			},
			wantStatus: http.StatusForbidden,
			wantInBody: "free task limit reached",
		},
		{
			name:    "внутренняя ошибка сервиса",
			body:    `{"title": "t", "description": "d", "due_date": "2026-09-15"}`,
			userUID: testUserUID,
			mockSetup: func(m *MockService) {
				m.On("Create", mock.Anything, testUserUID, mock.Anything).
					Return(nil, assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
			wantInBody: "failed to create task",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := new(MockService)
			tc.mockSetup(service)
			handler := New(newNoopLogger(), service)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString(tc.body))
			if tc.userUID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tc.userUID))
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantInBody)
			service.AssertExpectations(t)
		})
	}
}

func TestServeHTTP_ResponsePayload(t *testing.T) {
	service := new(MockService)
	service.On("Create", mock.Anything, testUserUID, mock.MatchedBy(func(req models.DummyTask) bool {
		return req.Title == "Buy fabric" && req.DueDate == "2026-09-15"
	})).Return(&models.Task{ID: 42, Title: "Buy fabric", Priority: "medium"}, nil)

	handler := New(newNoopLogger(), service)

	body := `{"title": "Buy fabric", "description": "cotton", "due_date": "2026-09-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString(body))
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, testUserUID))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		Status string      `json:"status"`
		Data   models.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, 42, resp.Data.ID)
}
