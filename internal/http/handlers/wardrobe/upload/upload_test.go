package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/outfitbloom/outfitbloom-backend/internal/http/middlewarectx"
	"github.com/outfitbloom/outfitbloom-backend/internal/models"
	"github.com/outfitbloom/outfitbloom-backend/internal/services/wardrobe"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateWithImage(ctx context.Context, userUID string, req models.DummyWardrobeItem, filename string, file io.Reader) (*models.WardrobeItem, error) {
	args := m.Called(ctx, userUID, req, filename, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WardrobeItem), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testUserUID = "11111111-2222-3333-4444-555555555555"

func newUploadForm(t *testing.T, fields map[string]string, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, value := range fields {
		require.NoError(t, mw.WriteField(field, value))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestServeHTTP(t *testing.T) {
	validFields := map[string]string{
		"garment_type": "shirt",
		"color":        "red",
		"season":       "summer",
	}

	cases := []struct {
		name       string
		fields     map[string]string
		filename   string
		userUID    string
		mockSetup  func(m *MockService)
		wantStatus int
		wantInBody string
	}{
		{
			name:     "успешная загрузка предмета с изображением",
			fields:   validFields,
			filename: "look.jpg",
			userUID:  testUserUID,
			mockSetup: func(m *MockService) {
				m.On("CreateWithImage", mock.Anything, testUserUID, mock.MatchedBy(func(req models.DummyWardrobeItem) bool {
					return req.GarmentType == "shirt" && req.Color == "red"
				}), "look.jpg", mock.Anything).
					Return(&models.WardrobeItem{
						ID:       5,
						ImageURL: "https://res.cloudinary.com/demo/image/upload/look.jpg",
					}, nil)
			},
			wantStatus: http.StatusCreated,
			wantInBody: `"image_url":"https://res.cloudinary.com/demo/image/upload/look.jpg"`,
		},
		{
			name:       "файл изображения отсутствует",
			fields:     validFields,
			filename:   "",
			userUID:    testUserUID,
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantInBody: "image file is required",
		},
		{
			name:       "неподдерживаемый формат файла",
			fields:     validFields,
			filename:   "look.gif",
			userUID:    testUserUID,
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantInBody: "image must be jpg, jpeg or png",
		},
		{
			name:       "нет обязательных полей",
			fields:     map[string]string{"color": "red"},
			filename:   "look.jpg",
			userUID:    testUserUID,
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantInBody: "required field",
		},
		{
			name:       "нет пользователя в контексте",
			fields:     validFields,
			filename:   "look.jpg",
			userUID:    "",
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusUnauthorized,
			wantInBody: "unauthorized",
		},
		{
			name:     "хранилище изображений не настроено",
			fields:   validFields,
			filename: "look.jpg",
			userUID:  testUserUID,
			mockSetup: func(m *MockService) {
				m.On("CreateWithImage", mock.Anything, testUserUID, mock.Anything, "look.jpg", mock.Anything).
					Return(nil, fmt.Errorf("services.wardrobe.CreateWithImage: %w", wardrobe.ErrUploadsDisabled))
			},
			wantStatus: http.StatusServiceUnavailable,
			wantInBody: "image uploads are not configured",
		},
		{
			name:     "внутренняя ошибка сервиса",
			fields:   validFields,
			filename: "look.jpg",
			userUID:  testUserUID,
			mockSetup: func(m *MockService) {
				m.On("CreateWithImage", mock.Anything, testUserUID, mock.Anything, "look.jpg", mock.Anything).
					Return(nil, assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
			wantInBody: "failed to create wardrobe item",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := new(MockService)
			tc.mockSetup(service)
			handler := New(newNoopLogger(), service)

			body, contentType := newUploadForm(t, tc.fields, tc.filename)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/wardrobe/upload", body)
			req.Header.Set("Content-Type", contentType)
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
