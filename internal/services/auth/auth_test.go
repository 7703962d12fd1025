package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/outfitbloom/outfitbloom-backend/internal/lib/jwt"
	"github.com/outfitbloom/outfitbloom-backend/internal/lib/password"
	"github.com/outfitbloom/outfitbloom-backend/internal/models"
	"github.com/outfitbloom/outfitbloom-backend/internal/storage/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestRegister(t *testing.T) {
	t.Run("успешная регистрация хэширует пароль и ставит язык по умолчанию", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
			return user.Email == "new@example.com" &&
				user.Language == "en" &&
				user.PasswordHash != "secret123" &&
				password.CompareHash(user.PasswordHash, "secret123") == nil
		})).Return("uid-1", nil)

		svc := New(users, jwt.NewJWTMaker("test-secret", time.Hour))

		uid, err := svc.Register(context.Background(), "New User", "new@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", uid)
		users.AssertExpectations(t)
	})

	t.Run("дубликат email", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("RegisterUser", mock.Anything, mock.Anything).
			Return("", repository.ErrUserExists)

		svc := New(users, jwt.NewJWTMaker("test-secret", time.Hour))

		_, err := svc.Register(context.Background(), "Dup", "dup@example.com", "secret123")
		assert.ErrorIs(t, err, repository.ErrUserExists)
	})
}

func TestLogin(t *testing.T) {
	const userUID = "11111111-2222-3333-4444-555555555555"

	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	t.Run("валидные данные возвращают токен и пользователя", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByEmail", mock.Anything, "user@example.com").
			Return(&models.User{UUID: userUID, Email: "user@example.com", PasswordHash: hash}, nil)

		svc := New(users, jwt.NewJWTMaker("test-secret", time.Hour))

		token, user, err := svc.Login(context.Background(), "user@example.com", "secret123")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.Equal(t, userUID, user.UUID)

		claims, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, userUID, claims.UserUID)
		assert.Equal(t, "user@example.com", claims.Email)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByEmail", mock.Anything, "user@example.com").
			Return(&models.User{UUID: userUID, PasswordHash: hash}, nil)

		svc := New(users, jwt.NewJWTMaker("test-secret", time.Hour))

		_, _, err := svc.Login(context.Background(), "user@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("неизвестный email", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByEmail", mock.Anything, "ghost@example.com").
			Return(nil, repository.ErrNotFound)

		svc := New(users, jwt.NewJWTMaker("test-secret", time.Hour))

		_, _, err := svc.Login(context.Background(), "ghost@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("токен с чужим секретом не проходит валидацию", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByEmail", mock.Anything, "user@example.com").
			Return(&models.User{UUID: userUID, Email: "user@example.com", PasswordHash: hash}, nil)

		issuer := New(users, jwt.NewJWTMaker("other-secret", time.Hour))
		verifier := New(users, jwt.NewJWTMaker("test-secret", time.Hour))

		token, _, err := issuer.Login(context.Background(), "user@example.com", "secret123")
		require.NoError(t, err)

		_, err = verifier.ValidateToken(context.Background(), token)
		assert.Error(t, err)
	})
}
