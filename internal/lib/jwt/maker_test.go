package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	const (
		userUID = "11111111-2222-3333-4444-555555555555"
		email   = "user@example.com"
	)

	t.Run("токен парсится с исходными claims", func(t *testing.T) {
		maker := NewJWTMaker("test-secret", time.Hour)

		token, err := maker.GenerateToken(userUID, email)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := maker.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, userUID, claims.UserUID)
		assert.Equal(t, email, claims.Email)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	})

	t.Run("чужой секрет отклоняется", func(t *testing.T) {
		issuer := NewJWTMaker("secret-a", time.Hour)
		verifier := NewJWTMaker("secret-b", time.Hour)

		token, err := issuer.GenerateToken(userUID, email)
		require.NoError(t, err)

		_, err = verifier.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("просроченный токен отклоняется", func(t *testing.T) {
		maker := NewJWTMaker("test-secret", -time.Minute)

		token, err := maker.GenerateToken(userUID, email)
		require.NoError(t, err)

		_, err = maker.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("мусор вместо токена", func(t *testing.T) {
		maker := NewJWTMaker("test-secret", time.Hour)

		_, err := maker.ParseToken("not.a.token")
		assert.Error(t, err)
	})
}
