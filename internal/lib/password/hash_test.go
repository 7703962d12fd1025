package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	t.Run("хэш соответствует исходному паролю", func(t *testing.T) {
		hash, err := GetHash("secret123")
		require.NoError(t, err)
		require.NotEqual(t, "secret123", hash)

		assert.NoError(t, CompareHash(hash, "secret123"))
	})

	t.Run("неверный пароль не проходит проверку", func(t *testing.T) {
		hash, err := GetHash("secret123")
		require.NoError(t, err)

		assert.Error(t, CompareHash(hash, "wrong"))
	})

	t.Run("одинаковые пароли дают разные хэши", func(t *testing.T) {
		first, err := GetHash("secret123")
		require.NoError(t, err)
		second, err := GetHash("secret123")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
