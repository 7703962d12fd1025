package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

func TestConfirmPayment(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	t.Run("подтверждение платежа включает премиум и сбрасывает счётчик", func(t *testing.T) {
		uid := factory.CreateUser(t, "payer", "payer@example.com", false)
		_, err := storage.DB.Exec("UPDATE users SET task_count = 7 WHERE uid = $1", uid)
		require.NoError(t, err)
		factory.CreatePendingPayment(t, uid, "ob_1", models.GatewayRazorpay, "order_abc", 390.79, "INR")

		confirmed, err := storage.ConfirmPayment(ctx, "order_abc", uid, "pay_123", "sig_123")
		require.NoError(t, err)
		assert.True(t, confirmed)

		user, err := storage.GetUser(ctx, uid)
		require.NoError(t, err)
		assert.True(t, user.IsPremium)
		assert.Equal(t, 0, user.TaskCount)

		p, err := storage.GetPaymentByGatewayOrderID(ctx, "order_abc", uid)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusSuccess, p.Status)
		assert.Equal(t, "pay_123", p.GatewayPaymentID)
	})

	t.Run("повторное подтверждение идемпотентно", func(t *testing.T) {
		uid := factory.CreateUser(t, "payer2", "payer2@example.com", false)
		factory.CreatePendingPayment(t, uid, "ob_2", models.GatewayStripe, "cs_test_1", 3.99, "USD")

		confirmed, err := storage.ConfirmPayment(ctx, "cs_test_1", uid, "", "")
		require.NoError(t, err)
		require.True(t, confirmed)

		confirmed, err = storage.ConfirmPayment(ctx, "cs_test_1", uid, "", "")
		require.NoError(t, err)
		assert.False(t, confirmed)
	})

	t.Run("чужой заказ не подтверждается", func(t *testing.T) {
		owner := factory.CreateUser(t, "owner", "powner@example.com", false)
		stranger := factory.CreateUser(t, "stranger", "pstranger@example.com", false)
		factory.CreatePendingPayment(t, owner, "ob_3", models.GatewayRazorpay, "order_xyz", 390.79, "INR")

		confirmed, err := storage.ConfirmPayment(ctx, "order_xyz", stranger, "pay_1", "sig_1")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.False(t, confirmed)

		user, err := storage.GetUser(ctx, stranger)
		require.NoError(t, err)
		assert.False(t, user.IsPremium)
	})

	t.Run("несуществующий заказ возвращает ErrNotFound", func(t *testing.T) {
		uid := factory.CreateUser(t, "payer3", "payer3@example.com", false)

		confirmed, err := storage.ConfirmPayment(ctx, "order_missing", uid, "pay_1", "sig_1")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.False(t, confirmed)
	})
}

func TestSaveAndListPayments(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	uid := factory.CreateUser(t, "user", "history@example.com", false)

	_, err := storage.SavePayment(ctx, models.Payment{
		UserUID:        uid,
		OrderID:        "ob_first",
		Gateway:        models.GatewayRazorpay,
		GatewayOrderID: "order_1",
		Amount:         390.79,
		Currency:       "INR",
		Status:         models.PaymentStatusPending,
	})
	require.NoError(t, err)

	_, err = storage.SavePayment(ctx, models.Payment{
		UserUID:        uid,
		OrderID:        "ob_second",
		Gateway:        models.GatewayStripe,
		GatewayOrderID: "cs_test_2",
		Amount:         3.99,
		Currency:       "USD",
		Status:         models.PaymentStatusPending,
	})
	require.NoError(t, err)

	payments, err := storage.ListPayments(ctx, uid)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "ob_second", payments[0].OrderID)
	assert.Equal(t, "ob_first", payments[1].OrderID)

	t.Run("платеж не найден", func(t *testing.T) {
		_, err := storage.GetPaymentByGatewayOrderID(ctx, "missing", uid)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
