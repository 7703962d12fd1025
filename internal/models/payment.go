package models

import "time"

// Статусы платежа. Платеж создается в состоянии pending и переходит
// в success только после успешной проверки подписи шлюза.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusSuccess  = "success"
	PaymentStatusFailed   = "failed"
	PaymentStatusExpired  = "expired"
	PaymentStatusRefunded = "refunded"
)

// Платежные шлюзы.
const (
	GatewayRazorpay = "razorpay"
	GatewayStripe   = "stripe"
)

// Payment представляет запись о платеже пользователя.
type Payment struct {
	ID               int       `json:"id"`
	UserUID          string    `json:"user_uid"`           // Владелец платежа
	OrderID          string    `json:"order_id"`           // Внутренний референс заказа
	Gateway          string    `json:"gateway"`            // razorpay или stripe
	GatewayOrderID   string    `json:"gateway_order_id"`   // ID заказа/сессии на стороне шлюза
	GatewayPaymentID string    `json:"gateway_payment_id"` // ID платежа на стороне шлюза
	Signature        string    `json:"-"`                  // Подпись проверки от шлюза
	Amount           float64   `json:"amount"`             // Сумма в основных единицах валюты
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// PaymentReceipt — событие успешной оплаты, публикуемое в очередь уведомлений
// для отправки письма-квитанции.
type PaymentReceipt struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}
