package gateway

// CreateOrderRequest — запрос на создание заказа в Razorpay.
// Сумма передается в минимальных единицах валюты (пайсы для INR).
type CreateOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

// CreateOrderResponse — ответ Razorpay на создание заказа.
type CreateOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CheckoutSessionRequest — параметры создания checkout-сессии Stripe.
// Сумма передается в минимальных единицах валюты (центы).
type CheckoutSessionRequest struct {
	AmountMinor int64
	Currency    string
	ProductName string
	SuccessURL  string
	CancelURL   string
}

// CheckoutSessionResponse — ответ Stripe на создание checkout-сессии.
type CheckoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
