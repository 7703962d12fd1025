// Package payment содержит бизнес-логику перехода на премиум-тариф:
// выбор платежного шлюза по стране клиента, создание заказа, проверку
// подписи Razorpay, подтверждение платежа и публикацию события квитанции.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/outfitbloom/outfitbloom-backend/internal/exchange"
	"github.com/outfitbloom/outfitbloom-backend/internal/gateway"
	"github.com/outfitbloom/outfitbloom-backend/internal/geoip"
	"github.com/outfitbloom/outfitbloom-backend/internal/lib/sl"
	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

// ErrInvalidSignature возвращается, когда подпись шлюза не совпала с ожидаемой.
var ErrInvalidSignature = errors.New("payment signature mismatch")

// Repository описывает контракт хранилища платежей и пользователей.
type Repository interface {
	SavePayment(ctx context.Context, p models.Payment) (int, error)
	GetPaymentByGatewayOrderID(ctx context.Context, gatewayOrderID, userUID string) (*models.Payment, error)
	ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error)
	ConfirmPayment(ctx context.Context, gatewayOrderID, userUID, gatewayPaymentID, signature string) (bool, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// RazorpayGateway описывает операции шлюза Razorpay.
type RazorpayGateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (*gateway.CreateOrderResponse, error)
}

// StripeGateway описывает операции шлюза Stripe.
type StripeGateway interface {
	CreateCheckoutSession(ctx context.Context, params gateway.CheckoutSessionRequest) (*gateway.CheckoutSessionResponse, error)
}

// RatesProvider описывает провайдера курсов валют.
type RatesProvider interface {
	GetRates(ctx context.Context, baseCurrency string) (*exchange.Rates, error)
}

// ReceiptPublisher публикует событие успешной оплаты в очередь уведомлений.
type ReceiptPublisher interface {
	PublishReceipt(receipt models.PaymentReceipt) error
}

// Options — тарифные параметры и URL возврата Stripe.
type Options struct {
	PriceUSD         float64
	GSTRate          float64
	StripeSuccessURL string
	StripeCancelURL  string
	RazorpaySecret   string
}

// OrderDetails — данные созданного заказа для клиента.
// Для Razorpay заполняется KeyID, для Stripe — CheckoutURL.
type OrderDetails struct {
	Gateway        string  `json:"gateway"`
	OrderID        string  `json:"order_id"`
	GatewayOrderID string  `json:"gateway_order_id"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	KeyID          string  `json:"key_id,omitempty"`
	CheckoutURL    string  `json:"checkout_url,omitempty"`
}

// WebhookEvent — событие платежного шлюза, принятое вебхуком.
type WebhookEvent struct {
	Type             string `json:"type" validate:"required"`
	UserUID          string `json:"user_uid" validate:"required,uuid"`
	GatewayOrderID   string `json:"gateway_order_id" validate:"required"`
	GatewayPaymentID string `json:"gateway_payment_id"`
}

// Service реализует платежные операции.
type Service struct {
	repo      Repository
	razorpay  RazorpayGateway
	stripe    StripeGateway
	rates     RatesProvider
	geo       geoip.CountryResolver
	publisher ReceiptPublisher
	opts      Options
	log       *slog.Logger
}

// New создает новый экземпляр Service. geo и publisher могут быть nil:
// без geo все заказы уходят в Stripe, без publisher квитанции не отправляются.
func New(repo Repository, razorpay RazorpayGateway, stripe StripeGateway,
	rates RatesProvider, geo geoip.CountryResolver, publisher ReceiptPublisher,
	opts Options, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		razorpay:  razorpay,
		stripe:    stripe,
		rates:     rates,
		geo:       geo,
		publisher: publisher,
		opts:      opts,
		log:       log,
	}
}

// CreateOrder создает платежный заказ для перехода на премиум.
// Клиенты из IN направляются в Razorpay с суммой в рупиях (цена в USD,
// сконвертированная по живому курсу, плюс GST); остальные — в Stripe с ценой в USD.
// amountUSD <= 0 означает тарифную цену из конфигурации.
func (s *Service) CreateOrder(ctx context.Context, userUID, clientIP string, amountUSD float64) (*OrderDetails, error) {
	const op = "services.payment.CreateOrder"

	priceUSD := s.opts.PriceUSD
	if amountUSD > 0 {
		priceUSD = round2(amountUSD)
	}

	orderID := "ob_" + uuid.NewString()
	country := s.resolveCountry(clientIP)

	if country == "IN" {
		return s.createRazorpayOrder(ctx, userUID, orderID, priceUSD)
	}
	return s.createStripeOrder(ctx, userUID, orderID, op, priceUSD, country)
}

// regionCurrencies сопоставляет страну клиента валюте чекаута Stripe.
// Страны вне карты оплачивают в USD.
var regionCurrencies = map[string]string{
	"GB": "GBP",
	"CA": "CAD",
	"AU": "AUD",
	"SG": "SGD",
	"DE": "EUR",
	"FR": "EUR",
	"ES": "EUR",
	"IT": "EUR",
	"NL": "EUR",
	"IE": "EUR",
}

func (s *Service) resolveCountry(clientIP string) string {
	if s.geo == nil {
		return ""
	}
	country, err := s.geo.CountryCode(clientIP)
	if err != nil {
		if !errors.Is(err, geoip.ErrUnavailable) {
			s.log.Warn("country resolution failed, defaulting gateway",
				slog.String("ip", clientIP), sl.Err(err))
		}
		return ""
	}
	return country
}

func (s *Service) createRazorpayOrder(ctx context.Context, userUID, orderID string, priceUSD float64) (*OrderDetails, error) {
	const op = "services.payment.createRazorpayOrder"

	rates, err := s.rates.GetRates(ctx, "USD")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	inrRate, ok := rates.Rates["INR"]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, exchange.ErrRatesUnavailable)
	}

	amountINR := round2(priceUSD * inrRate * (1 + s.opts.GSTRate))
	paise := int64(math.Round(amountINR * 100))

	order, err := s.razorpay.CreateOrder(ctx, gateway.CreateOrderRequest{
		Amount:         paise,
		Currency:       "INR",
		Receipt:        orderID,
		PaymentCapture: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.repo.SavePayment(ctx, models.Payment{
		UserUID:        userUID,
		OrderID:        orderID,
		Gateway:        models.GatewayRazorpay,
		GatewayOrderID: order.ID,
		Amount:         amountINR,
		Currency:       "INR",
		Status:         models.PaymentStatusPending,
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &OrderDetails{
		Gateway:        models.GatewayRazorpay,
		OrderID:        orderID,
		GatewayOrderID: order.ID,
		Amount:         amountINR,
		Currency:       "INR",
		KeyID:          s.razorpay.KeyID(),
	}, nil
}

func (s *Service) createStripeOrder(ctx context.Context, userUID, orderID, op string, priceUSD float64, country string) (*OrderDetails, error) {
	currency := "USD"
	amount := priceUSD
	if regional, ok := regionCurrencies[country]; ok {
		rates, err := s.rates.GetRates(ctx, "USD")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rate, ok := rates.Rates[regional]
		if !ok {
			return nil, fmt.Errorf("%s: %w", op, exchange.ErrRatesUnavailable)
		}
		currency = regional
		amount = round2(priceUSD * rate)
	}
	minor := int64(math.Round(amount * 100))

	session, err := s.stripe.CreateCheckoutSession(ctx, gateway.CheckoutSessionRequest{
		AmountMinor: minor,
		Currency:    strings.ToLower(currency),
		ProductName: "OutfitBloom Premium",
		SuccessURL:  s.opts.StripeSuccessURL,
		CancelURL:   s.opts.StripeCancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.repo.SavePayment(ctx, models.Payment{
		UserUID:        userUID,
		OrderID:        orderID,
		Gateway:        models.GatewayStripe,
		GatewayOrderID: session.ID,
		Amount:         amount,
		Currency:       currency,
		Status:         models.PaymentStatusPending,
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &OrderDetails{
		Gateway:        models.GatewayStripe,
		OrderID:        orderID,
		GatewayOrderID: session.ID,
		Amount:         amount,
		Currency:       currency,
		CheckoutURL:    session.URL,
	}, nil
}

// VerifyRazorpay проверяет подпись Razorpay и подтверждает платеж.
// Подпись считается как hex(HMAC-SHA256(orderID + "|" + paymentID, секрет ключа)).
// Возвращает true, если платеж был подтвержден этим вызовом; повторная
// проверка уже подтвержденного платежа возвращает false без ошибки.
func (s *Service) VerifyRazorpay(ctx context.Context, userUID, gatewayOrderID, gatewayPaymentID, signature string) (bool, error) {
	const op = "services.payment.VerifyRazorpay"

	expected := razorpaySignature(gatewayOrderID, gatewayPaymentID, s.opts.RazorpaySecret)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return false, ErrInvalidSignature
	}

	confirmed, err := s.repo.ConfirmPayment(ctx, gatewayOrderID, userUID, gatewayPaymentID, signature)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if confirmed {
		s.publishReceipt(ctx, userUID, gatewayOrderID)
	}
	return confirmed, nil
}

// ConfirmFromWebhook подтверждает платеж по событию шлюза (Stripe).
// Подпись тела вебхука проверяется на уровне хендлера до вызова.
func (s *Service) ConfirmFromWebhook(ctx context.Context, event WebhookEvent) (bool, error) {
	const op = "services.payment.ConfirmFromWebhook"

	confirmed, err := s.repo.ConfirmPayment(ctx, event.GatewayOrderID, event.UserUID, event.GatewayPaymentID, "")
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if confirmed {
		s.publishReceipt(ctx, event.UserUID, event.GatewayOrderID)
	}
	return confirmed, nil
}

// ListHistory возвращает платежи пользователя, новые первыми.
func (s *Service) ListHistory(ctx context.Context, userUID string) ([]*models.Payment, error) {
	return s.repo.ListPayments(ctx, userUID)
}

// publishReceipt собирает квитанцию и отправляет её в очередь уведомлений.
// Ошибки публикации не откатывают подтвержденный платеж, только логируются.
func (s *Service) publishReceipt(ctx context.Context, userUID, gatewayOrderID string) {
	if s.publisher == nil {
		return
	}

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		s.log.Error("failed to load user for receipt", slog.String("user_uid", userUID), sl.Err(err))
		return
	}
	p, err := s.repo.GetPaymentByGatewayOrderID(ctx, gatewayOrderID, userUID)
	if err != nil {
		s.log.Error("failed to load payment for receipt", slog.String("gateway_order_id", gatewayOrderID), sl.Err(err))
		return
	}

	receipt := models.PaymentReceipt{
		Email:    user.Email,
		Name:     user.Name,
		OrderID:  p.OrderID,
		Amount:   p.Amount,
		Currency: p.Currency,
	}
	if err := s.publisher.PublishReceipt(receipt); err != nil {
		s.log.Error("failed to publish payment receipt", slog.String("order_id", p.OrderID), sl.Err(err))
	}
}

func razorpaySignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
