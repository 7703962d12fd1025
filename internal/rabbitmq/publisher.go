package rabbitmq

import (
	"github.com/streadway/amqp"

	librabbitmq "github.com/outfitbloom/outfitbloom-backend/internal/lib/rabbitmq"
	"github.com/outfitbloom/outfitbloom-backend/internal/models"
)

// ReceiptPublisher публикует квитанции об оплате в обменник notifications.
type ReceiptPublisher struct {
	ch *amqp.Channel
}

// NewReceiptPublisher создает новый экземпляр ReceiptPublisher.
func NewReceiptPublisher(ch *amqp.Channel) *ReceiptPublisher {
	return &ReceiptPublisher{ch: ch}
}

// PublishReceipt отправляет квитанцию с ключом payment_receipt.
func (p *ReceiptPublisher) PublishReceipt(receipt models.PaymentReceipt) error {
	return librabbitmq.PublishMessage(p.ch, "notifications", "payment_receipt", receipt)
}
