package app

import (
	"context"
	"errors"
	"time"

	"github.com/transfa/payment-service/internal/domain"
)

// Routing for payment confirmation events.
const (
	DefaultPaymentEventsExchange = "payment_events"
	PaymentConfirmedRoutingKey   = "payment.confirmed"
)

// ErrNotifierNotConfigured is returned when no notification channel is available.
var ErrNotifierNotConfigured = errors.New("notification channel not configured")

// Notifier delivers a payment confirmation to the payer.
type Notifier interface {
	NotifyPaymentConfirmed(ctx context.Context, payment domain.PaymentView) error
}

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body interface{}) error
}

// EventNotifier publishes payment confirmations to the broker; the
// notification-service renders and sends the actual message.
type EventNotifier struct {
	publisher EventPublisher
	exchange  string
	now       func() time.Time
}

// NewEventNotifier creates a notifier on top of publisher. A nil publisher
// yields ErrNotifierNotConfigured on every call.
func NewEventNotifier(publisher EventPublisher, exchange string) *EventNotifier {
	if exchange == "" {
		exchange = DefaultPaymentEventsExchange
	}
	return &EventNotifier{publisher: publisher, exchange: exchange, now: time.Now}
}

// NotifyPaymentConfirmed publishes a payment.confirmed event.
func (n *EventNotifier) NotifyPaymentConfirmed(ctx context.Context, payment domain.PaymentView) error {
	if n == nil || n.publisher == nil {
		return ErrNotifierNotConfigured
	}
	event := domain.NewPaymentConfirmedEvent(payment, n.now().UTC())
	return n.publisher.Publish(ctx, n.exchange, PaymentConfirmedRoutingKey, event)
}
