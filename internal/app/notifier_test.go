package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/transfa/payment-service/internal/domain"
)

type publisherStub struct {
	exchange   string
	routingKey string
	body       interface{}
	err        error
}

func (p *publisherStub) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	p.exchange = exchange
	p.routingKey = routingKey
	p.body = body
	return p.err
}

func TestEventNotifier_PublishesPaymentConfirmed(t *testing.T) {
	pub := &publisherStub{}
	n := NewEventNotifier(pub, "")
	n.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	view := domain.PaymentView{
		ID:        12,
		Name:      "John Doe",
		Email:     "john@example.com",
		Contact:   "9876543210",
		Amount:    decimal.RequireFromString("1500"),
		Status:    "success",
		CreatedAt: "2026-01-01 00:00:00",
	}
	if err := n.NotifyPaymentConfirmed(context.Background(), view); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if pub.exchange != DefaultPaymentEventsExchange || pub.routingKey != PaymentConfirmedRoutingKey {
		t.Fatalf("unexpected routing %s/%s", pub.exchange, pub.routingKey)
	}
	event, ok := pub.body.(domain.PaymentConfirmedEvent)
	if !ok {
		t.Fatalf("expected PaymentConfirmedEvent, got %T", pub.body)
	}
	if event.PaymentID != 12 || event.Amount != "1500.00" || event.Email != "john@example.com" {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestEventNotifier_PropagatesPublishError(t *testing.T) {
	boom := errors.New("channel closed")
	n := NewEventNotifier(&publisherStub{err: boom}, "custom")

	if err := n.NotifyPaymentConfirmed(context.Background(), domain.PaymentView{ID: 1}); !errors.Is(err, boom) {
		t.Fatalf("expected publish error, got %v", err)
	}
}

func TestEventNotifier_NotConfigured(t *testing.T) {
	n := NewEventNotifier(nil, "")
	if err := n.NotifyPaymentConfirmed(context.Background(), domain.PaymentView{ID: 1}); !errors.Is(err, ErrNotifierNotConfigured) {
		t.Fatalf("expected ErrNotifierNotConfigured, got %v", err)
	}
}
