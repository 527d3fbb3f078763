package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentConfirmedEvent is published once a payment has been persisted. The
// notification-service renders the confirmation message from it.
//
// Name, Email and Contact carry the stored values, which are already HTML-escaped.
type PaymentConfirmedEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	PaymentID int64     `json:"payment_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Contact   string    `json:"contact"`
	Amount    string    `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt string    `json:"created_at"`
	Timestamp time.Time `json:"timestamp"`
}

// NewPaymentConfirmedEvent builds the event payload for a persisted payment.
func NewPaymentConfirmedEvent(view PaymentView, now time.Time) PaymentConfirmedEvent {
	return PaymentConfirmedEvent{
		EventID:   uuid.New(),
		PaymentID: view.ID,
		Name:      view.Name,
		Email:     view.Email,
		Contact:   view.Contact,
		Amount:    view.Amount.StringFixed(2),
		Status:    view.Status,
		CreatedAt: view.CreatedAt,
		Timestamp: now,
	}
}
