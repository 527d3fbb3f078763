/**
 * @description
 * This file defines the domain models for the payment-service: the incoming
 * submission DTO, the persisted payment record and the projection returned to
 * API callers.
 *
 * @notes
 * - Amounts use shopspring/decimal so range checks and storage are exact.
 *   Floats never touch a money value.
 */

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// PaymentStatusSuccess is the only status the intake flow assigns.
const PaymentStatusSuccess = "success"

// Payment methods accepted on submissions. Card is assumed when none is given.
const (
	PaymentMethodCard = "card"
	PaymentMethodUPI  = "upi"
)

// CreatedAtLayout renders timestamps the way the dashboard expects (yyyy-MM-dd HH:mm:ss).
const CreatedAtLayout = "2006-01-02 15:04:05"

// PaymentSubmission is the DTO for POST /api/payment. It lives only for the
// duration of one intake call.
type PaymentSubmission struct {
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Contact       string           `json:"contact"`
	Amount        *decimal.Decimal `json:"amount"`
	UPIID         string           `json:"upiId,omitempty"`
	PaymentMethod string           `json:"paymentMethod,omitempty"`
}

// NewPayment carries the normalized, sanitized values handed to the repository.
type NewPayment struct {
	Name    string
	Email   string
	Contact string
	Amount  decimal.Decimal
	Status  string
}

// PaymentRecord maps directly to a row of the `payments` table.
type PaymentRecord struct {
	ID        int64
	Name      string
	Email     string
	Contact   string
	Amount    decimal.Decimal
	Status    string
	CreatedAt time.Time
}

// PaymentView is the projection of a PaymentRecord sent back to API callers
// and handed to the notification channel.
type PaymentView struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Contact   string          `json:"contact"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"createdAt"`
}

// NewPaymentView projects a stored record into its response shape.
func NewPaymentView(rec PaymentRecord) PaymentView {
	return PaymentView{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		Contact:   rec.Contact,
		Amount:    rec.Amount.Round(2),
		Status:    rec.Status,
		CreatedAt: rec.CreatedAt.Format(CreatedAtLayout),
	}
}
