/**
 * @description
 * This file defines the `Repository` interface, which specifies the contract for all
 * data access operations required by the payment-service. The intake pipeline only
 * depends on this interface, so tests can swap in stubs.
 */

package store

import (
	"context"
	"errors"

	"github.com/transfa/payment-service/internal/domain"
)

// ErrPaymentNotFound is returned when no payment matches the requested id.
var ErrPaymentNotFound = errors.New("payment not found")

// Repository is the persistence contract for payments. Identity and
// creation time are assigned by the implementation.
type Repository interface {
	CreatePayment(ctx context.Context, payment domain.NewPayment) (*domain.PaymentRecord, error)
	ListPayments(ctx context.Context) ([]domain.PaymentRecord, error)
	FindPaymentByID(ctx context.Context, id int64) (*domain.PaymentRecord, error)
	ListPaymentsByStatus(ctx context.Context, status string) ([]domain.PaymentRecord, error)
}
