/**
 * @description
 * The payment intake pipeline: validate, normalize and sanitize a submission,
 * persist it through the repository, project the stored record and notify the
 * payer on a best-effort basis. Read operations project repository results.
 *
 * @dependencies
 * - internal/store: persistence contract.
 * - github.com/rs/zerolog: structured logging.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/transfa/payment-service/internal/domain"
	"github.com/transfa/payment-service/internal/store"
)

// DefaultNotificationTimeout bounds one notification attempt.
const DefaultNotificationTimeout = 5 * time.Second

// ErrPaymentNotFound is returned by GetPayment for unknown ids.
var ErrPaymentNotFound = errors.New("payment not found")

// Service provides the payment intake and read operations.
type Service struct {
	repo                store.Repository
	notifier            Notifier
	notificationTimeout time.Duration
	log                 zerolog.Logger
}

// NewService creates the intake service. A nil notifier disables notifications.
func NewService(repo store.Repository, notifier Notifier, notificationTimeout time.Duration, log zerolog.Logger) *Service {
	if notificationTimeout <= 0 {
		notificationTimeout = DefaultNotificationTimeout
	}
	return &Service{
		repo:                repo,
		notifier:            notifier,
		notificationTimeout: notificationTimeout,
		log:                 log,
	}
}

// ProcessPayment validates and persists a submission. Validation failures are
// returned as *ValidationError; notification failures never fail the call.
func (s *Service) ProcessPayment(ctx context.Context, sub domain.PaymentSubmission) (*domain.PaymentView, error) {
	if err := Validate(sub); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			s.log.Warn().Interface("errors", vErr.Fields).Msg("payment rejected: validation failed")
		}
		return nil, err
	}

	method := strings.ToLower(strings.TrimSpace(sub.PaymentMethod))
	if method == "" {
		method = domain.PaymentMethodCard
	}

	payment := domain.NewPayment{
		Name:    SanitizePaymentField(strings.TrimSpace(sub.Name)),
		Email:   SanitizePaymentField(strings.ToLower(strings.TrimSpace(sub.Email))),
		Contact: SanitizePaymentField(sub.Contact),
		Amount:  *sub.Amount,
		Status:  domain.PaymentStatusSuccess,
	}

	rec, err := s.repo.CreatePayment(ctx, payment)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to persist payment")
		return nil, fmt.Errorf("persist payment: %w", err)
	}

	view := domain.NewPaymentView(*rec)
	s.log.Info().
		Int64("payment_id", view.ID).
		Str("email", view.Email).
		Str("amount", view.Amount.StringFixed(2)).
		Str("payment_method", method).
		Msg("payment processed")

	s.notify(ctx, view)

	return &view, nil
}

// notify delivers the confirmation and absorbs every failure, panics included.
func (s *Service) notify(ctx context.Context, view domain.PaymentView) {
	if s.notifier == nil {
		s.log.Warn().Int64("payment_id", view.ID).Msg("notification channel not configured; skipping")
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Int64("payment_id", view.ID).Msg("notification panicked; payment unaffected")
		}
	}()

	// The request may be cancelled once the response is written; the
	// notification gets its own bounded deadline.
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notificationTimeout)
	defer cancel()

	if err := s.notifier.NotifyPaymentConfirmed(notifyCtx, view); err != nil {
		if errors.Is(err, ErrNotifierNotConfigured) {
			s.log.Warn().Int64("payment_id", view.ID).Msg("notification channel not configured; skipping")
			return
		}
		s.log.Warn().Err(err).Int64("payment_id", view.ID).Msg("notification failed but payment was successful")
		return
	}
	s.log.Info().Int64("payment_id", view.ID).Msg("payment confirmation dispatched")
}

// ListPayments returns all payments.
func (s *Service) ListPayments(ctx context.Context) ([]domain.PaymentView, error) {
	records, err := s.repo.ListPayments(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list payments")
		return nil, fmt.Errorf("list payments: %w", err)
	}
	s.log.Info().Int("count", len(records)).Msg("retrieved payments")
	return projectAll(records), nil
}

// GetPayment returns one payment or ErrPaymentNotFound.
func (s *Service) GetPayment(ctx context.Context, id int64) (*domain.PaymentView, error) {
	rec, err := s.repo.FindPaymentByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrPaymentNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrPaymentNotFound, id)
		}
		s.log.Error().Err(err).Int64("payment_id", id).Msg("failed to get payment")
		return nil, fmt.Errorf("get payment %d: %w", id, err)
	}
	view := domain.NewPaymentView(*rec)
	return &view, nil
}

// ListPaymentsByStatus returns payments with the given status.
func (s *Service) ListPaymentsByStatus(ctx context.Context, status string) ([]domain.PaymentView, error) {
	records, err := s.repo.ListPaymentsByStatus(ctx, status)
	if err != nil {
		s.log.Error().Err(err).Str("status", status).Msg("failed to list payments by status")
		return nil, fmt.Errorf("list payments by status: %w", err)
	}
	return projectAll(records), nil
}

func projectAll(records []domain.PaymentRecord) []domain.PaymentView {
	views := make([]domain.PaymentView, 0, len(records))
	for _, rec := range records {
		views = append(views, domain.NewPaymentView(rec))
	}
	return views
}
