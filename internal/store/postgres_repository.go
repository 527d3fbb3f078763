/**
 * @description
 * This file provides the PostgreSQL implementation of the `Repository` interface.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5: The PostgreSQL driver for database operations.
 * - github.com/shopspring/decimal: exact NUMERIC <-> Go conversion.
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/transfa/payment-service/internal/domain"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS payments (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    email VARCHAR(255) NOT NULL,
    contact VARCHAR(10) NOT NULL,
    amount NUMERIC(12, 2) NOT NULL,
    status VARCHAR(20) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_payments_status ON payments (status);
CREATE INDEX IF NOT EXISTS idx_payments_email ON payments (email);
`

// Amount is read back as text so no float conversion happens on the way out.
const paymentColumns = `id, name, email, contact, amount::text, status, created_at`

// querier is the subset of pgxpool.Pool the repository needs.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository is a concrete implementation of the Repository interface for PostgreSQL.
type PostgresRepository struct {
	db querier
}

var _ querier = (*pgxpool.Pool)(nil)

// NewPostgresRepository creates a new instance of PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the payments table and its indexes when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure payments schema: %w", err)
	}
	return nil
}

// CreatePayment inserts a payment and returns it with its assigned id and timestamp.
func (r *PostgresRepository) CreatePayment(ctx context.Context, payment domain.NewPayment) (*domain.PaymentRecord, error) {
	query := `INSERT INTO payments (name, email, contact, amount, status)
		VALUES ($1, $2, $3, $4::numeric, $5)
		RETURNING ` + paymentColumns

	row := r.db.QueryRow(ctx, query,
		payment.Name,
		payment.Email,
		payment.Contact,
		payment.Amount.StringFixed(2),
		payment.Status,
	)
	rec, err := scanPayment(row)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return rec, nil
}

// ListPayments returns every payment, newest first.
func (r *PostgresRepository) ListPayments(ctx context.Context) ([]domain.PaymentRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return collectPayments(rows)
}

// FindPaymentByID returns the payment with the given id or ErrPaymentNotFound.
func (r *PostgresRepository) FindPaymentByID(ctx context.Context, id int64) (*domain.PaymentRecord, error) {
	row := r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	rec, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment %d: %w", id, err)
	}
	return rec, nil
}

// ListPaymentsByStatus returns payments with the given status, newest first.
func (r *PostgresRepository) ListPaymentsByStatus(ctx context.Context, status string) ([]domain.PaymentRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE status = $1 ORDER BY id DESC`, status)
	if err != nil {
		return nil, fmt.Errorf("list payments by status: %w", err)
	}
	return collectPayments(rows)
}

func collectPayments(rows pgx.Rows) ([]domain.PaymentRecord, error) {
	defer rows.Close()

	payments := make([]domain.PaymentRecord, 0)
	for rows.Next() {
		rec, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

func scanPayment(row pgx.Row) (*domain.PaymentRecord, error) {
	var (
		rec    domain.PaymentRecord
		amount string
	)
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Contact, &amount, &rec.Status, &rec.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}
	rec.Amount = parsed
	return &rec, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse stored amount %q: %w", raw, err)
	}
	return d, nil
}
