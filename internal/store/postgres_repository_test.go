package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/transfa/payment-service/internal/domain"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch ptr := d.(type) {
		case *int64:
			*ptr = r.values[i].(int64)
		case *string:
			*ptr = r.values[i].(string)
		case *time.Time:
			*ptr = r.values[i].(time.Time)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type querierStub struct {
	row       pgx.Row
	execErr   error
	queryErr  error
	lastSQL   string
	lastArgs  []any
	execCalls int
}

func (q *querierStub) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	q.execCalls++
	q.lastSQL = sql
	return pgconn.CommandTag{}, q.execErr
}

func (q *querierStub) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.lastSQL = sql
	q.lastArgs = args
	return nil, q.queryErr
}

func (q *querierStub) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL = sql
	q.lastArgs = args
	return q.row
}

func TestCreatePayment_SendsFixedPointAmountAndScansResult(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	q := &querierStub{row: fakeRow{values: []any{int64(7), "John Doe", "john@example.com", "9876543210", "1500.00", "success", createdAt}}}
	repo := &PostgresRepository{db: q}

	rec, err := repo.CreatePayment(context.Background(), domain.NewPayment{
		Name:    "John Doe",
		Email:   "john@example.com",
		Contact: "9876543210",
		Amount:  decimal.RequireFromString("1500"),
		Status:  domain.PaymentStatusSuccess,
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := q.lastArgs[3]; got != "1500.00" {
		t.Fatalf("expected amount bound as \"1500.00\", got %v", got)
	}
	if !strings.Contains(q.lastSQL, "RETURNING") {
		t.Fatalf("expected insert to return the stored row, got %q", q.lastSQL)
	}
	if rec.ID != 7 || !rec.Amount.Equal(decimal.RequireFromString("1500")) || !rec.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestFindPaymentByID_MapsNoRowsToNotFound(t *testing.T) {
	repo := &PostgresRepository{db: &querierStub{row: fakeRow{err: pgx.ErrNoRows}}}

	_, err := repo.FindPaymentByID(context.Background(), 42)
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestFindPaymentByID_WrapsOtherErrors(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &PostgresRepository{db: &querierStub{row: fakeRow{err: boom}}}

	_, err := repo.FindPaymentByID(context.Background(), 42)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
	if errors.Is(err, ErrPaymentNotFound) {
		t.Fatal("did not expect driver error to be reported as not found")
	}
}

func TestListPaymentsByStatus_PropagatesQueryError(t *testing.T) {
	boom := errors.New("relation does not exist")
	q := &querierStub{queryErr: boom}
	repo := &PostgresRepository{db: q}

	_, err := repo.ListPaymentsByStatus(context.Background(), "success")
	if !errors.Is(err, boom) {
		t.Fatalf("expected query error, got %v", err)
	}
	if len(q.lastArgs) != 1 || q.lastArgs[0] != "success" {
		t.Fatalf("expected status bound as parameter, got %v", q.lastArgs)
	}
}

func TestEnsureSchema(t *testing.T) {
	q := &querierStub{}
	repo := &PostgresRepository{db: q}

	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if q.execCalls != 1 || !strings.Contains(q.lastSQL, "CREATE TABLE IF NOT EXISTS payments") {
		t.Fatalf("expected schema bootstrap statement, got %q", q.lastSQL)
	}

	q.execErr = errors.New("permission denied")
	if err := repo.EnsureSchema(context.Background()); err == nil {
		t.Fatal("expected error to be returned")
	}
}

func TestParseAmount(t *testing.T) {
	d, err := parseAmount("100000.00")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if d.StringFixed(2) != "100000.00" {
		t.Fatalf("expected 100000.00, got %s", d.StringFixed(2))
	}
	if _, err := parseAmount("not-a-number"); err == nil {
		t.Fatal("expected parse error")
	}
}
