package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestQRCodeRequest_AmountAcceptsStringOrNumber(t *testing.T) {
	tests := []struct {
		name string
		body string
		want LooseString
	}{
		{name: "string", body: `{"amount":"250.00"}`, want: "250.00"},
		{name: "number keeps literal", body: `{"amount":250.00}`, want: "250.00"},
		{name: "integer", body: `{"amount":99}`, want: "99"},
		{name: "null", body: `{"amount":null}`, want: ""},
		{name: "absent", body: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req QRCodeRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if req.Amount != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, req.Amount)
			}
		})
	}
}

func TestQRCodeRequest_AmountRejectsObjects(t *testing.T) {
	var req QRCodeRequest
	if err := json.Unmarshal([]byte(`{"amount":{"v":1}}`), &req); err == nil {
		t.Fatal("expected error for object amount")
	}
}

func TestSessionExpired(t *testing.T) {
	s := Session{ExpiresAt: mustTime(t, "2026-01-01T00:00:00Z")}
	if s.Expired(mustTime(t, "2025-12-31T23:59:59Z")) {
		t.Fatal("expected session to be live before expiry")
	}
	if !s.Expired(s.ExpiresAt) {
		t.Fatal("expected session to be expired at its expiry instant")
	}
}

func TestNewPaymentView(t *testing.T) {
	rec := PaymentRecord{
		ID:        7,
		Name:      "John Doe",
		Email:     "john@example.com",
		Contact:   "9876543210",
		Amount:    decimal.RequireFromString("1500.005"),
		Status:    PaymentStatusSuccess,
		CreatedAt: mustTime(t, "2026-03-04T05:06:07Z"),
	}

	view := NewPaymentView(rec)
	if view.CreatedAt != "2026-03-04 05:06:07" {
		t.Fatalf("unexpected createdAt %q", view.CreatedAt)
	}
	if !view.Amount.Equal(decimal.RequireFromString("1500.01")) {
		t.Fatalf("expected amount rounded to 2 places, got %s", view.Amount)
	}

	body, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("expected valid json, got %v", err)
	}
	if _, ok := decoded["amount"].(float64); !ok {
		t.Fatalf("expected amount as a JSON number, got %T", decoded["amount"])
	}
	if decoded["createdAt"] != "2026-03-04 05:06:07" {
		t.Fatalf("unexpected createdAt in json: %v", decoded["createdAt"])
	}
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}
