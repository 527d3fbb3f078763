package app

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/transfa/payment-service/internal/domain"
)

// Field names used as keys in validation reports.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldContact = "contact"
	FieldAmount  = "amount"
	FieldUPIID   = "upiId"
)

var (
	namePattern    = regexp.MustCompile(`^[A-Za-z ]*$`)
	emailPattern   = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(\.[A-Za-z0-9\-]+)*$`)
	contactPattern = regexp.MustCompile(`^[0-9]{10}$`)
	upiIDPattern   = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z]{3,}$`)

	// maxEmailLength matches the payments.email column.
	maxEmailLength = 255

	minAmount = decimal.RequireFromString("1.00")
	maxAmount = decimal.RequireFromString("100000.00")
)

// ValidationError carries one message per failing field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateName checks presence, length (3-50) and the alphabet-and-space charset.
func ValidateName(name string) (string, bool) {
	if strings.TrimSpace(name) == "" {
		return "Name is required", false
	}
	if n := utf8.RuneCountInString(name); n < 3 || n > 50 {
		return "Name must be between 3 and 50 characters", false
	}
	if !namePattern.MatchString(name) {
		return "Name must contain only alphabets and spaces", false
	}
	return "", true
}

// ValidateEmail checks presence, a simple local@domain shape and the stored length limit.
func ValidateEmail(email string) (string, bool) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "Email is required", false
	}
	if len(trimmed) > maxEmailLength || !emailPattern.MatchString(trimmed) {
		return "Invalid email format", false
	}
	return "", true
}

// ValidateContact requires exactly ten ASCII digits.
func ValidateContact(contact string) (string, bool) {
	if strings.TrimSpace(contact) == "" {
		return "Contact number is required", false
	}
	if !contactPattern.MatchString(contact) {
		return "Contact must be exactly 10 digits", false
	}
	return "", true
}

// ValidateAmount requires an amount within [1.00, 100000.00], compared exactly.
func ValidateAmount(amount *decimal.Decimal) (string, bool) {
	if amount == nil {
		return "Amount is required", false
	}
	if amount.LessThan(minAmount) {
		return "Amount must be at least ₹1.00", false
	}
	if amount.GreaterThan(maxAmount) {
		return "Amount must not exceed ₹100,000.00", false
	}
	return "", true
}

// ValidateUPIID accepts an empty id; otherwise it must look like local@handle.
func ValidateUPIID(upiID string) (string, bool) {
	if upiID == "" {
		return "", true
	}
	if !upiIDPattern.MatchString(upiID) {
		return "UPI ID must be in format: username@upiname", false
	}
	return "", true
}

// Validate checks every field independently and returns a *ValidationError
// listing all failures, or nil.
func Validate(sub domain.PaymentSubmission) error {
	fields := make(map[string]string)

	check := func(field, msg string, ok bool) {
		if !ok {
			fields[field] = msg
		}
	}
	msg, ok := ValidateName(sub.Name)
	check(FieldName, msg, ok)
	msg, ok = ValidateEmail(sub.Email)
	check(FieldEmail, msg, ok)
	msg, ok = ValidateContact(sub.Contact)
	check(FieldContact, msg, ok)
	msg, ok = ValidateAmount(sub.Amount)
	check(FieldAmount, msg, ok)
	msg, ok = ValidateUPIID(sub.UPIID)
	check(FieldUPIID, msg, ok)

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
