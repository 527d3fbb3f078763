/**
 * @description
 * This file contains the HTTP handlers for the payment endpoints. Handlers
 * decode requests, call the intake service and map its errors to status codes
 * exactly once. Internal faults are logged with detail and answered with a
 * generic message.
 *
 * @dependencies
 * - internal/app: intake service, validation errors and QR builder.
 * - internal/auth: dashboard authentication gateway.
 * - github.com/go-chi/chi/v5: URL parameters.
 * - github.com/rs/zerolog: structured logging.
 */

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/transfa/payment-service/internal/app"
	"github.com/transfa/payment-service/internal/auth"
	"github.com/transfa/payment-service/internal/domain"
)

// Handlers holds the collaborators the HTTP handlers use.
type Handlers struct {
	payments *app.Service
	auth     *auth.Gateway
	qr       *app.QRBuilder
	log      zerolog.Logger
}

// apiResponse is the envelope used by the payment endpoints.
type apiResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message,omitempty"`
	PaymentID string              `json:"paymentId,omitempty"`
	Data      *domain.PaymentView `json:"data,omitempty"`
	Errors    map[string]string   `json:"errors,omitempty"`
}

// listResponse always carries an array, even when empty.
type listResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    []domain.PaymentView `json:"data"`
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(payments *app.Service, gateway *auth.Gateway, qr *app.QRBuilder, log zerolog.Logger) *Handlers {
	return &Handlers{payments: payments, auth: gateway, qr: qr, log: log}
}

// HealthHandler reports liveness.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Payment Processing API is running"})
}

// CreatePaymentHandler handles POST /api/payment.
func (h *Handlers) CreatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	var sub domain.PaymentSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.log.Warn().Str("endpoint", "create_payment").Err(err).Msg("invalid json")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.payments.ProcessPayment(r.Context(), sub)
	if err != nil {
		var vErr *app.ValidationError
		if errors.As(err, &vErr) {
			writeJSON(w, http.StatusBadRequest, apiResponse{
				Success: false,
				Message: "Validation failed",
				Errors:  vErr.Fields,
			})
			return
		}
		h.log.Error().Str("endpoint", "create_payment").Err(err).Msg("payment processing failed")
		writeError(w, http.StatusInternalServerError, "Failed to process payment")
		return
	}

	writeJSON(w, http.StatusCreated, apiResponse{
		Success:   true,
		Message:   "Payment processed successfully",
		PaymentID: strconv.FormatInt(view.ID, 10),
		Data:      view,
	})
}

// ListPaymentsHandler handles GET /api/payments.
func (h *Handlers) ListPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListPayments(r.Context())
	if err != nil {
		h.log.Error().Str("endpoint", "list_payments").Err(err).Msg("failed to list payments")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}
	writeList(w, payments)
}

// ListPaymentsByStatusHandler handles GET /api/payments/status/{status}.
func (h *Handlers) ListPaymentsByStatusHandler(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, "status")
	payments, err := h.payments.ListPaymentsByStatus(r.Context(), status)
	if err != nil {
		h.log.Error().Str("endpoint", "list_payments_by_status").Str("status", status).Err(err).Msg("failed to list payments")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}
	writeList(w, payments)
}

// GetPaymentHandler handles GET /api/payments/{id}.
func (h *Handlers) GetPaymentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payment ID")
		return
	}

	payment, err := h.payments.GetPayment(r.Context(), id)
	if err != nil {
		if errors.Is(err, app.ErrPaymentNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Payment not found with ID: %d", id))
			return
		}
		h.log.Error().Str("endpoint", "get_payment").Int64("payment_id", id).Err(err).Msg("failed to get payment")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve payment")
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Payment retrieved successfully",
		Data:    payment,
	})
}

func writeList(w http.ResponseWriter, payments []domain.PaymentView) {
	if payments == nil {
		payments = []domain.PaymentView{}
	}
	writeJSON(w, http.StatusOK, listResponse{
		Success: true,
		Message: "Payments retrieved successfully",
		Data:    payments,
	})
}

// writeJSON is a helper for writing JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a {success:false, message} envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{Success: false, Message: message})
}
