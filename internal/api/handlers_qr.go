package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/transfa/payment-service/internal/app"
	"github.com/transfa/payment-service/internal/domain"
)

type qrCodeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	QRCode  string `json:"qrCode"`
}

// GenerateQRCodeHandler handles POST /api/qr-code.
func (h *Handlers) GenerateQRCodeHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.QRCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upiID := strings.TrimSpace(req.UPIID)
	name := strings.TrimSpace(req.Name)
	amount := strings.TrimSpace(string(req.Amount))
	if upiID == "" || name == "" || amount == "" {
		writeError(w, http.StatusBadRequest, "UPI ID, name, and amount are required")
		return
	}

	qrCode, err := h.qr.BuildQRImage(upiID, name, amount)
	if err != nil {
		var qrErr *app.QREncodingError
		if errors.As(err, &qrErr) {
			writeError(w, http.StatusInternalServerError, "Failed to generate QR code: "+qrErr.Err.Error())
			return
		}
		h.log.Error().Str("endpoint", "qr_code").Err(err).Msg("qr generation failed")
		writeError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	writeJSON(w, http.StatusOK, qrCodeResponse{
		Success: true,
		Message: "QR code generated successfully",
		QRCode:  qrCode,
	})
}
