package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/transfa/payment-service/internal/auth"
	"github.com/transfa/payment-service/internal/domain"
)

type loginResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

type verifyResponse struct {
	Success  bool   `json:"success"`
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
}

// LoginHandler handles POST /api/auth/login.
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := h.auth.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.log.Error().Str("endpoint", "login").Err(err).Msg("authentication failed")
		writeError(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success:  true,
		Message:  "Authentication successful",
		Token:    token,
		Username: req.Username,
	})
}

// VerifyHandler handles POST /api/auth/verify. It never fails: anything that
// is not a live token is reported as valid:false.
func (h *Handlers) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.TokenRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if strings.TrimSpace(req.Token) == "" {
		writeJSON(w, http.StatusOK, verifyResponse{Success: false, Valid: false})
		return
	}

	username, ok := h.auth.CurrentUser(req.Token)
	writeJSON(w, http.StatusOK, verifyResponse{Success: true, Valid: ok, Username: username})
}

// LogoutHandler handles POST /api/auth/logout. Unknown tokens are a no-op.
func (h *Handlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.auth.Logout(req.Token)
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Logged out successfully"})
}
