package domain

import (
	"bytes"
	"encoding/json"
)

// LoginRequest is the DTO for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenRequest is the DTO for POST /api/auth/verify and /api/auth/logout.
type TokenRequest struct {
	Token string `json:"token"`
}

// QRCodeRequest is the DTO for POST /api/qr-code.
type QRCodeRequest struct {
	UPIID  string      `json:"upiId"`
	Name   string      `json:"name"`
	Amount LooseString `json:"amount"`
}

// LooseString accepts either a JSON string or a bare number. Numbers keep
// their literal text, so 250.00 stays "250.00".
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = LooseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return err
	}
	*s = LooseString(num.String())
	return nil
}
