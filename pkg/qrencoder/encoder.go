// Package qrencoder renders QR symbols as PNG images.
package qrencoder

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Encoder renders content as a square PNG QR code using medium error correction.
type Encoder struct {
	level qrcode.RecoveryLevel
}

// New returns an Encoder with medium error correction.
func New() *Encoder {
	return &Encoder{level: qrcode.Medium}
}

// EncodePNG renders content at size x size pixels.
func (e *Encoder) EncodePNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qr content is empty")
	}
	if size <= 0 {
		return nil, fmt.Errorf("qr size must be positive, got %d", size)
	}
	png, err := qrcode.Encode(content, e.level, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
