package app

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultQRImageSize is the edge length in pixels of generated QR images.
const DefaultQRImageSize = 300

const pngDataURIPrefix = "data:image/png;base64,"

// QREncoder turns a payload into PNG bytes.
type QREncoder interface {
	EncodePNG(content string, size int) ([]byte, error)
}

// QREncodingError reports that the encoder rejected a payload.
type QREncodingError struct {
	Err error
}

func (e *QREncodingError) Error() string {
	return "qr encoding failed: " + e.Err.Error()
}

func (e *QREncodingError) Unwrap() error {
	return e.Err
}

// QRBuilder composes UPI deep links and renders them as QR images.
type QRBuilder struct {
	encoder QREncoder
	size    int
	log     zerolog.Logger
}

// NewQRBuilder creates a builder rendering images of size x size pixels.
func NewQRBuilder(encoder QREncoder, size int, log zerolog.Logger) *QRBuilder {
	if size <= 0 {
		size = DefaultQRImageSize
	}
	return &QRBuilder{encoder: encoder, size: size, log: log}
}

// upiParamEscaper percent-encodes the characters that would end or split a
// query parameter, plus "@" and spaces.
var upiParamEscaper = strings.NewReplacer(
	"%", "%25",
	" ", "%20",
	"@", "%40",
	"&", "%26",
	"=", "%3D",
	"?", "%3F",
	"#", "%23",
	"+", "%2B",
)

// BuildUPILink composes upi://pay?pa=..&pn=..&am=..&tn=Payment. Each value is
// percent-encoded so no input can add or override a parameter.
func BuildUPILink(upiID, payerName, amount string) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&tn=Payment",
		upiParamEscaper.Replace(upiID),
		upiParamEscaper.Replace(payerName),
		upiParamEscaper.Replace(amount),
	)
}

// BuildQRImage renders the UPI link as a PNG data URI.
func (b *QRBuilder) BuildQRImage(upiID, payerName, amount string) (string, error) {
	link := BuildUPILink(upiID, payerName, amount)
	b.log.Info().Str("upi_id", upiID).Msg("generating upi qr code")

	png, err := b.encoder.EncodePNG(link, b.size)
	if err != nil {
		b.log.Error().Err(err).Str("upi_id", upiID).Msg("qr encoding failed")
		return "", &QREncodingError{Err: err}
	}
	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}
