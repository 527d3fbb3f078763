package app

import "strings"

// htmlEscaper escapes the HTML metacharacters in a single pass, so an input
// "&lt;" becomes "&amp;lt;" rather than being left alone.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// paymentFieldEscaper additionally escapes "/" for values stored by the intake flow.
var paymentFieldEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// Sanitize escapes & < > " and ' for safe HTML rendering.
// It is not idempotent: apply it once, at write time.
func Sanitize(text string) string {
	return htmlEscaper.Replace(text)
}

// SanitizePaymentField is Sanitize plus escaping of "/".
func SanitizePaymentField(text string) string {
	return paymentFieldEscaper.Replace(text)
}
