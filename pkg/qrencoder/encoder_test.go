package qrencoder

import (
	"bytes"
	"strings"
	"testing"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestEncodePNG_ProducesPNG(t *testing.T) {
	png, err := New().EncodePNG("upi://pay?pa=alice%40bank&pn=Alice%20Rao&am=250.00&tn=Payment", 300)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !bytes.HasPrefix(png, pngSignature) {
		t.Fatal("expected PNG signature")
	}
}

func TestEncodePNG_RejectsBadInput(t *testing.T) {
	enc := New()
	if _, err := enc.EncodePNG("", 300); err == nil {
		t.Fatal("expected error for empty content")
	}
	if _, err := enc.EncodePNG("upi://pay", 0); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, err := enc.EncodePNG(strings.Repeat("x", 5000), 300); err == nil {
		t.Fatal("expected error for content exceeding QR capacity")
	}
}
