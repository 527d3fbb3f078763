package app

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type qrEncoderStub struct {
	gotContent string
	gotSize    int
	png        []byte
	err        error
}

func (s *qrEncoderStub) EncodePNG(content string, size int) ([]byte, error) {
	s.gotContent = content
	s.gotSize = size
	return s.png, s.err
}

func TestBuildUPILink(t *testing.T) {
	link := BuildUPILink("alice@bank", "Alice Rao", "250.00")

	want := "upi://pay?pa=alice%40bank&pn=Alice%20Rao&am=250.00&tn=Payment"
	if link != want {
		t.Fatalf("expected %q, got %q", want, link)
	}
	for _, part := range []string{"pa=alice%40bank", "am=250.00"} {
		if !strings.Contains(link, part) {
			t.Fatalf("expected link to contain %q, got %q", part, link)
		}
	}
}

func TestBuildUPILink_EscapesParameterDelimiters(t *testing.T) {
	tests := []struct {
		name      string
		upiID     string
		payerName string
		amount    string
		want      string
	}{
		{
			name:      "ampersand and equals in name",
			upiID:     "bob@bank",
			payerName: "Bob&am=1",
			amount:    "250.00",
			want:      "upi://pay?pa=bob%40bank&pn=Bob%26am%3D1&am=250.00&tn=Payment",
		},
		{
			name:      "query and fragment in name",
			upiID:     "bob@bank",
			payerName: "Bob?x#y",
			amount:    "10",
			want:      "upi://pay?pa=bob%40bank&pn=Bob%3Fx%23y&am=10&tn=Payment",
		},
		{
			name:      "injected parameter in amount",
			upiID:     "bob@bank",
			payerName: "Bob",
			amount:    "1&pa=evil@bank",
			want:      "upi://pay?pa=bob%40bank&pn=Bob&am=1%26pa%3Devil%40bank&tn=Payment",
		},
		{
			name:      "literal percent and plus",
			upiID:     "bob+1@bank",
			payerName: "100% Bob",
			amount:    "5",
			want:      "upi://pay?pa=bob%2B1%40bank&pn=100%25%20Bob&am=5&tn=Payment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := BuildUPILink(tt.upiID, tt.payerName, tt.amount)
			if link != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, link)
			}
			if strings.Count(link, "&am=") != 1 || strings.Count(link, "pa=") != 1 {
				t.Fatalf("expected exactly one pa and am parameter, got %q", link)
			}
		})
	}
}

func TestBuildQRImage_ReturnsDataURI(t *testing.T) {
	enc := &qrEncoderStub{png: []byte("png-bytes")}
	builder := NewQRBuilder(enc, 0, zerolog.Nop())

	uri, err := builder.BuildQRImage("alice@bank", "Alice Rao", "250.00")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if enc.gotSize != DefaultQRImageSize {
		t.Fatalf("expected default size %d, got %d", DefaultQRImageSize, enc.gotSize)
	}
	if enc.gotContent != BuildUPILink("alice@bank", "Alice Rao", "250.00") {
		t.Fatalf("expected encoder to receive the upi link, got %q", enc.gotContent)
	}
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	if uri != want {
		t.Fatalf("expected %q, got %q", want, uri)
	}
}

func TestBuildQRImage_SurfacesEncoderFailure(t *testing.T) {
	cause := errors.New("content too long to encode")
	builder := NewQRBuilder(&qrEncoderStub{err: cause}, 300, zerolog.Nop())

	_, err := builder.BuildQRImage("alice@bank", "Alice Rao", "250.00")

	var qrErr *QREncodingError
	if !errors.As(err, &qrErr) {
		t.Fatalf("expected QREncodingError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected encoder cause to be preserved, got %v", err)
	}
	if !strings.Contains(err.Error(), "content too long") {
		t.Fatalf("expected message to surface the encoder reason, got %q", err.Error())
	}
}
