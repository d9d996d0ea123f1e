package bookings

import (
	"strings"
	"testing"
)

func TestQRPayloadRoundTrip(t *testing.T) {
	payload := GenerateQRPayload("booking-1", "listing-9")

	if !strings.HasPrefix(payload, "booking-1|listing-9|") {
		t.Errorf("unexpected payload prefix: %q", payload)
	}
	if !VerifyQRPayload(payload) {
		t.Error("freshly generated payload should verify")
	}
}

func TestQRPayloadTamperDetection(t *testing.T) {
	payload := GenerateQRPayload("booking-1", "listing-9")

	tampered := strings.Replace(payload, "booking-1", "booking-2", 1)
	if VerifyQRPayload(tampered) {
		t.Error("tampered payload should fail verification")
	}

	if VerifyQRPayload("no-separator-here") {
		t.Error("malformed payload should fail verification")
	}
}
