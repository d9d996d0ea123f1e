package bookings

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"mestero/db"
	"mestero/models"
	"mestero/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

func hmacSecret() []byte {
	secret := os.Getenv("BOOKING_HMAC_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
	}
	return []byte(secret)
}

// GenerateQRPayload signs bookingID|listingID|timestamp so a scanned
// confirmation can be verified offline.
func GenerateQRPayload(bookingID, listingID string) string {
	data := fmt.Sprintf("%s|%s|%d", bookingID, listingID, time.Now().Unix())

	h := hmac.New(sha256.New, hmacSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyQRPayload checks the signature on a scanned payload.
func VerifyQRPayload(payload string) bool {
	idx := bytes.LastIndexByte([]byte(payload), '|')
	if idx < 0 {
		return false
	}
	data, sig := payload[:idx], payload[idx+1:]

	h := hmac.New(sha256.New, hmacSecret())
	h.Write([]byte(data))
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(sig))
}

// PrintBookingConfirmation renders an accepted or completed booking as a PDF
// with a signed QR code. Only the two parties may download it.
func PrintBookingConfirmation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	bookingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	doc, err := db.GetDocument(ctx, db.BookingsCollection, bookingID)
	if err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}
	booking := models.BookingRequestFromMap(doc)

	if userID != booking.ClientID && userID != booking.ProviderID {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if booking.Status != models.StatusAccepted && booking.Status != models.StatusCompleted {
		http.Error(w, "Booking is not confirmed", http.StatusBadRequest)
		return
	}

	qrPNG, err := qrcode.Encode(GenerateQRPayload(bookingID, booking.ListingID), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Confirmation")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Service: %s", booking.ListingTitle))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Provider: %s", booking.ProviderName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Client: %s", booking.ClientName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", booking.StatusDisplayText()))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Requested: %s", booking.CreatedAt.Format("2 Jan 2006")))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=booking-"+bookingID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
