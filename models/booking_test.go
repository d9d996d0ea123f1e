package models

import (
	"reflect"
	"testing"
	"time"
)

func TestBookingStatusExposure(t *testing.T) {
	b := BookingRequest{Status: StatusPending}
	if !b.CanBeResponded() || b.CanBeCompleted() {
		t.Error("pending: respond=true, complete=false expected")
	}

	b.Status = StatusAccepted
	if b.CanBeResponded() || !b.CanBeCompleted() {
		t.Error("accepted: respond=false, complete=true expected")
	}

	b.Status = StatusCompleted
	if b.CanBeResponded() || b.CanBeCompleted() {
		t.Error("completed: no further actions expected")
	}
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]RequestStatus]bool{
		{StatusPending, StatusAccepted}:   true,
		{StatusPending, StatusRejected}:   true,
		{StatusAccepted, StatusCompleted}: true,
	}

	statuses := []RequestStatus{StatusPending, StatusAccepted, StatusRejected, StatusCompleted}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]RequestStatus{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestParseRequestStatusFallback(t *testing.T) {
	if got := ParseRequestStatus("whatever"); got != StatusPending {
		t.Errorf("unknown status should fall back to PENDING, got %s", got)
	}
	if got := ParseRequestStatus("COMPLETED"); got != StatusCompleted {
		t.Errorf("got %s", got)
	}
}

func TestBookingRequestRoundTrip(t *testing.T) {
	in := BookingRequest{
		ListingID:     "l1",
		ListingTitle:  "Pipe repairs",
		ProviderID:    "p1",
		ProviderName:  "Ana Pop",
		ClientID:      "c1",
		ClientName:    "Ion Pop",
		ClientEmail:   "ion@example.com",
		Status:        StatusAccepted,
		Notes:         "needs doing before friday",
		ProviderNotes: "can do thursday",
		CreatedAt:     time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC),
	}

	out := BookingRequestFromMap(in.ToMap())
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestBookingHiddenFlagsAreIndependent(t *testing.T) {
	b := BookingRequestFromMap(map[string]any{"hiddenForClient": true})
	if !b.HiddenForClient || b.HiddenForProvider {
		t.Errorf("hidden flags should be independent, got %+v", b)
	}
}
