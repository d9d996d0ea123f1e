package models

import (
	"reflect"
	"strings"
	"testing"
)

func intPtr(n int) *int { return &n }

func validReview() Review {
	return Review{
		BookingID:      "b1",
		ListingID:      "l1",
		ProviderID:     "p1",
		ClientID:       "c1",
		ClientName:     "Ion Pop",
		ServiceRating:  intPtr(5),
		ServiceComment: "great work, fast and clean",
	}
}

func TestReviewRequiresAtLeastOnePair(t *testing.T) {
	r := validReview()
	r.ServiceRating = nil
	r.ServiceComment = ""
	if !hasError(r.Validate(), "at least one review") {
		t.Error("review with no rating pair should fail")
	}

	// A provider-only review is enough.
	r.ProviderRating = intPtr(4)
	r.ProviderComment = "polite and punctual"
	if errs := r.Validate(); len(errs) != 0 {
		t.Errorf("provider-only review rejected: %v", errs)
	}
}

func TestReviewRatingBounds(t *testing.T) {
	for _, rating := range []int{0, 6, -1} {
		r := validReview()
		r.ServiceRating = intPtr(rating)
		if !hasError(r.Validate(), "between 1 and 5") {
			t.Errorf("rating %d should be rejected", rating)
		}
	}
}

func TestReviewCommentBounds(t *testing.T) {
	r := validReview()
	r.ServiceComment = "shrt"
	if !hasError(r.Validate(), "at least 5 characters") {
		t.Error("short comment with rating should fail")
	}

	r = validReview()
	r.ServiceComment = strings.Repeat("x", 501)
	if !hasError(r.Validate(), "cannot exceed 500") {
		t.Error("overlong comment should fail")
	}
}

func TestReviewCommentBoundsCountCharactersNotBytes(t *testing.T) {
	// "ăăă" is 3 characters (6 bytes) and must stay below the 5-character minimum.
	r := validReview()
	r.ServiceComment = "ăăă"
	if !hasError(r.Validate(), "at least 5 characters") {
		t.Error("3-character multi-byte comment should fail")
	}
	if r.HasServiceReview() {
		t.Error("3-character multi-byte comment should not count as a service review")
	}

	r = validReview()
	r.ServiceComment = strings.Repeat("ș", 500)
	if errs := r.Validate(); len(errs) != 0 {
		t.Errorf("500-character multi-byte comment rejected: %v", errs)
	}
}

func TestReviewRequiresRefs(t *testing.T) {
	r := validReview()
	r.BookingID = ""
	r.ProviderID = ""
	r.ClientID = ""
	errs := r.Validate()
	for _, want := range []string{"Error fetching booking", "Error fetching provider", "Error fetching client"} {
		if !hasError(errs, want) {
			t.Errorf("missing %q in %v", want, errs)
		}
	}
}

func TestReviewRoundTrip(t *testing.T) {
	in := validReview()
	in.ProviderRating = intPtr(4)
	in.ProviderComment = "would hire again"
	in.IsAnonymous = true

	out := ReviewFromMap(in.ToMap())
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}

	// absent ratings stay absent
	in.ProviderRating = nil
	out = ReviewFromMap(in.ToMap())
	if out.ProviderRating != nil {
		t.Error("nil provider rating should survive the round trip")
	}
}

func TestReviewDisplayClientName(t *testing.T) {
	r := validReview()
	r.IsAnonymous = true
	if r.DisplayClientName() != "Anonymous" {
		t.Error("anonymous reviews should hide the client name")
	}
	r.IsAnonymous = false
	if r.DisplayClientName() != "Ion Pop" {
		t.Error("named reviews should show the client name")
	}
	r.ClientName = ""
	if r.DisplayClientName() != "Anonymous" {
		t.Error("blank client name should display as Anonymous")
	}
}
