package models

import (
	"reflect"
	"strings"
	"testing"
)

func validListing() Listing {
	p := NewFixedPricing(50, UnitPerHour)
	return Listing{
		Title:       "Pipe repairs",
		Description: "Fast and reliable plumbing work.",
		Category:    "home_improvement",
		Subcategory: "plumbing",
		County:      "Cluj",
		ProviderID:  "prov1",
		Pricing:     &p,
		Tags:        []string{"plumbing", "repairs"},
		Active:      true,
	}
}

func TestListingValidationBounds(t *testing.T) {
	l := validListing()
	l.Title = "ab"
	errs := l.Validate()
	if !hasError(errs, "Title must be between 3 and 100 characters") {
		t.Errorf("short title should fail, got %v", errs)
	}

	l = validListing()
	l.Title = strings.Repeat("x", 101)
	if !hasError(l.Validate(), "Title must be between 3 and 100 characters") {
		t.Error("overlong title should fail")
	}

	l = validListing()
	l.Description = "too short"
	if !hasError(l.Validate(), "Description must be between 10 and 1000 characters") {
		t.Error("short description should fail")
	}

	l = validListing()
	l.Description = strings.Repeat("y", 1001)
	if !hasError(l.Validate(), "Description must be between 10 and 1000 characters") {
		t.Error("overlong description should fail")
	}
}

func TestListingValidationCountsCharactersNotBytes(t *testing.T) {
	// Multi-byte characters count once each, so 90 of them stay in bounds.
	l := validListing()
	l.Title = strings.Repeat("ă", 90)
	if errs := l.Validate(); hasError(errs, "Title must be between") {
		t.Errorf("90-character title rejected: %v", errs)
	}

	l = validListing()
	l.Title = strings.Repeat("ă", 101)
	if !hasError(l.Validate(), "Title must be between 3 and 100 characters") {
		t.Error("101-character title should fail")
	}

	l = validListing()
	l.Description = strings.Repeat("ș", 9)
	if !hasError(l.Validate(), "Description must be between 10 and 1000 characters") {
		t.Error("9-character description should fail")
	}
}

func TestListingValidationChecksAreIndependent(t *testing.T) {
	l := validListing()
	l.Title = "ab"
	l.Description = "short"
	errs := l.Validate()
	if !hasError(errs, "Title must be between") || !hasError(errs, "Description must be between") {
		t.Errorf("both title and description errors should fire together, got %v", errs)
	}
}

func TestListingValidationRequiredFields(t *testing.T) {
	l := validListing()
	l.Category = ""
	l.Subcategory = ""
	l.Pricing = nil
	errs := l.Validate()
	for _, want := range []string{"Category is required", "Subcategory is required", "Pricing information is required"} {
		if !hasError(errs, want) {
			t.Errorf("missing %q in %v", want, errs)
		}
	}
}

func TestListingValidationContactFormats(t *testing.T) {
	l := validListing()
	l.Email = "not-an-email"
	if !hasError(l.Validate(), "valid email") {
		t.Error("bad email should fail")
	}

	l = validListing()
	l.Email = "a@b.com"
	l.Website = "https://example.com"
	if errs := l.Validate(); len(errs) != 0 {
		t.Errorf("valid contact info rejected: %v", errs)
	}
}

func TestListingRoundTrip(t *testing.T) {
	in := validListing()
	in.Views = 12
	in.FavoritesCount = 3
	in.RatingSum = 9
	in.RatingCount = 2
	in.ImageURLs = []string{"/listingpic/a.jpg"}

	out := ListingFromMap(in.ToMap())

	// The document id is backend-generated and absent pre-round-trip.
	in.ID = ""
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestListingFromMapDefaults(t *testing.T) {
	l := ListingFromMap(map[string]any{"title": 42, "views": "many"})
	if l.Title != "" || l.Views != 0 {
		t.Errorf("mistyped fields should default, got %+v", l)
	}
	if l.County != "No Preference" {
		t.Errorf("missing county should default, got %q", l.County)
	}
	if !l.Active {
		t.Error("missing active flag should default to true")
	}
	if l.Pricing != nil {
		t.Error("missing pricing should stay nil")
	}
}

func TestListingRatingAvg(t *testing.T) {
	l := validListing()
	if l.RatingAvg() != 0 {
		t.Error("no ratings should average to 0")
	}
	l.RatingSum = 9
	l.RatingCount = 2
	if l.RatingAvg() != 4.5 {
		t.Errorf("expected 4.5, got %v", l.RatingAvg())
	}
}

func TestListingNumericWidening(t *testing.T) {
	l := ListingFromMap(map[string]any{
		"views":       int32(7),
		"ratingSum":   int64(12),
		"ratingCount": float64(3),
	})
	if l.Views != 7 || l.RatingSum != 12 || l.RatingCount != 3 {
		t.Errorf("numeric widening failed: %+v", l)
	}
}
