package search

import (
	"testing"

	"mestero/models"
)

func sampleListings() []models.Listing {
	return []models.Listing{
		{ID: "l1", Title: "Kitchen renovation", Description: "Full kitchen remodel", Category: "home_improvement", Subcategory: "kitchen_remodeling"},
		{ID: "l2", Title: "Garden design", Description: "Landscaping and planting", Category: "outdoor", Subcategory: "landscaping", Tags: []string{"garden", "plants"}},
		{ID: "l3", Title: "Math tutoring", Description: "Algebra and calculus lessons", Category: "education", Subcategory: "tutoring"},
	}
}

func ids(listings []models.Listing) []string {
	var out []string
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestFilterListingsMatchesAcrossFields(t *testing.T) {
	listings := sampleListings()

	cases := []struct {
		term string
		want []string
	}{
		{"kitchen", []string{"l1"}},         // title and subcategory
		{"KITCHEN", []string{"l1"}},         // case insensitive
		{"plants", []string{"l2"}},          // tag only
		{"education", []string{"l3"}},       // category
		{"calculus", []string{"l3"}},        // description
		{"den", []string{"l2"}},             // substring inside a word
		{"plumbing", nil},                   // no match
	}

	for _, tc := range cases {
		got := ids(FilterListings(listings, tc.term))
		if len(got) != len(tc.want) {
			t.Errorf("term %q: got %v, want %v", tc.term, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("term %q: got %v, want %v", tc.term, got, tc.want)
			}
		}
	}
}

func TestFilterListingsPreservesOrder(t *testing.T) {
	listings := []models.Listing{
		{ID: "b", Title: "painting walls first"},
		{ID: "a", Title: "painting fences second"},
	}
	got := ids(FilterListings(listings, "painting"))
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("order not preserved: %v", got)
	}
}
