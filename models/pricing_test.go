package models

import (
	"strings"
	"testing"
)

func hasError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestFixedPricingValidation(t *testing.T) {
	for _, price := range []float64{0, -1, -99.5} {
		errs := NewFixedPricing(price, UnitTotal).Validate()
		if !hasError(errs, "must be greater than 0") {
			t.Errorf("fixed price %v should be rejected, got %v", price, errs)
		}
	}

	if errs := NewFixedPricing(25, UnitPerHour).Validate(); len(errs) != 0 {
		t.Errorf("valid fixed pricing rejected: %v", errs)
	}
}

func TestRangePricingValidation(t *testing.T) {
	// min >= max fails regardless of unit
	for _, unit := range []PricingUnit{UnitTotal, UnitPerHour, UnitPerSession, UnitPerSquareMeter} {
		errs := NewRangePricing(100, 50, unit).Validate()
		if !hasError(errs, "Maximum price must be greater than minimum price") {
			t.Errorf("unit %s: inverted range should be rejected, got %v", unit, errs)
		}

		errs = NewRangePricing(50, 50, unit).Validate()
		if !hasError(errs, "Maximum price must be greater than minimum price") {
			t.Errorf("unit %s: equal min/max should be rejected, got %v", unit, errs)
		}
	}

	errs := NewRangePricing(0, 100, UnitTotal).Validate()
	if !hasError(errs, "Minimum price must be greater than 0") {
		t.Errorf("zero min should be rejected, got %v", errs)
	}

	if errs := NewRangePricing(50, 100, UnitPerSession).Validate(); len(errs) != 0 {
		t.Errorf("valid range pricing rejected: %v", errs)
	}
}

func TestToBeAgreedPricingHasNoNumericConstraints(t *testing.T) {
	if errs := NewToBeAgreedPricing().Validate(); len(errs) != 0 {
		t.Errorf("to-be-agreed pricing should always validate, got %v", errs)
	}
}

func TestPricingRoundTrip(t *testing.T) {
	in := NewRangePricing(20, 80, UnitPerSquareMeter)
	out := PricingFromMap(in.ToMap())
	if out != in {
		t.Errorf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestParsePricingTypeFallback(t *testing.T) {
	if got := ParsePricingType("garbage"); got != PricingFixed {
		t.Errorf("unknown type should fall back to FIXED, got %s", got)
	}
	if got := ParsePricingUnit(""); got != UnitTotal {
		t.Errorf("unknown unit should fall back to TOTAL, got %s", got)
	}
}
