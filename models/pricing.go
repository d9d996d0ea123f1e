package models

import "fmt"

type PricingType string

const (
	PricingFixed      PricingType = "FIXED"
	PricingRange      PricingType = "RANGE"
	PricingToBeAgreed PricingType = "TO_BE_AGREED"
)

type PricingUnit string

const (
	UnitTotal          PricingUnit = "TOTAL"
	UnitPerHour        PricingUnit = "PER_HOUR"
	UnitPerSession     PricingUnit = "PER_SESSION"
	UnitPerSquareMeter PricingUnit = "PER_SQUARE_METER"
)

func ParsePricingType(s string) PricingType {
	switch PricingType(s) {
	case PricingRange:
		return PricingRange
	case PricingToBeAgreed:
		return PricingToBeAgreed
	default:
		return PricingFixed
	}
}

func ParsePricingUnit(s string) PricingUnit {
	switch PricingUnit(s) {
	case UnitPerHour:
		return UnitPerHour
	case UnitPerSession:
		return UnitPerSession
	case UnitPerSquareMeter:
		return UnitPerSquareMeter
	default:
		return UnitTotal
	}
}

// Pricing describes how a listing is priced. Exactly one mode applies: a fixed
// price, a min/max range, or a price to be agreed with the provider.
type Pricing struct {
	Type       PricingType
	Unit       PricingUnit
	FixedPrice float64
	MinPrice   float64
	MaxPrice   float64
}

func NewFixedPricing(price float64, unit PricingUnit) Pricing {
	return Pricing{Type: PricingFixed, Unit: unit, FixedPrice: price}
}

func NewRangePricing(min, max float64, unit PricingUnit) Pricing {
	return Pricing{Type: PricingRange, Unit: unit, MinPrice: min, MaxPrice: max}
}

func NewToBeAgreedPricing() Pricing {
	return Pricing{Type: PricingToBeAgreed, Unit: UnitTotal}
}

func PricingFromMap(m map[string]any) Pricing {
	return Pricing{
		Type:       ParsePricingType(asString(m, "type")),
		Unit:       ParsePricingUnit(asString(m, "unit")),
		FixedPrice: asFloat(m, "fixedPrice"),
		MinPrice:   asFloat(m, "minPrice"),
		MaxPrice:   asFloat(m, "maxPrice"),
	}
}

func (p Pricing) ToMap() map[string]any {
	return map[string]any{
		"type":       string(p.Type),
		"unit":       string(p.Unit),
		"fixedPrice": p.FixedPrice,
		"minPrice":   p.MinPrice,
		"maxPrice":   p.MaxPrice,
	}
}

func (p Pricing) Validate() []string {
	var errs []string

	switch p.Type {
	case PricingFixed:
		if p.FixedPrice <= 0 {
			errs = append(errs, "Price must be greater than 0")
		}
	case PricingRange:
		if p.MinPrice <= 0 {
			errs = append(errs, "Minimum price must be greater than 0")
		}
		if p.MaxPrice <= 0 {
			errs = append(errs, "Maximum price must be greater than 0")
		}
		if p.MinPrice >= p.MaxPrice {
			errs = append(errs, "Maximum price must be greater than minimum price")
		}
	case PricingToBeAgreed:
		// nothing to check
	}

	return errs
}

func (p Pricing) unitText() string {
	switch p.Unit {
	case UnitPerHour:
		return "per hour"
	case UnitPerSession:
		return "per session"
	case UnitPerSquareMeter:
		return "per m2"
	default:
		return "total"
	}
}

func (p Pricing) FormattedPrice() string {
	switch p.Type {
	case PricingFixed:
		return fmt.Sprintf("%.2f %s", p.FixedPrice, p.unitText())
	case PricingRange:
		return fmt.Sprintf("%.2f - %.2f %s", p.MinPrice, p.MaxPrice, p.unitText())
	default:
		return "Contact for price"
	}
}
