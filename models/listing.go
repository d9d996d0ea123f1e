package models

import (
	"net/mail"
	"net/url"
	"time"
	"unicode/utf8"
)

const (
	MinTitleLength       = 3
	MaxTitleLength       = 100
	MinDescriptionLength = 10
	MaxDescriptionLength = 1000
)

// Listing is a service offer posted by a provider.
type Listing struct {
	ID                string
	Title             string
	Description       string
	Category          string
	Subcategory       string
	County            string
	SpecificLocations string
	PhoneNumber       string
	Email             string
	Website           string
	Pricing           *Pricing
	ProviderID        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Views             int
	FavoritesCount    int
	RatingSum         int
	RatingCount       int
	ImageURLs         []string
	Tags              []string
	Active            bool
}

func ListingFromMap(m map[string]any) Listing {
	l := Listing{
		ID:                asString(m, "_id"),
		Title:             asString(m, "title"),
		Description:       asString(m, "description"),
		Category:          asString(m, "category"),
		Subcategory:       asString(m, "subcategory"),
		County:            asString(m, "county"),
		SpecificLocations: asString(m, "specificLocations"),
		PhoneNumber:       asString(m, "phoneNumber"),
		Email:             asString(m, "email"),
		Website:           asString(m, "website"),
		ProviderID:        asString(m, "providerId"),
		CreatedAt:         asTime(m, "createdAt"),
		UpdatedAt:         asTime(m, "updatedAt"),
		Views:             asInt(m, "views"),
		FavoritesCount:    asInt(m, "favoritesCount"),
		RatingSum:         asInt(m, "ratingSum"),
		RatingCount:       asInt(m, "ratingCount"),
		ImageURLs:         asStringSlice(m, "imageUrls"),
		Tags:              asStringSlice(m, "tags"),
		Active:            true,
	}
	if l.County == "" {
		l.County = "No Preference"
	}
	if v, ok := m["active"].(bool); ok {
		l.Active = v
	}
	if pm := asMap(m, "pricingModel"); pm != nil {
		p := PricingFromMap(pm)
		l.Pricing = &p
	}
	return l
}

func (l Listing) ToMap() map[string]any {
	m := map[string]any{
		"title":             l.Title,
		"description":       l.Description,
		"category":          l.Category,
		"subcategory":       l.Subcategory,
		"county":            l.County,
		"specificLocations": l.SpecificLocations,
		"phoneNumber":       l.PhoneNumber,
		"email":             l.Email,
		"website":           l.Website,
		"providerId":        l.ProviderID,
		"views":             l.Views,
		"favoritesCount":    l.FavoritesCount,
		"ratingSum":         l.RatingSum,
		"ratingCount":       l.RatingCount,
		"imageUrls":         l.ImageURLs,
		"tags":              l.Tags,
		"active":            l.Active,
	}
	if l.Pricing != nil {
		m["pricingModel"] = l.Pricing.ToMap()
	}
	if !l.CreatedAt.IsZero() {
		m["createdAt"] = l.CreatedAt
	}
	if !l.UpdatedAt.IsZero() {
		m["updatedAt"] = l.UpdatedAt
	}
	return m
}

func (l Listing) Validate() []string {
	var errs []string

	if n := utf8.RuneCountInString(l.Title); n < MinTitleLength || n > MaxTitleLength {
		errs = append(errs, "Title must be between 3 and 100 characters")
	}
	if n := utf8.RuneCountInString(l.Description); n < MinDescriptionLength || n > MaxDescriptionLength {
		errs = append(errs, "Description must be between 10 and 1000 characters")
	}
	if l.Category == "" {
		errs = append(errs, "Category is required")
	}
	if l.Subcategory == "" {
		errs = append(errs, "Subcategory is required")
	}

	if l.Pricing == nil {
		errs = append(errs, "Pricing information is required")
	} else {
		errs = append(errs, l.Pricing.Validate()...)
	}

	if l.Email != "" {
		if _, err := mail.ParseAddress(l.Email); err != nil {
			errs = append(errs, "Please enter a valid email address")
		}
	}
	if l.Website != "" {
		if u, err := url.Parse(l.Website); err != nil || u.Host == "" {
			errs = append(errs, "Please enter a valid website URL")
		}
	}

	return errs
}

// RatingAvg is the display average, 0 when the listing has no ratings yet.
func (l Listing) RatingAvg() float64 {
	if l.RatingCount == 0 {
		return 0
	}
	return float64(l.RatingSum) / float64(l.RatingCount)
}

func (l Listing) FormattedPrice() string {
	if l.Pricing == nil {
		return "Contact for price"
	}
	return l.Pricing.FormattedPrice()
}

func (l Listing) HasContactInfo() bool {
	return l.PhoneNumber != "" || l.Email != "" || l.Website != ""
}

func (l Listing) DisplayLocation() string {
	switch {
	case l.County == "Online Services":
		return "Online Services"
	case l.SpecificLocations != "":
		return l.SpecificLocations + ", " + l.County
	case l.County != "No Preference":
		return l.County
	default:
		return "Location not specified"
	}
}
