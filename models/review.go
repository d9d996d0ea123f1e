package models

import (
	"time"
	"unicode/utf8"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MinCommentLength = 5
	MaxCommentLength = 500
)

// Review holds up to two independent rating+comment pairs: one for the service
// (listing) and one for the provider. At least one complete pair is required.
type Review struct {
	ID              string
	BookingID       string
	ListingID       string
	ListingTitle    string
	ProviderID      string
	ProviderName    string
	ClientID        string
	ClientName      string
	ServiceRating   *int
	ServiceComment  string
	ProviderRating  *int
	ProviderComment string
	IsAnonymous     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	IsReported      bool
	IsHidden        bool
	ModerationNotes string
}

func asRating(m map[string]any, key string) *int {
	switch v := m[key].(type) {
	case int:
		return &v
	case int32:
		n := int(v)
		return &n
	case int64:
		n := int(v)
		return &n
	case float64:
		n := int(v)
		return &n
	}
	return nil
}

func ReviewFromMap(m map[string]any) Review {
	return Review{
		ID:              asString(m, "_id"),
		BookingID:       asString(m, "bookingId"),
		ListingID:       asString(m, "listingId"),
		ListingTitle:    asString(m, "listingTitle"),
		ProviderID:      asString(m, "providerId"),
		ProviderName:    asString(m, "providerName"),
		ClientID:        asString(m, "clientId"),
		ClientName:      asString(m, "clientName"),
		ServiceRating:   asRating(m, "serviceRating"),
		ServiceComment:  asString(m, "serviceComment"),
		ProviderRating:  asRating(m, "providerRating"),
		ProviderComment: asString(m, "providerComment"),
		IsAnonymous:     asBool(m, "isAnonymous"),
		CreatedAt:       asTime(m, "createdAt"),
		UpdatedAt:       asTime(m, "updatedAt"),
		IsReported:      asBool(m, "isReported"),
		IsHidden:        asBool(m, "isHidden"),
		ModerationNotes: asString(m, "moderationNotes"),
	}
}

func (r Review) ToMap() map[string]any {
	m := map[string]any{
		"bookingId":       r.BookingID,
		"listingId":       r.ListingID,
		"listingTitle":    r.ListingTitle,
		"providerId":      r.ProviderID,
		"providerName":    r.ProviderName,
		"clientId":        r.ClientID,
		"clientName":      r.ClientName,
		"serviceComment":  r.ServiceComment,
		"providerComment": r.ProviderComment,
		"isAnonymous":     r.IsAnonymous,
		"isReported":      r.IsReported,
		"isHidden":        r.IsHidden,
		"moderationNotes": r.ModerationNotes,
	}
	if r.ServiceRating != nil {
		m["serviceRating"] = *r.ServiceRating
	}
	if r.ProviderRating != nil {
		m["providerRating"] = *r.ProviderRating
	}
	if !r.CreatedAt.IsZero() {
		m["createdAt"] = r.CreatedAt
	}
	if !r.UpdatedAt.IsZero() {
		m["updatedAt"] = r.UpdatedAt
	}
	return m
}

func (r Review) HasServiceReview() bool {
	return r.ServiceRating != nil && utf8.RuneCountInString(r.ServiceComment) >= MinCommentLength
}

func (r Review) HasProviderReview() bool {
	return r.ProviderRating != nil && utf8.RuneCountInString(r.ProviderComment) >= MinCommentLength
}

func (r Review) HasAnyReview() bool {
	return r.HasServiceReview() || r.HasProviderReview()
}

func (r Review) DisplayClientName() string {
	if r.IsAnonymous || r.ClientName == "" {
		return "Anonymous"
	}
	return r.ClientName
}

func (r Review) Validate() []string {
	var errs []string

	if !r.HasAnyReview() {
		errs = append(errs, "Please provide at least one review (service or provider)")
	}

	if r.ServiceRating != nil {
		if *r.ServiceRating < MinRating || *r.ServiceRating > MaxRating {
			errs = append(errs, "Service rating must be between 1 and 5 stars")
		}
		if utf8.RuneCountInString(r.ServiceComment) < MinCommentLength {
			errs = append(errs, "Service review comment must be at least 5 characters")
		}
	}
	if utf8.RuneCountInString(r.ServiceComment) > MaxCommentLength {
		errs = append(errs, "Service review comment cannot exceed 500 characters")
	}

	if r.ProviderRating != nil {
		if *r.ProviderRating < MinRating || *r.ProviderRating > MaxRating {
			errs = append(errs, "Provider rating must be between 1 and 5 stars")
		}
		if utf8.RuneCountInString(r.ProviderComment) < MinCommentLength {
			errs = append(errs, "Provider review comment must be at least 5 characters")
		}
	}
	if utf8.RuneCountInString(r.ProviderComment) > MaxCommentLength {
		errs = append(errs, "Provider review comment cannot exceed 500 characters")
	}

	if r.BookingID == "" {
		errs = append(errs, "Error fetching booking")
	}
	if r.ProviderID == "" {
		errs = append(errs, "Error fetching provider")
	}
	if r.ClientID == "" {
		errs = append(errs, "Error fetching client")
	}

	return errs
}
