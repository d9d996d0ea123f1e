package models

import "time"

type RequestStatus string

const (
	StatusPending   RequestStatus = "PENDING"
	StatusAccepted  RequestStatus = "ACCEPTED"
	StatusRejected  RequestStatus = "REJECTED"
	StatusCompleted RequestStatus = "COMPLETED"
)

func ParseRequestStatus(s string) RequestStatus {
	switch RequestStatus(s) {
	case StatusAccepted:
		return StatusAccepted
	case StatusRejected:
		return StatusRejected
	case StatusCompleted:
		return StatusCompleted
	default:
		return StatusPending
	}
}

// CanTransition reports whether a status change is legal:
// pending may become accepted or rejected, accepted may become completed.
// The write path enforces this, not just the UI.
func CanTransition(from, to RequestStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusAccepted || to == StatusRejected
	case StatusAccepted:
		return to == StatusCompleted
	default:
		return false
	}
}

// BookingRequest is a client's request to engage a listing's provider. Both
// parties' contact details are snapshotted at creation time so the request
// stays readable even if profiles change later.
type BookingRequest struct {
	ID                string
	ListingID         string
	ListingTitle      string
	ProviderID        string
	ProviderName      string
	ProviderEmail     string
	ProviderPhone     string
	ClientID          string
	ClientName        string
	ClientEmail       string
	ClientPhone       string
	Status            RequestStatus
	Notes             string
	ProviderNotes     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       time.Time
	HiddenForClient   bool
	HiddenForProvider bool
}

func BookingRequestFromMap(m map[string]any) BookingRequest {
	return BookingRequest{
		ID:                asString(m, "_id"),
		ListingID:         asString(m, "listingId"),
		ListingTitle:      asString(m, "listingTitle"),
		ProviderID:        asString(m, "providerId"),
		ProviderName:      asString(m, "providerName"),
		ProviderEmail:     asString(m, "providerEmail"),
		ProviderPhone:     asString(m, "providerPhone"),
		ClientID:          asString(m, "clientId"),
		ClientName:        asString(m, "clientName"),
		ClientEmail:       asString(m, "clientEmail"),
		ClientPhone:       asString(m, "clientPhone"),
		Status:            ParseRequestStatus(asString(m, "status")),
		Notes:             asString(m, "notes"),
		ProviderNotes:     asString(m, "providerNotes"),
		CreatedAt:         asTime(m, "createdAt"),
		UpdatedAt:         asTime(m, "updatedAt"),
		CompletedAt:       asTime(m, "completedAt"),
		HiddenForClient:   asBool(m, "hiddenForClient"),
		HiddenForProvider: asBool(m, "hiddenForProvider"),
	}
}

func (b BookingRequest) ToMap() map[string]any {
	m := map[string]any{
		"listingId":         b.ListingID,
		"listingTitle":      b.ListingTitle,
		"providerId":        b.ProviderID,
		"providerName":      b.ProviderName,
		"providerEmail":     b.ProviderEmail,
		"providerPhone":     b.ProviderPhone,
		"clientId":          b.ClientID,
		"clientName":        b.ClientName,
		"clientEmail":       b.ClientEmail,
		"clientPhone":       b.ClientPhone,
		"status":            string(b.Status),
		"notes":             b.Notes,
		"providerNotes":     b.ProviderNotes,
		"hiddenForClient":   b.HiddenForClient,
		"hiddenForProvider": b.HiddenForProvider,
	}
	if !b.CreatedAt.IsZero() {
		m["createdAt"] = b.CreatedAt
	}
	if !b.UpdatedAt.IsZero() {
		m["updatedAt"] = b.UpdatedAt
	}
	if !b.CompletedAt.IsZero() {
		m["completedAt"] = b.CompletedAt
	}
	return m
}

// CanBeResponded reports whether the provider may still accept or reject.
func (b BookingRequest) CanBeResponded() bool {
	return b.Status == StatusPending
}

// CanBeCompleted reports whether the request may be marked completed.
func (b BookingRequest) CanBeCompleted() bool {
	return b.Status == StatusAccepted
}

func (b BookingRequest) StatusDisplayText() string {
	switch b.Status {
	case StatusAccepted:
		return "Accepted"
	case StatusRejected:
		return "Rejected"
	case StatusCompleted:
		return "Completed"
	default:
		return "Pending Response"
	}
}
