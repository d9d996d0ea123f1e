package models

import (
	"strings"
	"time"
)

type UserType string

const (
	UserTypeClient   UserType = "CLIENT"
	UserTypeProvider UserType = "PROVIDER"
)

// ParseUserType falls back to CLIENT on anything unrecognized.
func ParseUserType(s string) UserType {
	if UserType(s) == UserTypeProvider {
		return UserTypeProvider
	}
	return UserTypeClient
}

// User is an account profile. Skills, experience and the cumulative rating
// fields only carry meaning for providers.
type User struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	UserType        UserType
	PhoneNumber     string
	Location        string
	Website         string
	Skills          []string
	ExperienceLevel string
	RatingSum       int
	ReviewCount     int
	Favorites       []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func UserFromMap(m map[string]any) User {
	return User{
		ID:              asString(m, "_id"),
		Email:           asString(m, "email"),
		FirstName:       asString(m, "firstName"),
		LastName:        asString(m, "lastName"),
		UserType:        ParseUserType(asString(m, "userType")),
		PhoneNumber:     asString(m, "phoneNumber"),
		Location:        asString(m, "location"),
		Website:         asString(m, "website"),
		Skills:          asStringSlice(m, "skills"),
		ExperienceLevel: asString(m, "experienceLevel"),
		RatingSum:       asInt(m, "ratingSum"),
		ReviewCount:     asInt(m, "reviewCount"),
		Favorites:       asStringSlice(m, "favorites"),
		CreatedAt:       asTime(m, "createdAt"),
		UpdatedAt:       asTime(m, "updatedAt"),
	}
}

func (u User) ToMap() map[string]any {
	m := map[string]any{
		"email":           u.Email,
		"firstName":       u.FirstName,
		"lastName":        u.LastName,
		"userType":        string(u.UserType),
		"phoneNumber":     u.PhoneNumber,
		"location":        u.Location,
		"website":         u.Website,
		"skills":          u.Skills,
		"experienceLevel": u.ExperienceLevel,
		"ratingSum":       u.RatingSum,
		"reviewCount":     u.ReviewCount,
		"favorites":       u.Favorites,
	}
	if !u.CreatedAt.IsZero() {
		m["createdAt"] = u.CreatedAt
	}
	if !u.UpdatedAt.IsZero() {
		m["updatedAt"] = u.UpdatedAt
	}
	return m
}

func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return "User"
	}
	return name
}

// Rating is the provider's average, 0 when unreviewed.
func (u User) Rating() float64 {
	if u.ReviewCount == 0 {
		return 0
	}
	return float64(u.RatingSum) / float64(u.ReviewCount)
}
