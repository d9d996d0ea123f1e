package profile

import (
	"log"
	"time"

	"mestero/db"
	"mestero/globals"
	"mestero/models"
	"mestero/rdx"
)

const roleCacheTTL = time.Hour

func roleKey(userID string) string {
	return "role:" + userID
}

// LookupRole resolves a user's account type, serving from the Redis cache
// when possible. Any failure along the way resolves to CLIENT.
func LookupRole(userID string) models.UserType {
	if userID == "" {
		return models.UserTypeClient
	}

	if cached, err := rdx.Get(roleKey(userID)); err == nil && cached != "" {
		return models.ParseUserType(cached)
	}

	doc := db.GetDocumentOrNil(globals.Ctx, db.UserCollection, userID)
	role := roleFromDoc(doc)
	if doc != nil {
		CacheRole(userID, role)
	}
	return role
}

func roleFromDoc(doc map[string]any) models.UserType {
	if doc == nil {
		return models.UserTypeClient
	}
	return models.UserFromMap(doc).UserType
}

func CacheRole(userID string, role models.UserType) {
	if err := rdx.SetWithExpiry(roleKey(userID), string(role), roleCacheTTL); err != nil {
		log.Printf("Failed to cache role for %s: %v", userID, err)
	}
}

func EvictRole(userID string) {
	if err := rdx.Del(roleKey(userID)); err != nil {
		log.Printf("Failed to evict role for %s: %v", userID, err)
	}
}
