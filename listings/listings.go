package listings

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"mestero/db"
	"mestero/models"
	"mestero/profile"
	"mestero/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateListing validates and inserts a new listing owned by the caller.
// Only provider accounts may post listings.
func CreateListing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if profile.LookupRole(userID) != models.UserTypeProvider {
		utils.RespondWithError(w, http.StatusForbidden, "Only providers can create listings")
		return
	}

	var input map[string]any
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	listing := models.ListingFromMap(input)
	listing.ProviderID = userID
	listing.Tags = normalizeTags(input["tags"])
	if errs := listing.Validate(); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"errors": errs})
		return
	}

	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	listing.Active = true
	listing.Views = 0
	listing.FavoritesCount = 0
	listing.RatingSum = 0
	listing.RatingCount = 0

	listingID := utils.GetUUID()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := db.AddDocument(ctx, db.ListingsCollection, listingID, listing.ToMap()); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create listing")
		return
	}

	utils.SendResponse(w, http.StatusCreated, map[string]string{"listingId": listingID}, "Listing created", nil)
}

// GetListing returns one listing and bumps its view counter server-side.
func GetListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	doc, err := db.GetDocument(ctx, db.ListingsCollection, listingID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}

	listing := models.ListingFromMap(doc)

	// Owners browsing their own listing do not count as a view.
	if utils.GetUserIDFromRequest(r) != listing.ProviderID {
		_, err = db.ListingsCollection.UpdateOne(ctx,
			bson.M{"_id": listingID},
			bson.M{"$inc": bson.M{"views": 1}},
		)
		if err == nil {
			listing.Views++
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, listingResponse(listing))
}

// normalizeTags accepts tags as a list or a comma-separated string and returns
// them trimmed, lowercased and deduplicated.
func normalizeTags(value any) []string {
	switch v := value.(type) {
	case string:
		return utils.SplitTags(v)
	case []string:
		return utils.SplitTags(strings.Join(v, ","))
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return utils.SplitTags(strings.Join(parts, ","))
	default:
		return []string{}
	}
}

// editable listing fields for partial updates
var editableListingFields = map[string]bool{
	"title":             true,
	"description":       true,
	"category":          true,
	"subcategory":       true,
	"pricingModel":      true,
	"county":            true,
	"specificLocations": true,
	"email":             true,
	"phoneNumber":       true,
	"website":           true,
	"tags":              true,
}

// UpdateListing applies a partial field map, owner only. The merged result
// must still pass validation.
func UpdateListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	listingID := ps.ByName("id")

	var input map[string]any
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	doc, err := db.GetDocument(ctx, db.ListingsCollection, listingID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}
	if models.ListingFromMap(doc).ProviderID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Not your listing")
		return
	}

	update := map[string]any{}
	for field, value := range input {
		if !editableListingFields[field] {
			continue
		}
		if field == "tags" {
			value = normalizeTags(value)
		}
		update[field] = value
		doc[field] = value
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No editable fields in payload")
		return
	}

	merged := models.ListingFromMap(doc)
	if errs := merged.Validate(); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"errors": errs})
		return
	}
	update["updatedAt"] = time.Now()

	if err := db.UpdateDocument(ctx, db.ListingsCollection, listingID, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update listing")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Listing updated", nil)
}

// SetListingActive flips the visibility flag, owner only.
func SetListingActive(active bool) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID := utils.GetUserIDFromRequest(r)
		listingID := ps.ByName("id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		res, err := db.ListingsCollection.UpdateOne(ctx,
			bson.M{"_id": listingID, "providerId": userID},
			bson.M{"$set": bson.M{"active": active, "updatedAt": time.Now()}},
		)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update listing")
			return
		}
		if res.MatchedCount == 0 {
			utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
			return
		}

		utils.SendResponse(w, http.StatusOK, nil, "Listing updated", nil)
	}
}

// DeleteListing removes a listing, owner only.
func DeleteListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	listingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ListingsCollection.DeleteOne(ctx, bson.M{"_id": listingID, "providerId": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete listing")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Listing deleted", nil)
}

// GetCategories serves the static category catalog.
func GetCategories(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, models.Categories)
}

func listingResponse(l models.Listing) map[string]any {
	resp := l.ToMap()
	resp["listingId"] = l.ID
	resp["ratingAvg"] = l.RatingAvg()
	resp["formattedPrice"] = l.FormattedPrice()
	return resp
}
