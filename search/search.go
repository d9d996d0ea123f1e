package search

import (
	"context"
	"net/http"
	"strings"
	"time"

	"mestero/db"
	"mestero/models"
	"mestero/utils"

	"github.com/julienschmidt/httprouter"
)

// searchPageLimit bounds how many active listings one search scans.
const searchPageLimit = 200

// HandleSearch scans a page of active listings for a substring match. A blank
// term is rejected before any backend call.
func HandleSearch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Search term is required")
		return
	}

	filters := []db.QueryFilter{{Field: "active", Value: true, Type: db.EqualTo}}
	if category := r.URL.Query().Get("category"); category != "" {
		filters = append(filters, db.QueryFilter{Field: "category", Value: category, Type: db.EqualTo})
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docs, err := db.QueryDocuments(ctx, db.ListingsCollection, db.QueryParams{
		Filters: filters,
		Limit:   searchPageLimit,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	listings := make([]models.Listing, 0, len(docs))
	for _, doc := range docs {
		listings = append(listings, models.ListingFromMap(doc))
	}

	matched := FilterListings(listings, term)

	out := make([]map[string]any, 0, len(matched))
	for _, l := range matched {
		resp := l.ToMap()
		resp["listingId"] = l.ID
		resp["ratingAvg"] = l.RatingAvg()
		resp["formattedPrice"] = l.FormattedPrice()
		out = append(out, resp)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"query":   term,
		"count":   len(out),
		"results": out,
	})
}

// FilterListings keeps the listings whose title, description, category,
// subcategory or tags contain the term, ignoring case.
func FilterListings(listings []models.Listing, term string) []models.Listing {
	var matched []models.Listing
	for _, l := range listings {
		if MatchesListing(l, term) {
			matched = append(matched, l)
		}
	}
	return matched
}

func MatchesListing(l models.Listing, term string) bool {
	if utils.ContainsIgnoreCase(l.Title, term) ||
		utils.ContainsIgnoreCase(l.Description, term) ||
		utils.ContainsIgnoreCase(l.Category, term) ||
		utils.ContainsIgnoreCase(l.Subcategory, term) {
		return true
	}
	for _, tag := range l.Tags {
		if utils.ContainsIgnoreCase(tag, term) {
			return true
		}
	}
	return false
}
