package listings

import (
	"context"
	"net/http"
	"time"

	"mestero/db"
	"mestero/models"
	"mestero/utils"

	"github.com/julienschmidt/httprouter"
)

const (
	newestFeedLimit     = 10
	mostViewedFeedLimit = 8
	myListingsFeedLimit = 8
)

// GetNewestListings serves the home screen's latest-listings row.
func GetNewestListings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	serveFeed(w, r, db.QueryParams{
		Filters:        []db.QueryFilter{{Field: "active", Value: true, Type: db.EqualTo}},
		OrderBy:        "createdAt",
		OrderDirection: db.Descending,
		Limit:          newestFeedLimit,
	})
}

// GetMostViewedListings serves the home screen's popular row.
func GetMostViewedListings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	serveFeed(w, r, db.QueryParams{
		Filters:        []db.QueryFilter{{Field: "active", Value: true, Type: db.EqualTo}},
		OrderBy:        "views",
		OrderDirection: db.Descending,
		Limit:          mostViewedFeedLimit,
	})
}

// GetMyListings returns the caller's own listings, active or not.
func GetMyListings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	serveFeed(w, r, db.QueryParams{
		Filters:        []db.QueryFilter{{Field: "providerId", Value: userID, Type: db.EqualTo}},
		OrderBy:        "createdAt",
		OrderDirection: db.Descending,
		Limit:          myListingsFeedLimit,
	})
}

// GetListingsByCategory returns active listings in one category.
func GetListingsByCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	filters := []db.QueryFilter{
		{Field: "active", Value: true, Type: db.EqualTo},
		{Field: "category", Value: ps.ByName("category"), Type: db.EqualTo},
	}
	if sub := r.URL.Query().Get("subcategory"); sub != "" {
		filters = append(filters, db.QueryFilter{Field: "subcategory", Value: sub, Type: db.EqualTo})
	}
	serveFeed(w, r, db.QueryParams{
		Filters:        filters,
		OrderBy:        "createdAt",
		OrderDirection: db.Descending,
		Limit:          int64(utils.ParseQueryOptions(r).Limit),
	})
}

func serveFeed(w http.ResponseWriter, r *http.Request, params db.QueryParams) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docs, err := db.QueryDocuments(ctx, db.ListingsCollection, params)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch listings")
		return
	}

	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, listingResponse(models.ListingFromMap(doc)))
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}
