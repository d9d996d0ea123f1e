package listings

import (
	"context"
	"net/http"
	"time"

	"mestero/db"
	"mestero/models"
	"mestero/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// AddFavorite stores the listing on the caller's favorites and bumps the
// listing's counter. $addToSet keeps repeat calls idempotent on the user
// side; the counter only moves when the set actually grew.
func AddFavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	listingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if db.GetDocumentOrNil(ctx, db.ListingsCollection, listingID) == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"favorites": listingID}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add favorite")
		return
	}

	if res.ModifiedCount > 0 {
		_, err = db.ListingsCollection.UpdateOne(ctx,
			bson.M{"_id": listingID},
			bson.M{"$inc": bson.M{"favoritesCount": 1}},
		)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update favorite count")
			return
		}
	}

	utils.SendResponse(w, http.StatusOK, nil, "Added to favorites", nil)
}

// RemoveFavorite is the inverse of AddFavorite.
func RemoveFavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	listingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"favorites": listingID}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove favorite")
		return
	}

	if res.ModifiedCount > 0 {
		_, err = db.ListingsCollection.UpdateOne(ctx,
			bson.M{"_id": listingID, "favoritesCount": bson.M{"$gt": 0}},
			bson.M{"$inc": bson.M{"favoritesCount": -1}},
		)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update favorite count")
			return
		}
	}

	utils.SendResponse(w, http.StatusOK, nil, "Removed from favorites", nil)
}

// GetFavorites resolves the caller's favorites list to full listings.
func GetFavorites(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userDoc, err := db.GetDocument(ctx, db.UserCollection, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	favorites := models.UserFromMap(userDoc).Favorites
	if len(favorites) == 0 {
		utils.RespondWithJSON(w, http.StatusOK, []map[string]any{})
		return
	}

	docs, err := db.QueryDocuments(ctx, db.ListingsCollection, db.QueryParams{
		Filters: []db.QueryFilter{{Field: "_id", Value: favorites, Type: db.In}},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch favorites")
		return
	}

	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, listingResponse(models.ListingFromMap(doc)))
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}
