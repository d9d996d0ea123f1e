package reviews

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mestero/db"
	"mestero/models"
	"mestero/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubmitReview files a review against a completed booking. The review insert
// and both aggregate counter updates commit in a single transaction, so the
// averages can never drift from the stored reviews.
func SubmitReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	clientID := utils.GetUserIDFromRequest(r)
	if clientID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		BookingID       string `json:"bookingId"`
		ServiceRating   *int   `json:"serviceRating"`
		ServiceComment  string `json:"serviceComment"`
		ProviderRating  *int   `json:"providerRating"`
		ProviderComment string `json:"providerComment"`
		IsAnonymous     bool   `json:"isAnonymous"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	bookingDoc, err := db.GetDocument(ctx, db.BookingsCollection, input.BookingID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	booking := models.BookingRequestFromMap(bookingDoc)

	if booking.ClientID != clientID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the client may review this booking")
		return
	}
	if booking.Status != models.StatusCompleted {
		utils.RespondWithError(w, http.StatusBadRequest, "Only completed bookings can be reviewed")
		return
	}

	review := models.Review{
		BookingID:       booking.ID,
		ListingID:       booking.ListingID,
		ListingTitle:    booking.ListingTitle,
		ProviderID:      booking.ProviderID,
		ProviderName:    booking.ProviderName,
		ClientID:        booking.ClientID,
		ClientName:      booking.ClientName,
		ServiceRating:   input.ServiceRating,
		ServiceComment:  input.ServiceComment,
		ProviderRating:  input.ProviderRating,
		ProviderComment: input.ProviderComment,
		IsAnonymous:     input.IsAnonymous,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if errs := review.Validate(); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"errors": errs})
		return
	}

	// One review per booking.
	err = db.ReviewsCollection.FindOne(ctx, bson.M{"bookingId": booking.ID}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "This booking has already been reviewed")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check existing reviews")
		return
	}

	reviewID := utils.GetUUID()
	reviewDoc := review.ToMap()
	reviewDoc["_id"] = reviewID

	err = db.RunTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := db.ReviewsCollection.InsertOne(sc, reviewDoc); err != nil {
			return err
		}
		if review.HasProviderReview() {
			_, err := db.UserCollection.UpdateOne(sc,
				bson.M{"_id": review.ProviderID},
				bson.M{"$inc": bson.M{"ratingSum": *review.ProviderRating, "reviewCount": 1}},
			)
			if err != nil {
				return err
			}
		}
		if review.HasServiceReview() {
			_, err := db.ListingsCollection.UpdateOne(sc,
				bson.M{"_id": review.ListingID},
				bson.M{"$inc": bson.M{"ratingSum": *review.ServiceRating, "ratingCount": 1}},
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}

	utils.SendResponse(w, http.StatusCreated, map[string]string{"reviewId": reviewID}, "Review submitted", nil)
}

// GetListingReviews returns visible reviews for one listing, newest first.
func GetListingReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listReviews(w, r, "listingId", ps.ByName("id"))
}

// GetProviderReviews returns visible reviews for one provider, newest first.
func GetProviderReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listReviews(w, r, "providerId", ps.ByName("id"))
}

func listReviews(w http.ResponseWriter, r *http.Request, field, value string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docs, err := db.QueryDocuments(ctx, db.ReviewsCollection, db.QueryParams{
		Filters: []db.QueryFilter{
			{Field: field, Value: value, Type: db.EqualTo},
			{Field: "isHidden", Value: true, Type: db.NotEqualTo},
		},
		OrderBy:        "createdAt",
		OrderDirection: db.Descending,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		review := models.ReviewFromMap(doc)
		resp := review.ToMap()
		resp["reviewId"] = review.ID
		resp["displayName"] = review.DisplayClientName()
		if review.IsAnonymous {
			delete(resp, "clientName")
			delete(resp, "clientId")
		}
		out = append(out, resp)
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// ReportReview flags a review for moderation.
func ReportReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := db.UpdateDocument(ctx, db.ReviewsCollection, ps.ByName("id"), map[string]any{
		"isReported":      true,
		"moderationNotes": input.Reason,
		"updatedAt":       time.Now(),
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to report review")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Review reported", nil)
}
