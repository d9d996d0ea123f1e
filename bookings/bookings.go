package bookings

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

// CreateBooking files a request against a listing. Self-booking is rejected,
// as is a second request while one is still pending for the same pair.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	clientID := utils.GetUserIDFromRequest(r)
	if clientID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		ListingID string `json:"listingId"`
		Notes     string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ListingID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	listingDoc, err := db.GetDocument(ctx, db.ListingsCollection, input.ListingID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}
	listing := models.ListingFromMap(listingDoc)

	if listing.ProviderID == clientID {
		utils.RespondWithError(w, http.StatusBadRequest, "You cannot book your own listing")
		return
	}
	if !listing.Active {
		utils.RespondWithError(w, http.StatusBadRequest, "Listing is not available")
		return
	}

	// One open request per client and listing at a time.
	err = db.BookingsCollection.FindOne(ctx, bson.M{
		"listingId": input.ListingID,
		"clientId":  clientID,
		"status":    string(models.StatusPending),
	}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "You already have a pending request for this listing")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check existing requests")
		return
	}

	clientDoc, err := db.GetDocument(ctx, db.UserCollection, clientID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	client := models.UserFromMap(clientDoc)

	provider := models.User{ID: listing.ProviderID}
	if providerDoc := db.GetDocumentOrNil(ctx, db.UserCollection, listing.ProviderID); providerDoc != nil {
		provider = models.UserFromMap(providerDoc)
	}

	now := time.Now()
	booking := models.BookingRequest{
		ListingID:     listing.ID,
		ListingTitle:  listing.Title,
		ProviderID:    listing.ProviderID,
		ProviderName:  provider.DisplayName(),
		ProviderEmail: provider.Email,
		ProviderPhone: provider.PhoneNumber,
		ClientID:      client.ID,
		ClientName:    client.DisplayName(),
		ClientEmail:   client.Email,
		ClientPhone:   client.PhoneNumber,
		Status:        models.StatusPending,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	bookingID := utils.GetUUID()
	if err := db.AddDocument(ctx, db.BookingsCollection, bookingID, booking.ToMap()); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking request")
		return
	}

	utils.SendResponse(w, http.StatusCreated, map[string]string{"bookingId": bookingID}, "Booking request sent", nil)
}

// GetClientBookings lists the caller's outgoing requests, newest first.
func GetClientBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listBookings(w, r, "clientId", func(b models.BookingRequest) bool { return b.HiddenForClient })
}

// GetProviderBookings lists requests against the caller's listings, newest first.
func GetProviderBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listBookings(w, r, "providerId", func(b models.BookingRequest) bool { return b.HiddenForProvider })
}

func listBookings(w http.ResponseWriter, r *http.Request, partyField string, hidden func(models.BookingRequest) bool) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docs, err := db.QueryDocuments(ctx, db.BookingsCollection, db.QueryParams{
		Filters:        []db.QueryFilter{{Field: partyField, Value: userID, Type: db.EqualTo}},
		OrderBy:        "createdAt",
		OrderDirection: db.Descending,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		booking := models.BookingRequestFromMap(doc)
		if hidden(booking) {
			continue
		}
		out = append(out, bookingResponse(booking))
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// RespondToBooking lets the provider accept or reject a pending request. The
// status guard lives in the update filter, so a stale client loses the race
// instead of overwriting a newer state.
func RespondToBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	bookingID := ps.ByName("id")

	var input struct {
		Accept        bool   `json:"accept"`
		ProviderNotes string `json:"providerNotes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	newStatus := models.StatusRejected
	if input.Accept {
		newStatus = models.StatusAccepted
	}

	set := bson.M{
		"status":    string(newStatus),
		"updatedAt": time.Now(),
	}
	if input.ProviderNotes != "" {
		set["providerNotes"] = input.ProviderNotes
	}

	transitionBooking(w, r, bson.M{
		"_id":        bookingID,
		"providerId": userID,
		"status":     string(models.StatusPending),
	}, set, "Booking is no longer pending")
}

// CompleteBooking marks an accepted request as done. Either party may do it.
func CompleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	bookingID := ps.ByName("id")

	now := time.Now()
	transitionBooking(w, r, bson.M{
		"_id":    bookingID,
		"status": string(models.StatusAccepted),
		"$or": []bson.M{
			{"clientId": userID},
			{"providerId": userID},
		},
	}, bson.M{
		"status":      string(models.StatusCompleted),
		"completedAt": now,
		"updatedAt":   now,
	}, "Booking is not in an accepted state")
}

func transitionBooking(w http.ResponseWriter, r *http.Request, filter, set bson.M, conflictMsg string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.BookingsCollection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update booking")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, conflictMsg)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Booking updated", nil)
}

// HideBooking removes the request from the caller's list without touching the
// other party's view.
func HideBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	bookingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	doc, err := db.GetDocument(ctx, db.BookingsCollection, bookingID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	booking := models.BookingRequestFromMap(doc)

	var flag string
	switch userID {
	case booking.ClientID:
		flag = "hiddenForClient"
	case booking.ProviderID:
		flag = "hiddenForProvider"
	default:
		utils.RespondWithError(w, http.StatusForbidden, "Not your booking")
		return
	}

	if err := db.UpdateDocument(ctx, db.BookingsCollection, bookingID, map[string]any{flag: true}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hide booking")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Booking hidden", nil)
}

func bookingResponse(b models.BookingRequest) map[string]any {
	resp := b.ToMap()
	resp["bookingId"] = b.ID
	resp["statusText"] = b.StatusDisplayText()
	resp["canRespond"] = b.CanBeResponded()
	resp["canComplete"] = b.CanBeCompleted()
	return resp
}
