package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mestero/db"
	"mestero/models"
	"mestero/utils"

	"github.com/julienschmidt/httprouter"
)

// GetMyProfile returns the authenticated user's own profile.
func GetMyProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	respondWithProfile(w, r, userID, true)
}

// GetUserProfile returns a public view of any user's profile.
func GetUserProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	respondWithProfile(w, r, ps.ByName("id"), false)
}

func respondWithProfile(w http.ResponseWriter, r *http.Request, userID string, private bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	doc, err := db.GetDocument(ctx, db.UserCollection, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	user := models.UserFromMap(doc)
	resp := map[string]any{
		"userId":          user.ID,
		"firstName":       user.FirstName,
		"lastName":        user.LastName,
		"displayName":     user.DisplayName(),
		"userType":        string(user.UserType),
		"location":        user.Location,
		"website":         user.Website,
		"skills":          user.Skills,
		"experienceLevel": user.ExperienceLevel,
		"rating":          user.Rating(),
		"reviewCount":     user.ReviewCount,
	}
	if private {
		resp["email"] = user.Email
		resp["phoneNumber"] = user.PhoneNumber
		resp["favorites"] = user.Favorites
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// allowed profile update fields; everything else in the payload is dropped
var editableProfileFields = map[string]bool{
	"firstName":       true,
	"lastName":        true,
	"phoneNumber":     true,
	"location":        true,
	"website":         true,
	"skills":          true,
	"experienceLevel": true,
}

// UpdateProfile applies a partial field map to the caller's profile.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input map[string]any
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update := map[string]any{}
	for field, value := range input {
		if editableProfileFields[field] {
			update[field] = value
		}
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No editable fields in payload")
		return
	}
	update["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := db.UpdateDocument(ctx, db.UserCollection, userID, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Profile updated", nil)
}
