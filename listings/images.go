package listings

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"mestero/db"
	"mestero/models"
	"mestero/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	listingImageDir   = "./static/listingpic"
	maxListingImages  = 6
	maxUploadBodySize = 10 << 20 // 10 MB
)

// UploadListingImage accepts one multipart image, stores the original plus a
// 300px thumbnail, and appends the URL to the listing's image list.
func UploadListingImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	listingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	doc, err := db.GetDocument(ctx, db.ListingsCollection, listingID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}
	listing := models.ListingFromMap(doc)
	if listing.ProviderID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Not your listing")
		return
	}
	if len(listing.ImageURLs) >= maxListingImages {
		utils.RespondWithError(w, http.StatusBadRequest, "Image limit reached")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodySize)
	if err := r.ParseMultipartForm(maxUploadBodySize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	imageURL, err := processListingImage(file, listingID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to process image")
		return
	}

	_, err = db.ListingsCollection.UpdateOne(ctx,
		bson.M{"_id": listingID},
		bson.M{
			"$push": bson.M{"imageUrls": imageURL},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	utils.SendResponse(w, http.StatusCreated, map[string]string{"imageUrl": imageURL}, "Image uploaded", nil)
}

func processListingImage(src multipart.File, listingID string) (string, error) {
	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	uniqueID := utils.GenerateRandomString(16)
	fileName := uniqueID + ".jpg"

	originalDir := filepath.Join(listingImageDir, listingID)
	thumbDir := filepath.Join(originalDir, "thumb")
	if err := utils.EnsureDir(originalDir); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, filepath.Join(originalDir, fileName)); err != nil {
		return "", fmt.Errorf("failed to save original image: %w", err)
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, fileName)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return "/listingpic/" + listingID + "/" + fileName, nil
}
