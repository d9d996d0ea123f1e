package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/smtp"
	"os"
	"strings"
	"time"

	"mestero/db"
	"mestero/rdx"
	"mestero/utils"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = 30 * time.Minute

// requestPasswordResetHandler always answers 200 so the response never
// reveals whether the address has an account.
func requestPasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" {
		http.Error(w, "Email is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var stored bson.M
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&stored)
	if err == nil {
		userID, _ := stored["_id"].(string)
		token := utils.GenerateRandomString(40)
		if err := rdx.SetWithExpiry("pwdreset:"+token, userID, resetTokenTTL); err != nil {
			log.Printf("Failed to store reset token: %v", err)
		} else if err := sendResetEmail(input.Email, token); err != nil {
			log.Printf("Failed to send reset email to %s: %v", input.Email, err)
		}
	}

	utils.SendResponse(w, http.StatusOK, nil, "If the account exists, a reset email has been sent", nil)
}

func confirmPasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Token == "" || len(input.NewPassword) < 6 {
		http.Error(w, "Token and a password of at least 6 characters are required", http.StatusBadRequest)
		return
	}

	userID, err := rdx.Get("pwdreset:" + input.Token)
	if err != nil || userID == "" {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"password": string(hashedPassword), "updatedAt": time.Now()}},
	)
	if err != nil {
		http.Error(w, "Failed to reset password", http.StatusInternalServerError)
		return
	}

	if err := rdx.Del("pwdreset:" + input.Token); err != nil {
		log.Printf("Failed to delete reset token: %v", err)
	}

	utils.SendResponse(w, http.StatusOK, nil, "Password updated", nil)
}

func sendResetEmail(toEmail, token string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Printf("SMTP not configured, reset token for %s: %s", toEmail, token)
		return nil
	}
	port := os.Getenv("SMTP_PORT")
	from := os.Getenv("SMTP_FROM")
	pass := os.Getenv("SMTP_PASSWORD")

	msg := []byte("Subject: Password Reset\n\nYour reset code is: " + token)
	auth := smtp.PlainAuth("", from, pass, host)
	return smtp.SendMail(host+":"+port, auth, from, []string{toEmail}, msg)
}
