package auth

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	registerHandler(w, r)
}
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	loginHandler(w, r)
}
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logoutHandler(w, r)
}
func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	refreshTokenHandler(w, r)
}
func DeleteAccount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	deleteAccountHandler(w, r)
}
func RequestPasswordReset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestPasswordResetHandler(w, r)
}
func ConfirmPasswordReset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	confirmPasswordResetHandler(w, r)
}
