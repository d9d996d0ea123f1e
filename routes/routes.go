package routes

import (
	"net/http"

	"mestero/auth"
	"mestero/bookings"
	"mestero/chats"
	"mestero/listings"
	"mestero/middleware"
	"mestero/profile"
	"mestero/ratelim"
	"mestero/reviews"
	"mestero/search"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/listingpic/*filepath", http.Dir("static/listingpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
	router.DELETE("/api/auth/account", middleware.Authenticate(auth.DeleteAccount))
	router.POST("/api/auth/password-reset", rl.Limit(auth.RequestPasswordReset))
	router.POST("/api/auth/password-reset/confirm", rl.Limit(auth.ConfirmPasswordReset))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetMyProfile))
	router.PUT("/api/profile", middleware.Authenticate(profile.UpdateProfile))
	router.GET("/api/users/:id", profile.GetUserProfile)
}

func AddListingRoutes(router *httprouter.Router) {
	router.POST("/api/listings", middleware.Authenticate(listings.CreateListing))
	router.GET("/api/listings/newest", listings.GetNewestListings)
	router.GET("/api/listings/popular", listings.GetMostViewedListings)
	router.GET("/api/listings/mine", middleware.Authenticate(listings.GetMyListings))
	router.GET("/api/listings/category/:category", listings.GetListingsByCategory)
	router.GET("/api/listings/listing/:id", middleware.OptionalAuth(listings.GetListing))
	router.PUT("/api/listings/listing/:id", middleware.Authenticate(listings.UpdateListing))
	router.DELETE("/api/listings/listing/:id", middleware.Authenticate(listings.DeleteListing))
	router.POST("/api/listings/listing/:id/activate", middleware.Authenticate(listings.SetListingActive(true)))
	router.POST("/api/listings/listing/:id/deactivate", middleware.Authenticate(listings.SetListingActive(false)))
	router.POST("/api/listings/listing/:id/images", middleware.Authenticate(listings.UploadListingImage))

	router.GET("/api/categories", listings.GetCategories)

	router.POST("/api/favorites/:id", middleware.Authenticate(listings.AddFavorite))
	router.DELETE("/api/favorites/:id", middleware.Authenticate(listings.RemoveFavorite))
	router.GET("/api/favorites", middleware.Authenticate(listings.GetFavorites))
}

func AddSearchRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/search", rl.Limit(search.HandleSearch))
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/bookings", rl.Limit(middleware.Authenticate(bookings.CreateBooking)))
	router.GET("/api/bookings/client", middleware.Authenticate(bookings.GetClientBookings))
	router.GET("/api/bookings/provider", middleware.Authenticate(bookings.GetProviderBookings))
	router.POST("/api/bookings/booking/:id/respond", middleware.Authenticate(bookings.RespondToBooking))
	router.POST("/api/bookings/booking/:id/complete", middleware.Authenticate(bookings.CompleteBooking))
	router.POST("/api/bookings/booking/:id/hide", middleware.Authenticate(bookings.HideBooking))
	router.GET("/api/bookings/booking/:id/print", middleware.Authenticate(bookings.PrintBookingConfirmation))
}

func AddReviewRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/reviews", rl.Limit(middleware.Authenticate(reviews.SubmitReview)))
	router.GET("/api/reviews/listing/:id", reviews.GetListingReviews)
	router.GET("/api/reviews/provider/:id", reviews.GetProviderReviews)
	router.POST("/api/reviews/review/:id/report", middleware.Authenticate(reviews.ReportReview))
}

func AddChatRoutes(router *httprouter.Router, hub *chats.Hub) {
	router.GET("/api/chats", middleware.Authenticate(chats.ListConversations))
	router.POST("/api/chats/with/:userId", middleware.Authenticate(chats.GetOrCreateConversation))
	router.GET("/api/chats/chat/:id/messages", middleware.Authenticate(chats.GetMessages))
	router.POST("/api/chats/chat/:id/messages", middleware.Authenticate(chats.SendMessage))
	router.POST("/api/chats/chat/:id/read", middleware.Authenticate(chats.MarkConversationRead))
	router.GET("/ws/chats/:id", chats.WebSocketHandler(hub))
}
