package routes

import (
	"net/http"
	"time"

	"homely/handlers"
	"homely/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and OTP endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterUserHandler)
		api.POST("/login", hb.Auth.AuthenticateUserHandler)
		api.POST("/verify-otp", hb.Auth.VerifyUserOTPHandler)
		api.POST("/resend-otp", hb.Auth.ResendUserOTPHandler)

		api.POST("/provider/register", hb.Auth.RegisterProviderHandler)
		api.POST("/provider/login", hb.Auth.AuthenticateProviderHandler)
		api.POST("/provider/verify-otp", hb.Auth.VerifyProviderOTPHandler)
		api.POST("/provider/resend-otp", hb.Auth.ResendProviderOTPHandler)
	}
}

// RegisterUserRoutes registers the authenticated customer's account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", hb.Users.GetProfileHandler)
		api.PUT("/me", hb.Users.UpdateProfileHandler)
		api.DELETE("/me", hb.Users.DeleteAccountHandler)
		api.POST("/logout", hb.Users.LogoutHandler)
		api.PUT("/fcm-token", hb.Users.UpdateFCMTokenHandler)
	}
}

// RegisterProviderRoutes registers provider account and directory endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		// Public directory lookup.
		api.GET("/by-service/:serviceId", hb.Providers.ListProvidersByServiceHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		protected.GET("/me", hb.Providers.GetProviderProfileHandler)
		protected.PUT("/me", hb.Providers.UpdateProviderHandler)
		protected.DELETE("/me", hb.Providers.DeleteProviderHandler)
		protected.POST("/logout", hb.Providers.LogoutProviderHandler)
		protected.PUT("/fcm-token", hb.Providers.UpdateProviderFCMTokenHandler)
		protected.GET("/bookings", hb.Bookings.ListProviderBookingsHandler)
	}
}

// RegisterServiceRoutes registers the catalog: public reads, admin writes.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.Services.ListServicesHandler)
		api.GET("/:id", hb.Services.GetServiceHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware(hb.UserRepo))
		admin.POST("", hb.Services.CreateServiceHandler)
		admin.PUT("/:id", hb.Services.UpdateServiceHandler)
		admin.DELETE("/:id", hb.Services.DeleteServiceHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle per role.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		customer := api.Group("")
		customer.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		customer.POST("", hb.Bookings.CreateBookingHandler)
		customer.GET("", hb.Bookings.ListMyBookingsHandler)
		customer.GET("/:id", hb.Bookings.GetBookingHandler)
		customer.PUT("/:id/cancel", hb.Bookings.CancelBookingHandler)
		customer.POST("/:id/feedback", hb.Bookings.SubmitFeedbackHandler)

		prov := api.Group("")
		prov.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		prov.PUT("/:id/accept", hb.Bookings.AcceptBookingHandler)
		prov.PUT("/:id/reject", hb.Bookings.RejectBookingHandler)
		prov.PUT("/:id/complete", hb.Bookings.CompleteBookingHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware(hb.UserRepo))
		admin.PUT("/:id/assign", hb.Bookings.AssignProviderHandler)
		admin.DELETE("/:id", hb.Bookings.DeleteBookingHandler)
	}
}

// RegisterChatRoutes registers the support conversation endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		customer := api.Group("")
		customer.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		customer.GET("/conversation", hb.Chat.GetConversationHandler)
		customer.POST("/messages", hb.Chat.SendMessageHandler)
		customer.POST("/conversations/:id/typing", hb.Chat.TypingHandler)
	}
}

// RegisterNotificationRoutes registers the per-account notification feed.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	user := r.Group("/api/notifications")
	{
		user.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		user.GET("", hb.Notifications.RecentHandler)
		user.PUT("/:id/read", hb.Notifications.MarkReadHandler)
		user.DELETE("", hb.Notifications.ClearHandler)
	}

	prov := r.Group("/api/provider-notifications")
	{
		prov.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		prov.GET("", hb.Notifications.RecentHandler)
		prov.PUT("/:id/read", hb.Notifications.MarkReadHandler)
		prov.DELETE("", hb.Notifications.ClearHandler)
	}
}

// RegisterPaymentRoutes registers Stripe intent and subscription endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		customer := api.Group("")
		customer.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		customer.POST("/booking-intent", hb.Payments.CreateBookingIntentHandler)
		customer.POST("/booking-confirm", hb.Payments.ConfirmBookingPaymentHandler)
	}

	subs := r.Group("/api/subscriptions")
	{
		subs.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		subs.POST("/intent", hb.Payments.CreateSubscriptionIntentHandler)
		subs.POST("/confirm", hb.Payments.ConfirmSubscriptionHandler)
		subs.POST("/activate", hb.Providers.ActivateSubscriptionHandler)
	}
}

// RegisterAdminRoutes registers the admin dashboard endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthAdminMiddleware(hb.UserRepo))
		api.GET("/users", hb.Admin.GetAllUsersHandler)
		api.PUT("/users/:id", hb.Admin.UpdateUserHandler)
		api.DELETE("/users/:id", hb.Admin.DeleteUserHandler)
		api.GET("/providers", hb.Admin.GetAllProvidersHandler)
		api.GET("/bookings", hb.Admin.ListAllBookingsHandler)
		api.GET("/stats", hb.Admin.StatsHandler)

		api.GET("/conversations", hb.Chat.ListOpenConversationsHandler)
		api.POST("/conversations/:id/reply", hb.Chat.AdminReplyHandler)
		api.POST("/conversations/:id/typing", hb.Chat.AdminTypingHandler)
		api.PUT("/conversations/:id/release", hb.Chat.ReleaseConversationHandler)
		api.PUT("/conversations/:id/close", hb.Chat.CloseConversationHandler)
	}
}

// RegisterRealtimeRoute registers the websocket endpoint.
func RegisterRealtimeRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/ws", hb.Realtime.ServeWS)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Homely"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterRealtimeRoute(r, hb)
	RegisterHealthRoute(r)
}
