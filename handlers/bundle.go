package handlers

import (
	providerRepoPkg "homely/database/repository/provider"
	userRepoPkg "homely/database/repository/user"
)

// HandlerBundle groups all endpoint handlers plus the repositories the auth
// middleware needs.
type HandlerBundle struct {
	UserRepo     userRepoPkg.UserRepository
	ProviderRepo providerRepoPkg.ProviderRepository

	Auth          *AuthHandler
	Users         *UserHandler
	Providers     *ProviderHandler
	Services      *ServiceHandler
	Bookings      *BookingHandler
	Chat          *ChatHandler
	Notifications *NotificationHandler
	Admin         *AdminHandler
	Payments      *PaymentHandler
	Realtime      *RealtimeHandler
}
