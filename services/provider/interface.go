package provider

import "homely/models"

// AuthResponse carries the authenticated provider and its session token.
type AuthResponse struct {
	Provider models.PublicProvider `json:"provider"`
	Token    string                `json:"token"`
}

// ProviderService defines account and subscription operations for providers.
type ProviderService interface {
	Register(req RegistrationRequest) (*models.PublicProvider, error)
	Authenticate(email, password string) (*AuthResponse, error)
	VerifyOTP(email, otp string) (*AuthResponse, error)
	ResendOTP(email string) error
	GetProviderByID(id string) (*models.Provider, error)
	GetProvidersByService(serviceID string) ([]models.PublicProvider, error)
	UpdateProvider(id string, update ProfileUpdate) (*models.Provider, error)
	DeleteProvider(id string) error
	RevokeAuthToken(id string) error
	UpdateFCMToken(id, token string) error
	GetAllProviders() ([]models.Provider, error)
	ActivateSubscription(providerID, plan string) (*models.Subscription, error)
}

// RegistrationRequest is the payload accepted by Register.
type RegistrationRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=8"`
	PhoneNumber string   `json:"phoneNumber" binding:"required"`
	ServiceIDs  []string `json:"serviceIds" binding:"required,min=1"`
}

// ProfileUpdate is the set of caller-editable provider fields.
type ProfileUpdate struct {
	Name        string   `json:"name,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	ServiceIDs  []string `json:"serviceIds,omitempty"`
}
