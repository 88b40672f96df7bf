package user

import "homely/models"

// AuthResponse carries the authenticated account and its session token.
type AuthResponse struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// UserService defines account operations for customers and admins.
type UserService interface {
	Register(req RegistrationRequest) (*models.PublicUser, error)
	Authenticate(email, password string) (*AuthResponse, error)
	VerifyOTP(email, otp string) (*AuthResponse, error)
	ResendOTP(email string) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(id string, update ProfileUpdate) (*models.User, error)
	DeleteUser(id string) error
	RevokeAuthToken(id string) error
	UpdateFCMToken(id, token string) error
	GetAllUsers() ([]models.User, error)
}

// RegistrationRequest is the payload accepted by Register.
type RegistrationRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// ProfileUpdate is the set of caller-editable profile fields.
type ProfileUpdate struct {
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}
