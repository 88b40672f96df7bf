package provider

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrNotFound           = errors.New("provider not found")
	ErrUnknownPlan        = errors.New("unknown subscription plan")
)

// OTPPendingError signals that authentication requires OTP verification first.
type OTPPendingError struct {
	Email string
}

func (e OTPPendingError) Error() string {
	return "account not verified, an OTP has been sent"
}
