package user

import "errors"

var (
	// ErrInvalidCredentials hides which of email/password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrNotFound is returned for lookups of unknown accounts.
	ErrNotFound = errors.New("user not found")
)

// OTPPendingError signals that authentication requires OTP verification first.
type OTPPendingError struct {
	Email string
}

func (e OTPPendingError) Error() string {
	return "account not verified, an OTP has been sent"
}
