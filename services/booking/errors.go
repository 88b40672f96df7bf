package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for unknown booking ids.
	ErrNotFound = errors.New("booking not found")
	// ErrNotYours is returned when a caller acts on a booking it is not a party to.
	ErrNotYours = errors.New("booking does not belong to you")
	// ErrUnknownService is returned when booking a service not in the catalog.
	ErrUnknownService = errors.New("unknown service")
	// ErrUnknownProvider is returned when assigning a provider that does not exist.
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrProviderMismatch is returned when the assigned provider does not offer the
	// booked service.
	ErrProviderMismatch = errors.New("provider does not offer this service")
	// ErrFeedbackExists is returned when a booking already has feedback.
	ErrFeedbackExists = errors.New("feedback already submitted")
	// ErrNotCompleted is returned when feedback targets an unfinished booking.
	ErrNotCompleted = errors.New("feedback is only accepted on completed bookings")
)

// InvalidTransitionError reports a rejected status change.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move booking from %q to %q", e.From, e.To)
}
