package booking

import "homely/models"

// transitions is the authoritative booking status table. Clients never compute
// transitions; they mirror whatever the server pushes.
var transitions = map[string][]string{
	models.BookingPending:    {models.BookingAssigned, models.BookingCancelled},
	models.BookingAssigned:   {models.BookingInProgress, models.BookingRejected, models.BookingCancelled},
	models.BookingInProgress: {models.BookingCompleted},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
