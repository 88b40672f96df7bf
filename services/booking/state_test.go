package booking

import (
	"testing"

	"homely/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending to assigned", models.BookingPending, models.BookingAssigned, true},
		{"pending to cancelled", models.BookingPending, models.BookingCancelled, true},
		{"pending to in-progress", models.BookingPending, models.BookingInProgress, false},
		{"pending to completed", models.BookingPending, models.BookingCompleted, false},
		{"assigned to in-progress", models.BookingAssigned, models.BookingInProgress, true},
		{"assigned to rejected", models.BookingAssigned, models.BookingRejected, true},
		{"assigned to cancelled", models.BookingAssigned, models.BookingCancelled, true},
		{"assigned to completed", models.BookingAssigned, models.BookingCompleted, false},
		{"in-progress to completed", models.BookingInProgress, models.BookingCompleted, true},
		{"in-progress to cancelled", models.BookingInProgress, models.BookingCancelled, false},
		{"completed is terminal", models.BookingCompleted, models.BookingPending, false},
		{"cancelled is terminal", models.BookingCancelled, models.BookingAssigned, false},
		{"rejected is terminal", models.BookingRejected, models.BookingInProgress, false},
		{"no backwards moves", models.BookingAssigned, models.BookingPending, false},
		{"unknown status", "unknown", models.BookingAssigned, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminal(t *testing.T) {
	for _, status := range []string{models.BookingCompleted, models.BookingCancelled, models.BookingRejected} {
		b := models.Booking{Status: status}
		assert.True(t, b.Terminal(), status)
	}
	for _, status := range []string{models.BookingPending, models.BookingAssigned, models.BookingInProgress} {
		b := models.Booking{Status: status}
		assert.False(t, b.Terminal(), status)
	}
}
