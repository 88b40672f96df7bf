package models

import "time"

// Booking statuses. Status advances one way through the transition table owned by
// the booking service; clients only mirror the latest pushed value.
const (
	BookingPending    = "pending"
	BookingAssigned   = "assigned"
	BookingInProgress = "in-progress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"
	BookingRejected   = "rejected"
)

// Booking represents a service appointment between a customer and a provider.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	ServiceID     string    `bson:"service_id" json:"serviceId"`
	ServiceName   string    `bson:"service_name" json:"serviceName"`
	CustomerID    string    `bson:"customer_id" json:"customerId"`
	ProviderID    string    `bson:"provider_id,omitempty" json:"providerId,omitempty"`
	Status        string    `bson:"status" json:"status"`
	ScheduledTime time.Time `bson:"scheduled_time" json:"scheduledTime"`
	Address       string    `bson:"address" json:"address"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	TotalPrice    float64   `bson:"total_price" json:"totalPrice"`
	Paid          bool      `bson:"paid" json:"paid"`
	Feedback      *Feedback `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// Feedback is a customer's rating of a completed booking.
type Feedback struct {
	Rating    int       `bson:"rating" json:"rating"` // 1..5
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Terminal reports whether no further status transition is possible.
func (b *Booking) Terminal() bool {
	switch b.Status {
	case BookingCompleted, BookingCancelled, BookingRejected:
		return true
	}
	return false
}
