package events

import "time"

// Integration event types, versioned so downstream consumers can evolve safely.
const (
	TypeBookingCreated     = "booking.created.v1"
	TypeBookingTransition  = "booking.transitioned.v1"
	TypeBookingDeleted     = "booking.deleted.v1"
	TypeUserChanged        = "user.changed.v1"
	TypeUserDeleted        = "user.deleted.v1"
	TypeServiceChanged     = "service.changed.v1"
	TypeFeedbackSubmitted  = "feedback.submitted.v1"
	TypeSubscriptionChange = "subscription.changed.v1"
)

// Meta identifies one published event.
type Meta struct {
	ID            string    `json:"id"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Type          string    `json:"type"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Envelope is the versioned wrapper every integration event travels in.
type Envelope struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data"`
}
