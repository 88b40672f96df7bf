package booking

import (
	"time"

	"homely/models"
)

// BookingService owns the booking lifecycle. Every accepted mutation is pushed to
// both parties' rooms and mirrored on the integration bus.
type BookingService interface {
	CreateBooking(customerID string, input CreateRequest) (*models.Booking, error)
	AssignProvider(bookingID, providerID string) (*models.Booking, error)
	AcceptBooking(bookingID, providerID string) (*models.Booking, error)
	RejectBooking(bookingID, providerID string) (*models.Booking, error)
	CompleteBooking(bookingID, providerID string) (*models.Booking, error)
	CancelBooking(bookingID, customerID string) (*models.Booking, error)
	DeleteBooking(bookingID string) error
	GetBooking(id string) (*models.Booking, error)
	ListForCustomer(customerID string) ([]models.Booking, error)
	ListForProvider(providerID string) ([]models.Booking, error)
	ListAll() ([]models.Booking, error)
	SubmitFeedback(bookingID, customerID string, input FeedbackRequest) (*models.Booking, error)
	Stats() (*models.AdminStats, error)
}

// CreateRequest is the payload accepted by CreateBooking.
type CreateRequest struct {
	ServiceID     string    `json:"serviceId" binding:"required"`
	ScheduledTime time.Time `json:"scheduledTime" binding:"required"`
	Address       string    `json:"address" binding:"required"`
	Units         int       `json:"units"`
	Notes         string    `json:"notes"`
}

// FeedbackRequest is the payload accepted by SubmitFeedback.
type FeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
