package handlers

import (
	"errors"
	"net/http"

	"homely/services/booking"
	"homely/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking lifecycle for all three roles.
type BookingHandler struct {
	Bookings booking.BookingService
}

func NewBookingHandler(bookings booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

// bookingError maps service errors to HTTP responses.
func bookingError(c *gin.Context, err error) {
	var invalid booking.InvalidTransitionError
	switch {
	case errors.Is(err, booking.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found", err.Error())
	case errors.Is(err, booking.ErrNotYours):
		utils.JSONError(c, http.StatusForbidden, "Booking does not belong to you", err.Error())
	case errors.Is(err, booking.ErrUnknownService),
		errors.Is(err, booking.ErrUnknownProvider),
		errors.Is(err, booking.ErrProviderMismatch),
		errors.Is(err, booking.ErrFeedbackExists),
		errors.Is(err, booking.ErrNotCompleted):
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking request", err.Error())
	case errors.As(err, &invalid):
		utils.JSONError(c, http.StatusConflict, "Invalid status transition", err.Error())
	default:
		getLogger(c).Error("Booking operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Booking operation failed", "")
	}
}

// CreateBookingHandler opens a new pending booking for the customer.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	customerID, ok := authedID(c, "userID")
	if !ok {
		return
	}

	var input booking.CreateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	b, err := h.Bookings.CreateBooking(customerID, input)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListMyBookingsHandler returns the customer's bookings.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	customerID, ok := authedID(c, "userID")
	if !ok {
		return
	}

	bookings, err := h.Bookings.ListForCustomer(customerID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListProviderBookingsHandler returns bookings assigned to the provider.
func (h *BookingHandler) ListProviderBookingsHandler(c *gin.Context) {
	providerID, ok := authedID(c, "providerID")
	if !ok {
		return
	}

	bookings, err := h.Bookings.ListForProvider(providerID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingHandler returns one booking the customer owns.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	customerID, ok := authedID(c, "userID")
	if !ok {
		return
	}

	b, err := h.Bookings.GetBooking(c.Param("id"))
	if err != nil {
		bookingError(c, err)
		return
	}
	if b == nil || b.CustomerID != customerID {
		utils.JSONError(c, http.StatusNotFound, "Booking not found", booking.ErrNotFound.Error())
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler cancels the customer's own booking.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	customerID, ok := authedID(c, "userID")
	if !ok {
		return
	}

	b, err := h.Bookings.CancelBooking(c.Param("id"), customerID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// AssignProviderHandler assigns a provider to a pending booking (admin only).
func (h *BookingHandler) AssignProviderHandler(c *gin.Context) {
	var req struct {
		ProviderID string `json:"providerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	b, err := h.Bookings.AssignProvider(c.Param("id"), req.ProviderID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// AcceptBookingHandler moves an assigned booking to in-progress.
func (h *BookingHandler) AcceptBookingHandler(c *gin.Context) {
	providerID, ok := authedID(c, "providerID")
	if !ok {
		return
	}

	b, err := h.Bookings.AcceptBooking(c.Param("id"), providerID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RejectBookingHandler rejects an assigned booking.
func (h *BookingHandler) RejectBookingHandler(c *gin.Context) {
	providerID, ok := authedID(c, "providerID")
	if !ok {
		return
	}

	b, err := h.Bookings.RejectBooking(c.Param("id"), providerID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CompleteBookingHandler marks an in-progress booking completed.
func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	providerID, ok := authedID(c, "providerID")
	if !ok {
		return
	}

	b, err := h.Bookings.CompleteBooking(c.Param("id"), providerID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBookingHandler removes a booking record entirely (admin only).
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	if err := h.Bookings.DeleteBooking(c.Param("id")); err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}

// SubmitFeedbackHandler records the customer's rating on a completed booking.
func (h *BookingHandler) SubmitFeedbackHandler(c *gin.Context) {
	customerID, ok := authedID(c, "userID")
	if !ok {
		return
	}

	var input booking.FeedbackRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	b, err := h.Bookings.SubmitFeedback(c.Param("id"), customerID, input)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
