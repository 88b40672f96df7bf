package handlers

import (
	"errors"
	"net/http"

	"homely/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves Stripe intent creation and subscription confirmation.
type PaymentHandler struct {
	Payments payment.PaymentService
}

func NewPaymentHandler(payments payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

// CreateBookingIntentHandler opens a PaymentIntent for one of the customer's bookings.
func (h *PaymentHandler) CreateBookingIntentHandler(c *gin.Context) {
	customerID, ok := authedID(c, "userID")
	if !ok {
		return
	}

	var req struct {
		BookingID string `json:"bookingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Payments.CreateBookingIntent(customerID, req.BookingID)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, payment.ErrNotYours):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			getLogger(c).Error("Failed to create payment intent", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ConfirmBookingPaymentHandler acknowledges a succeeded intent and marks the
// booking paid.
func (h *PaymentHandler) ConfirmBookingPaymentHandler(c *gin.Context) {
	customerID, ok := authedID(c, "userID")
	if !ok {
		return
	}

	var req struct {
		BookingID string `json:"bookingId" binding:"required"`
		IntentID  string `json:"intentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	booking, err := h.Payments.ConfirmBookingPayment(customerID, req.BookingID, req.IntentID)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, payment.ErrNotYours):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, payment.ErrNotSucceeded):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			getLogger(c).Error("Failed to confirm booking payment", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm booking payment"})
		}
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CreateSubscriptionIntentHandler opens a PaymentIntent for a provider plan.
func (h *PaymentHandler) CreateSubscriptionIntentHandler(c *gin.Context) {
	providerID, ok := authedID(c, "providerID")
	if !ok {
		return
	}

	var req struct {
		Plan string `json:"plan" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Payments.CreateSubscriptionIntent(providerID, req.Plan)
	if err != nil {
		if errors.Is(err, payment.ErrUnknownPlan) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		getLogger(c).Error("Failed to create subscription intent", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ConfirmSubscriptionHandler activates the plan once the intent succeeded.
func (h *PaymentHandler) ConfirmSubscriptionHandler(c *gin.Context) {
	providerID, ok := authedID(c, "providerID")
	if !ok {
		return
	}

	var req struct {
		Plan     string `json:"plan" binding:"required"`
		IntentID string `json:"intentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	sub, err := h.Payments.ConfirmSubscription(providerID, req.Plan, req.IntentID)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrNotSucceeded):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, payment.ErrNotYours), errors.Is(err, payment.ErrUnknownPlan):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			getLogger(c).Error("Failed to confirm subscription", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm subscription"})
		}
		return
	}
	c.JSON(http.StatusOK, sub)
}
