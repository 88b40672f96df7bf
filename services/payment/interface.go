package payment

import (
	"homely/models"
)

// PaymentService wraps Stripe for booking charges and provider subscriptions.
// Card collection happens client-side against the returned client secret; the
// server only creates intents and reacts to confirmations.
type PaymentService interface {
	CreateBookingIntent(customerID, bookingID string) (*models.PaymentIntentResponse, error)
	ConfirmBookingPayment(customerID, bookingID, intentID string) (*models.Booking, error)
	CreateSubscriptionIntent(providerID, plan string) (*models.PaymentIntentResponse, error)
	ConfirmSubscription(providerID, plan, intentID string) (*models.Subscription, error)
}
