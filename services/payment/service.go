package payment

import (
	"errors"
	"fmt"
	"time"

	bookingRepo "homely/database/repository/booking"
	"homely/models"
	"homely/realtime"
	"homely/services/provider"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotYours        = errors.New("booking does not belong to this customer")
	ErrUnknownPlan     = errors.New("unknown subscription plan")
	ErrNotSucceeded    = errors.New("payment intent has not succeeded")
)

// planPrices are subscription charges in the minor currency unit.
var planPrices = map[string]int64{
	"monthly": 2999,
	"yearly":  29999,
}

const currency = string(stripe.CurrencyUSD)

// DefaultPaymentService is the production implementation of PaymentService.
type DefaultPaymentService struct {
	Bookings  bookingRepo.BookingRepository
	Providers provider.ProviderService
	Hub       realtime.Publisher
}

// CreateBookingIntent opens a PaymentIntent covering the booking's total price.
func (s *DefaultPaymentService) CreateBookingIntent(customerID, bookingID string) (*models.PaymentIntentResponse, error) {
	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.CustomerID != customerID {
		return nil, ErrNotYours
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(booking.TotalPrice * 100)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("booking_id", bookingID)
	params.AddMetadata("customer_id", customerID)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &models.PaymentIntentResponse{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// CreateSubscriptionIntent opens a PaymentIntent for a provider plan purchase.
func (s *DefaultPaymentService) CreateSubscriptionIntent(providerID, plan string) (*models.PaymentIntentResponse, error) {
	price, ok := planPrices[plan]
	if !ok {
		return nil, ErrUnknownPlan
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(price),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("provider_id", providerID)
	params.AddMetadata("plan", plan)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &models.PaymentIntentResponse{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// ConfirmBookingPayment verifies the intent succeeded and marks the booking paid.
func (s *DefaultPaymentService) ConfirmBookingPayment(customerID, bookingID, intentID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.CustomerID != customerID {
		return nil, ErrNotYours
	}

	intent, err := paymentintent.Get(intentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, ErrNotSucceeded
	}
	if intent.Metadata["booking_id"] != bookingID {
		return nil, ErrNotYours
	}

	booking.Paid = true
	booking.UpdatedAt = time.Now()
	if err := s.Bookings.Update(booking); err != nil {
		return nil, fmt.Errorf("failed to mark booking paid: %w", err)
	}
	if s.Hub != nil {
		s.Hub.Emit(booking.CustomerID, realtime.EventAppointmentUpdated, booking)
		s.Hub.EmitAdmins(realtime.EventAppointmentUpdated, booking)
	}
	return booking, nil
}

// ConfirmSubscription verifies the intent succeeded and activates the plan.
func (s *DefaultPaymentService) ConfirmSubscription(providerID, plan, intentID string) (*models.Subscription, error) {
	intent, err := paymentintent.Get(intentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, ErrNotSucceeded
	}
	if intent.Metadata["provider_id"] != providerID {
		return nil, ErrNotYours
	}
	return s.Providers.ActivateSubscription(providerID, plan)
}
