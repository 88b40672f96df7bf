package booking

import (
	"fmt"
	"time"

	"homely/events"
	"homely/models"
	"homely/realtime"
	"homely/utils"

	"go.uber.org/zap"
)

// SubmitFeedback attaches a rating to a completed booking, folds it into the
// provider's average and pushes feedbackSubmitted / feedbacksUpdated.
func (s *DefaultBookingService) SubmitFeedback(bookingID, customerID string, input FeedbackRequest) (*models.Booking, error) {
	b, err := s.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrNotYours
	}
	if b.Status != models.BookingCompleted {
		return nil, ErrNotCompleted
	}
	if b.Feedback != nil {
		return nil, ErrFeedbackExists
	}

	b.Feedback = &models.Feedback{
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}
	if err := s.Bookings.Update(b); err != nil {
		return nil, fmt.Errorf("failed to store feedback: %w", err)
	}

	if err := s.applyProviderRating(b.ProviderID, input.Rating); err != nil {
		utils.GetLogger().Warn("booking: failed to update provider rating", zap.Error(err))
	}

	s.Hub.Emit(b.ProviderID, realtime.EventFeedbackSubmitted, b)
	s.Hub.EmitAdmins(realtime.EventFeedbacksUpdated, b)
	s.publish(events.TypeFeedbackSubmitted, map[string]any{
		"bookingId":  b.ID,
		"providerId": b.ProviderID,
		"rating":     input.Rating,
	})
	s.pushStats()
	return b, nil
}

// applyProviderRating folds a rating into the provider's running average.
func (s *DefaultBookingService) applyProviderRating(providerID string, rating int) error {
	prov, err := s.Providers.GetByID(providerID)
	if err != nil || prov == nil {
		return fmt.Errorf("failed to resolve provider %s: %w", providerID, err)
	}
	total := prov.Rating*float64(prov.RatingCount) + float64(rating)
	prov.RatingCount++
	prov.Rating = total / float64(prov.RatingCount)
	return s.Providers.Update(prov)
}
