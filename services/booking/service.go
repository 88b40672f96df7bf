package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "homely/database/repository/booking"
	providerRepo "homely/database/repository/provider"
	serviceRepo "homely/database/repository/service"
	userRepo "homely/database/repository/user"
	"homely/events"
	"homely/models"
	"homely/realtime"
	"homely/services/notification"
	"homely/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReminderScheduler queues a pre-appointment reminder push for one party.
type ReminderScheduler interface {
	Schedule(bookingID, userID, title, body string, fireAt time.Time) error
}

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	Bookings     bookingRepo.BookingRepository
	Services     serviceRepo.ServiceRepository
	Providers    providerRepo.ProviderRepository
	Users        userRepo.UserRepository
	Notification notification.NotificationService
	Hub          realtime.Publisher
	Events       events.Publisher
	Reminders    ReminderScheduler
}

// CreateBooking opens a pending booking for the customer.
func (s *DefaultBookingService) CreateBooking(customerID string, input CreateRequest) (*models.Booking, error) {
	svc, err := s.Services.GetByID(input.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve service: %w", err)
	}
	if svc == nil || !svc.Active {
		return nil, ErrUnknownService
	}

	units := input.Units
	if units <= 0 {
		units = 1
	}

	b := &models.Booking{
		ID:            uuid.NewString(),
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		CustomerID:    customerID,
		Status:        models.BookingPending,
		ScheduledTime: input.ScheduledTime,
		Address:       input.Address,
		Notes:         input.Notes,
		TotalPrice:    svc.BasePrice * float64(units),
	}
	if err := s.Bookings.Create(b); err != nil {
		return nil, err
	}

	s.Hub.Emit(customerID, realtime.EventBookingStatusUpdate, b)
	s.Hub.Emit(customerID, realtime.EventAppointmentUpdated, b)
	s.Hub.EmitAdmins(realtime.EventAppointmentUpdated, b)
	s.publish(events.TypeBookingCreated, b)
	s.pushStats()
	return b, nil
}

// AssignProvider moves a pending booking to assigned and notifies the provider.
func (s *DefaultBookingService) AssignProvider(bookingID, providerID string) (*models.Booking, error) {
	b, err := s.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}

	prov, err := s.Providers.GetByID(providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provider: %w", err)
	}
	if prov == nil {
		return nil, ErrUnknownProvider
	}
	if !offersService(prov, b.ServiceID) {
		return nil, ErrProviderMismatch
	}

	b.ProviderID = providerID
	if err := s.transition(b, models.BookingAssigned); err != nil {
		return nil, err
	}

	s.Hub.Emit(providerID, realtime.EventNewBookingAssigned, b)
	if _, err := s.Notification.Record(context.Background(), providerID, "booking_assigned",
		fmt.Sprintf("New %s booking for %s", b.ServiceName, b.ScheduledTime.Format("Jan 2, 15:04")),
		map[string]any{"bookingId": b.ID}); err != nil {
		utils.GetLogger().Warn("booking: failed to record assignment notification", zap.Error(err))
	}
	s.scheduleReminders(b)
	return b, nil
}

// scheduleReminders queues a reminder for both parties an hour before the
// appointment. Skipped when the slot is already too close.
func (s *DefaultBookingService) scheduleReminders(b *models.Booking) {
	if s.Reminders == nil {
		return
	}
	fireAt := b.ScheduledTime.Add(-time.Hour)
	if !fireAt.After(time.Now()) {
		return
	}
	body := fmt.Sprintf("%s at %s", b.ServiceName, b.ScheduledTime.Format("Jan 2, 15:04"))
	for _, userID := range []string{b.CustomerID, b.ProviderID} {
		if userID == "" {
			continue
		}
		if err := s.Reminders.Schedule(b.ID, userID, "Upcoming appointment", body, fireAt); err != nil {
			utils.GetLogger().Warn("booking: failed to schedule reminder", zap.Error(err))
		}
	}
}

// AcceptBooking moves an assigned booking to in-progress. Provider only.
func (s *DefaultBookingService) AcceptBooking(bookingID, providerID string) (*models.Booking, error) {
	return s.providerTransition(bookingID, providerID, models.BookingInProgress)
}

// RejectBooking moves an assigned booking to rejected. Provider only.
func (s *DefaultBookingService) RejectBooking(bookingID, providerID string) (*models.Booking, error) {
	return s.providerTransition(bookingID, providerID, models.BookingRejected)
}

// CompleteBooking moves an in-progress booking to completed. Provider only.
func (s *DefaultBookingService) CompleteBooking(bookingID, providerID string) (*models.Booking, error) {
	return s.providerTransition(bookingID, providerID, models.BookingCompleted)
}

func (s *DefaultBookingService) providerTransition(bookingID, providerID, to string) (*models.Booking, error) {
	b, err := s.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if b.ProviderID != providerID {
		return nil, ErrNotYours
	}
	if err := s.transition(b, to); err != nil {
		return nil, err
	}
	return b, nil
}

// CancelBooking cancels a pending or assigned booking. Customer only.
func (s *DefaultBookingService) CancelBooking(bookingID, customerID string) (*models.Booking, error) {
	b, err := s.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrNotYours
	}
	if err := s.transition(b, models.BookingCancelled); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBooking removes a booking entirely. Admin only.
func (s *DefaultBookingService) DeleteBooking(bookingID string) error {
	b, err := s.GetBooking(bookingID)
	if err != nil {
		return err
	}
	if err := s.Bookings.Delete(bookingID); err != nil {
		return err
	}

	payload := map[string]string{"id": bookingID}
	s.Hub.Emit(b.CustomerID, realtime.EventAppointmentDeleted, payload)
	if b.ProviderID != "" {
		s.Hub.Emit(b.ProviderID, realtime.EventAppointmentDeleted, payload)
	}
	s.Hub.EmitAdmins(realtime.EventAppointmentDeleted, payload)
	s.publish(events.TypeBookingDeleted, payload)
	s.pushStats()
	return nil
}

// GetBooking retrieves one booking.
func (s *DefaultBookingService) GetBooking(id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// ListForCustomer returns a customer's bookings.
func (s *DefaultBookingService) ListForCustomer(customerID string) ([]models.Booking, error) {
	return s.Bookings.GetByCustomer(customerID)
}

// ListForProvider returns a provider's bookings.
func (s *DefaultBookingService) ListForProvider(providerID string) ([]models.Booking, error) {
	return s.Bookings.GetByProvider(providerID)
}

// ListAll returns every booking. Admin only.
func (s *DefaultBookingService) ListAll() ([]models.Booking, error) {
	return s.Bookings.GetAll()
}

// transition validates the status change against the table, persists it and pushes
// bookingStatusUpdate to both parties.
func (s *DefaultBookingService) transition(b *models.Booking, to string) error {
	if !CanTransition(b.Status, to) {
		return InvalidTransitionError{From: b.Status, To: to}
	}
	from := b.Status
	b.Status = to
	if err := s.Bookings.Update(b); err != nil {
		b.Status = from
		return err
	}

	s.Hub.Emit(b.CustomerID, realtime.EventBookingStatusUpdate, b)
	s.Hub.Emit(b.CustomerID, realtime.EventAppointmentUpdated, b)
	if b.ProviderID != "" {
		s.Hub.Emit(b.ProviderID, realtime.EventBookingStatusUpdate, b)
		s.Hub.Emit(b.ProviderID, realtime.EventAppointmentUpdated, b)
	}
	s.Hub.EmitAdmins(realtime.EventAppointmentUpdated, b)
	s.publish(events.TypeBookingTransition, map[string]any{
		"bookingId": b.ID,
		"from":      from,
		"to":        to,
	})
	s.pushStats()
	return nil
}

func offersService(prov *models.Provider, serviceID string) bool {
	for _, id := range prov.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

func (s *DefaultBookingService) publish(eventType string, data any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(context.Background(), eventType, data); err != nil {
		utils.GetLogger().Warn("booking: integration publish failed",
			zap.String("type", eventType), zap.Error(err))
	}
}
