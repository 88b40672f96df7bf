package booking

import (
	"context"
	"testing"
	"time"

	"homely/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) Update(b *models.Booking) error {
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) Delete(id string) error {
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByCustomer(customerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetByProvider(providerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetAll() ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByStatus() (map[string]int64, error) {
	out := make(map[string]int64)
	for _, b := range r.bookings {
		out[b.Status]++
	}
	return out, nil
}

type fakeServiceRepo struct {
	services map[string]*models.Service
}

func (r *fakeServiceRepo) Create(s *models.Service) error          { r.services[s.ID] = s; return nil }
func (r *fakeServiceRepo) Update(s *models.Service) error          { r.services[s.ID] = s; return nil }
func (r *fakeServiceRepo) Delete(id string) error                  { delete(r.services, id); return nil }
func (r *fakeServiceRepo) GetByID(id string) (*models.Service, error) {
	return r.services[id], nil
}
func (r *fakeServiceRepo) GetAll(activeOnly bool) ([]models.Service, error) { return nil, nil }
func (r *fakeServiceRepo) Count() (int64, error)                            { return int64(len(r.services)), nil }

type fakeProviderRepo struct {
	providers map[string]*models.Provider
}

func (r *fakeProviderRepo) Create(p *models.Provider) error { r.providers[p.ID] = p; return nil }
func (r *fakeProviderRepo) Update(p *models.Provider) error { r.providers[p.ID] = p; return nil }
func (r *fakeProviderRepo) UpdateSetDocument(id string, doc bson.M) error { return nil }
func (r *fakeProviderRepo) Delete(id string) error { delete(r.providers, id); return nil }
func (r *fakeProviderRepo) GetByID(id string) (*models.Provider, error) {
	return r.providers[id], nil
}
func (r *fakeProviderRepo) GetByEmail(email string) (*models.Provider, error)     { return nil, nil }
func (r *fakeProviderRepo) GetByService(serviceID string) ([]models.Provider, error) {
	return nil, nil
}
func (r *fakeProviderRepo) GetAll() ([]models.Provider, error) {
	var out []models.Provider
	for _, p := range r.providers {
		out = append(out, *p)
	}
	return out, nil
}
func (r *fakeProviderRepo) GetExpiringSubscriptions(before time.Time) ([]models.Provider, error) {
	return nil, nil
}
func (r *fakeProviderRepo) Count() (int64, error) { return int64(len(r.providers)), nil }

type fakeUserRepo struct{}

func (fakeUserRepo) Create(u *models.User) error                       { return nil }
func (fakeUserRepo) Update(u *models.User) error                       { return nil }
func (fakeUserRepo) UpdateSetDocument(id string, doc bson.M) error     { return nil }
func (fakeUserRepo) Delete(id string) error                            { return nil }
func (fakeUserRepo) GetByID(id string) (*models.User, error)           { return nil, nil }
func (fakeUserRepo) GetByEmail(email string) (*models.User, error)     { return nil, nil }
func (fakeUserRepo) GetAll() ([]models.User, error)                    { return nil, nil }
func (fakeUserRepo) Count() (int64, error)                             { return 2, nil }

type fakeNotifications struct {
	recorded []string
}

func (n *fakeNotifications) Record(ctx context.Context, userID, notifType, message string, data map[string]any) (*models.Notification, error) {
	n.recorded = append(n.recorded, notifType)
	return &models.Notification{UserID: userID, Type: notifType}, nil
}
func (n *fakeNotifications) Recent(userID string) ([]models.Notification, error) { return nil, nil }
func (n *fakeNotifications) MarkRead(userID, id string) error                    { return nil }
func (n *fakeNotifications) Clear(userID string) error                           { return nil }

type emission struct {
	Room  string
	Event string
}

type fakeHub struct {
	emissions []emission
}

func (h *fakeHub) Emit(room, event string, data any) {
	h.emissions = append(h.emissions, emission{Room: room, Event: event})
}
func (h *fakeHub) EmitAdmins(event string, data any) {
	h.emissions = append(h.emissions, emission{Room: "admins", Event: event})
}
func (h *fakeHub) Broadcast(event string, data any) {
	h.emissions = append(h.emissions, emission{Room: "*", Event: event})
}

func (h *fakeHub) saw(room, event string) bool {
	for _, e := range h.emissions {
		if e.Room == room && e.Event == event {
			return true
		}
	}
	return false
}

func newTestService() (*DefaultBookingService, *fakeBookingRepo, *fakeProviderRepo, *fakeHub, *fakeNotifications) {
	bookings := newFakeBookingRepo()
	services := &fakeServiceRepo{services: map[string]*models.Service{
		"svc-1": {ID: "svc-1", Name: "House Cleaning", BasePrice: 40, Active: true},
	}}
	providers := &fakeProviderRepo{providers: map[string]*models.Provider{
		"prov-1": {ID: "prov-1", ServiceIDs: []string{"svc-1"}},
	}}
	hub := &fakeHub{}
	notifs := &fakeNotifications{}

	svc := &DefaultBookingService{
		Bookings:     bookings,
		Services:     services,
		Providers:    providers,
		Users:        fakeUserRepo{},
		Notification: notifs,
		Hub:          hub,
	}
	return svc, bookings, providers, hub, notifs
}

func createBooking(t *testing.T, svc *DefaultBookingService) *models.Booking {
	t.Helper()
	b, err := svc.CreateBooking("cust-1", CreateRequest{
		ServiceID:     "svc-1",
		ScheduledTime: time.Now().Add(24 * time.Hour),
		Address:       "12 Elm Street",
		Units:         2,
	})
	require.NoError(t, err)
	return b
}

func TestCreateBooking(t *testing.T) {
	svc, _, _, hub, _ := newTestService()

	b := createBooking(t, svc)

	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, float64(80), b.TotalPrice, "price is base price times units")
	assert.Equal(t, "House Cleaning", b.ServiceName)
	assert.True(t, hub.saw("cust-1", "bookingStatusUpdate"))
	assert.True(t, hub.saw("cust-1", "appointmentUpdated"))
	assert.True(t, hub.saw("admins", "appointmentUpdated"))
	assert.True(t, hub.saw("admins", "statsUpdated"))
}

func TestCreateBooking_UnknownService(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.CreateBooking("cust-1", CreateRequest{ServiceID: "nope", ScheduledTime: time.Now(), Address: "x"})
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestAssignProvider(t *testing.T) {
	svc, _, _, hub, notifs := newTestService()
	b := createBooking(t, svc)

	assigned, err := svc.AssignProvider(b.ID, "prov-1")
	require.NoError(t, err)

	assert.Equal(t, models.BookingAssigned, assigned.Status)
	assert.Equal(t, "prov-1", assigned.ProviderID)
	assert.True(t, hub.saw("prov-1", "newBookingAssigned"))
	assert.Contains(t, notifs.recorded, "booking_assigned")
}

type fakeReminders struct {
	scheduled []string // user ids
	fireAt    time.Time
}

func (f *fakeReminders) Schedule(bookingID, userID, title, body string, fireAt time.Time) error {
	f.scheduled = append(f.scheduled, userID)
	f.fireAt = fireAt
	return nil
}

func TestAssignProvider_SchedulesReminders(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	reminders := &fakeReminders{}
	svc.Reminders = reminders
	b := createBooking(t, svc)

	_, err := svc.AssignProvider(b.ID, "prov-1")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"cust-1", "prov-1"}, reminders.scheduled)
	assert.WithinDuration(t, b.ScheduledTime.Add(-time.Hour), reminders.fireAt, time.Second)
}

func TestAssignProvider_MustOfferService(t *testing.T) {
	svc, _, providers, _, _ := newTestService()
	providers.providers["prov-2"] = &models.Provider{ID: "prov-2", ServiceIDs: []string{"other"}}
	b := createBooking(t, svc)

	_, err := svc.AssignProvider(b.ID, "prov-2")
	assert.ErrorIs(t, err, ErrProviderMismatch)

	_, err = svc.AssignProvider(b.ID, "ghost")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestFullLifecycle(t *testing.T) {
	svc, _, _, hub, _ := newTestService()
	b := createBooking(t, svc)

	_, err := svc.AssignProvider(b.ID, "prov-1")
	require.NoError(t, err)

	inProgress, err := svc.AcceptBooking(b.ID, "prov-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingInProgress, inProgress.Status)

	done, err := svc.CompleteBooking(b.ID, "prov-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, done.Status)

	assert.True(t, hub.saw("prov-1", "bookingStatusUpdate"))
	assert.True(t, hub.saw("cust-1", "bookingStatusUpdate"))
	assert.True(t, hub.saw("prov-1", "appointmentUpdated"))
	assert.True(t, hub.saw("cust-1", "appointmentUpdated"))
	assert.True(t, hub.saw("admins", "appointmentUpdated"))
}

func TestProviderTransition_WrongProvider(t *testing.T) {
	svc, _, providers, _, _ := newTestService()
	providers.providers["prov-2"] = &models.Provider{ID: "prov-2", ServiceIDs: []string{"svc-1"}}
	b := createBooking(t, svc)

	_, err := svc.AssignProvider(b.ID, "prov-1")
	require.NoError(t, err)

	_, err = svc.AcceptBooking(b.ID, "prov-2")
	assert.ErrorIs(t, err, ErrNotYours)
}

func TestInvalidTransitionsRejected(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	b := createBooking(t, svc)

	// Completing a pending booking skips two states.
	_, err := svc.AssignProvider(b.ID, "prov-1")
	require.NoError(t, err)
	_, err = svc.CompleteBooking(b.ID, "prov-1")

	var invalid InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.BookingAssigned, invalid.From)
	assert.Equal(t, models.BookingCompleted, invalid.To)
}

func TestCancelBooking_OwnerOnly(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	b := createBooking(t, svc)

	_, err := svc.CancelBooking(b.ID, "someone-else")
	assert.ErrorIs(t, err, ErrNotYours)

	cancelled, err := svc.CancelBooking(b.ID, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)

	// Terminal: nothing moves out of cancelled.
	_, err = svc.AssignProvider(b.ID, "prov-1")
	var invalid InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)
}

func TestDeleteBooking_NotifiesParties(t *testing.T) {
	svc, bookings, _, hub, _ := newTestService()
	b := createBooking(t, svc)
	_, err := svc.AssignProvider(b.ID, "prov-1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBooking(b.ID))

	stored, _ := bookings.GetByID(b.ID)
	assert.Nil(t, stored)
	assert.True(t, hub.saw("cust-1", "appointmentDeleted"))
	assert.True(t, hub.saw("prov-1", "appointmentDeleted"))
	assert.True(t, hub.saw("admins", "appointmentDeleted"))
}

func TestSubmitFeedback(t *testing.T) {
	svc, _, providers, hub, _ := newTestService()
	b := createBooking(t, svc)
	_, err := svc.AssignProvider(b.ID, "prov-1")
	require.NoError(t, err)
	_, err = svc.AcceptBooking(b.ID, "prov-1")
	require.NoError(t, err)

	// Feedback before completion is rejected.
	_, err = svc.SubmitFeedback(b.ID, "cust-1", FeedbackRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrNotCompleted)

	_, err = svc.CompleteBooking(b.ID, "prov-1")
	require.NoError(t, err)

	rated, err := svc.SubmitFeedback(b.ID, "cust-1", FeedbackRequest{Rating: 4, Comment: "great"})
	require.NoError(t, err)
	require.NotNil(t, rated.Feedback)
	assert.Equal(t, 4, rated.Feedback.Rating)

	assert.Equal(t, float64(4), providers.providers["prov-1"].Rating)
	assert.Equal(t, 1, providers.providers["prov-1"].RatingCount)
	assert.True(t, hub.saw("prov-1", "feedbackSubmitted"))
	assert.True(t, hub.saw("admins", "feedbacksUpdated"))

	// Duplicate feedback is rejected.
	_, err = svc.SubmitFeedback(b.ID, "cust-1", FeedbackRequest{Rating: 1})
	assert.ErrorIs(t, err, ErrFeedbackExists)
}

func TestStats(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	createBooking(t, svc)
	b := createBooking(t, svc)
	_, err := svc.AssignProvider(b.ID, "prov-1")
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.BookingsByStatus[models.BookingPending])
	assert.Equal(t, int64(1), stats.BookingsByStatus[models.BookingAssigned])
	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, int64(1), stats.Providers)
	assert.Equal(t, int64(1), stats.Services)
}
