package bookingRepo

import "homely/models"

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(booking *models.Booking) error
	Update(booking *models.Booking) error
	Delete(id string) error
	GetByID(id string) (*models.Booking, error)
	GetByCustomer(customerID string) ([]models.Booking, error)
	GetByProvider(providerID string) ([]models.Booking, error)
	GetAll() ([]models.Booking, error)
	CountByStatus() (map[string]int64, error)
}
