package serviceRepo

import "homely/models"

// ServiceRepository defines persistence operations for the service catalog.
type ServiceRepository interface {
	Create(service *models.Service) error
	Update(service *models.Service) error
	Delete(id string) error
	GetByID(id string) (*models.Service, error)
	GetAll(activeOnly bool) ([]models.Service, error)
	Count() (int64, error)
}
