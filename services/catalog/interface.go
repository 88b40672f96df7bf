package catalog

import "homely/models"

// CatalogService manages the bookable service catalog. Mutations are admin-only and
// broadcast to every connected client.
type CatalogService interface {
	ListServices(activeOnly bool) ([]models.Service, error)
	GetService(id string) (*models.Service, error)
	CreateService(input ServiceInput) (*models.Service, error)
	UpdateService(id string, input ServiceInput) (*models.Service, error)
	DeleteService(id string) error
}

// ServiceInput is the payload for catalog create/update.
type ServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	Icon        string  `json:"icon"`
	UnitType    string  `json:"unitType" binding:"required"`
	BasePrice   float64 `json:"basePrice" binding:"required,gt=0"`
	Active      *bool   `json:"active,omitempty"`
}
