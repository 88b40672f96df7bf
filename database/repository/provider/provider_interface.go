package providerRepo

import (
	"time"

	"homely/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProviderRepository defines persistence operations for provider accounts.
type ProviderRepository interface {
	Create(provider *models.Provider) error
	Update(provider *models.Provider) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.Provider, error)
	GetByEmail(email string) (*models.Provider, error)
	GetByService(serviceID string) ([]models.Provider, error)
	GetAll() ([]models.Provider, error)
	GetExpiringSubscriptions(before time.Time) ([]models.Provider, error)
	Count() (int64, error)
}
