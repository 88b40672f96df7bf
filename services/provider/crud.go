package provider

import (
	"fmt"

	"homely/models"

	"go.mongodb.org/mongo-driver/bson"
)

// GetProviderByID retrieves a provider by ID.
func (s *DefaultProviderService) GetProviderByID(id string) (*models.Provider, error) {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// GetProvidersByService returns the public projection of providers offering a
// catalog service.
func (s *DefaultProviderService) GetProvidersByService(serviceID string) ([]models.PublicProvider, error) {
	recs, err := s.Repo.GetByService(serviceID)
	if err != nil {
		return nil, err
	}
	out := make([]models.PublicProvider, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].Public())
	}
	return out, nil
}

// UpdateProvider applies caller-editable fields and returns the updated record.
func (s *DefaultProviderService) UpdateProvider(id string, update ProfileUpdate) (*models.Provider, error) {
	rec, err := s.GetProviderByID(id)
	if err != nil {
		return nil, err
	}

	doc := bson.M{}
	if update.Name != "" {
		doc["name"] = update.Name
	}
	if update.PhoneNumber != "" {
		doc["phone_number"] = update.PhoneNumber
	}
	if len(update.ServiceIDs) > 0 {
		doc["service_ids"] = update.ServiceIDs
	}
	if len(doc) == 0 {
		return rec, nil
	}
	if err := s.Repo.UpdateSetDocument(id, doc); err != nil {
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}
	return s.GetProviderByID(id)
}

// DeleteProvider removes the account and kills its session.
func (s *DefaultProviderService) DeleteProvider(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.clearSessionCache(id)
	return nil
}

// RevokeAuthToken invalidates the provider's current session immediately.
func (s *DefaultProviderService) RevokeAuthToken(id string) error {
	if err := s.Repo.UpdateSetDocument(id, bson.M{"token_hash": ""}); err != nil {
		return err
	}
	s.clearSessionCache(id)
	return nil
}

// UpdateFCMToken stores the push token registered by the provider's device.
func (s *DefaultProviderService) UpdateFCMToken(id, token string) error {
	return s.Repo.UpdateSetDocument(id, bson.M{"fcm_token": token})
}

// GetAllProviders returns every provider account. Admin only.
func (s *DefaultProviderService) GetAllProviders() ([]models.Provider, error) {
	return s.Repo.GetAll()
}
