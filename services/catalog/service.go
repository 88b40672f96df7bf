package catalog

import (
	"context"
	"errors"
	"fmt"

	serviceRepo "homely/database/repository/service"
	"homely/events"
	"homely/models"
	"homely/realtime"
	"homely/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned for lookups of unknown catalog entries.
var ErrNotFound = errors.New("service not found")

// DefaultCatalogService is the production implementation of CatalogService.
type DefaultCatalogService struct {
	Repo   serviceRepo.ServiceRepository
	Hub    realtime.Publisher
	Events events.Publisher
}

// ListServices returns the catalog, optionally restricted to active entries.
func (s *DefaultCatalogService) ListServices(activeOnly bool) ([]models.Service, error) {
	return s.Repo.GetAll(activeOnly)
}

// GetService retrieves one catalog entry.
func (s *DefaultCatalogService) GetService(id string) (*models.Service, error) {
	svc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrNotFound
	}
	return svc, nil
}

// CreateService adds a catalog entry and broadcasts serviceAdded.
func (s *DefaultCatalogService) CreateService(input ServiceInput) (*models.Service, error) {
	svc := &models.Service{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Icon:        input.Icon,
		UnitType:    input.UnitType,
		BasePrice:   input.BasePrice,
		Active:      true,
	}
	if input.Active != nil {
		svc.Active = *input.Active
	}
	if err := s.Repo.Create(svc); err != nil {
		return nil, err
	}

	s.Hub.Broadcast(realtime.EventServiceAdded, svc)
	s.publishChange("added", svc)
	return svc, nil
}

// UpdateService modifies a catalog entry and broadcasts serviceUpdated.
func (s *DefaultCatalogService) UpdateService(id string, input ServiceInput) (*models.Service, error) {
	svc, err := s.GetService(id)
	if err != nil {
		return nil, err
	}

	svc.Name = input.Name
	svc.Description = input.Description
	svc.Category = input.Category
	svc.Icon = input.Icon
	svc.UnitType = input.UnitType
	svc.BasePrice = input.BasePrice
	if input.Active != nil {
		svc.Active = *input.Active
	}
	if err := s.Repo.Update(svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	s.Hub.Broadcast(realtime.EventServiceUpdated, svc)
	s.publishChange("updated", svc)
	return svc, nil
}

// DeleteService removes a catalog entry and broadcasts serviceDeleted.
func (s *DefaultCatalogService) DeleteService(id string) error {
	svc, err := s.GetService(id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}

	s.Hub.Broadcast(realtime.EventServiceDeleted, map[string]string{"id": id})
	s.publishChange("deleted", svc)
	return nil
}

func (s *DefaultCatalogService) publishChange(action string, svc *models.Service) {
	if s.Events == nil {
		return
	}
	err := s.Events.Publish(context.Background(), events.TypeServiceChanged, map[string]any{
		"action":  action,
		"service": svc,
	})
	if err != nil {
		utils.GetLogger().Warn("catalog: integration publish failed", zap.Error(err))
	}
}
