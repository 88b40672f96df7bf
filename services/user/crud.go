package user

import (
	"context"
	"fmt"

	"homely/events"
	"homely/models"
	"homely/realtime"
	"homely/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetUserByID retrieves a user by ID.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// GetUserByEmail retrieves a user by email.
func (s *DefaultUserService) GetUserByEmail(email string) (*models.User, error) {
	rec, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// UpdateUser applies caller-editable profile fields and returns the updated record.
func (s *DefaultUserService) UpdateUser(id string, update ProfileUpdate) (*models.User, error) {
	rec, err := s.GetUserByID(id)
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
	if len(doc) == 0 {
		return rec, nil
	}
	if err := s.Repo.UpdateSetDocument(id, doc); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	updated, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if s.Hub != nil {
		public := updated.Public()
		s.Hub.Emit(id, realtime.EventUserUpdated, public)
		s.Hub.EmitAdmins(realtime.EventUserUpdated, public)
	}
	s.publish(events.TypeUserChanged, updated.Public())
	return updated, nil
}

// DeleteUser removes the account and kills its session.
func (s *DefaultUserService) DeleteUser(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.clearSessionCache(id)

	payload := bson.M{"id": id}
	if s.Hub != nil {
		s.Hub.EmitAdmins(realtime.EventUserDeleted, payload)
	}
	s.publish(events.TypeUserDeleted, payload)
	return nil
}

func (s *DefaultUserService) publish(eventType string, data any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(context.Background(), eventType, data); err != nil {
		utils.GetLogger().Warn("user: integration publish failed",
			zap.String("type", eventType), zap.Error(err))
	}
}

// RevokeAuthToken invalidates the account's current session immediately.
func (s *DefaultUserService) RevokeAuthToken(id string) error {
	if err := s.Repo.UpdateSetDocument(id, bson.M{"token_hash": ""}); err != nil {
		return err
	}
	s.clearSessionCache(id)
	return nil
}

// UpdateFCMToken stores the push token registered by the account's device.
func (s *DefaultUserService) UpdateFCMToken(id, token string) error {
	return s.Repo.UpdateSetDocument(id, bson.M{"fcm_token": token})
}

// GetAllUsers returns every account. Admin only.
func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	return s.Repo.GetAll()
}
