package provider

import (
	"context"
	"fmt"
	"time"

	"homely/events"
	"homely/models"
	"homely/realtime"
	"homely/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Subscription plans and their durations.
var planDurations = map[string]time.Duration{
	"monthly": 30 * 24 * time.Hour,
	"yearly":  365 * 24 * time.Hour,
}

// ActivateSubscription starts or extends the provider's plan after a successful
// charge. Pushes subscriptionUpdated to the provider and publishes the change on
// the integration bus.
func (s *DefaultProviderService) ActivateSubscription(providerID, plan string) (*models.Subscription, error) {
	duration, ok := planDurations[plan]
	if !ok {
		return nil, ErrUnknownPlan
	}

	rec, err := s.GetProviderByID(providerID)
	if err != nil {
		return nil, err
	}

	// Extending an unexpired plan stacks onto the remaining time.
	start := time.Now()
	if rec.Subscription != nil && rec.Subscription.Status == "active" && rec.Subscription.ExpiresAt.After(start) {
		start = rec.Subscription.ExpiresAt
	}

	sub := &models.Subscription{
		Plan:      plan,
		Status:    "active",
		ExpiresAt: start.Add(duration),
		Warned:    false,
		UpdatedAt: time.Now(),
	}
	if err := s.Repo.UpdateSetDocument(providerID, bson.M{"subscription": sub}); err != nil {
		return nil, fmt.Errorf("failed to store subscription: %w", err)
	}

	if s.Hub != nil {
		s.Hub.Emit(providerID, realtime.EventSubscriptionUpdated, sub)
	}
	if s.Events != nil {
		if err := s.Events.Publish(context.Background(), events.TypeSubscriptionChange, map[string]any{
			"providerId": providerID,
			"plan":       plan,
			"expiresAt":  sub.ExpiresAt,
		}); err != nil {
			utils.GetLogger().Warn("subscription: integration publish failed", zap.Error(err))
		}
	}
	return sub, nil
}
