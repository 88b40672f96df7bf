// models/provider.go
package models

import "time"

// Provider represents a service provider account.
type Provider struct {
	ID           string        `bson:"id" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	PhoneNumber  string        `bson:"phone_number" json:"phoneNumber"`
	ServiceIDs   []string      `bson:"service_ids" json:"serviceIds"`
	Rating       float64       `bson:"rating" json:"rating"`
	RatingCount  int           `bson:"rating_count" json:"ratingCount"`
	Verified     bool          `bson:"verified" json:"verified"`
	TokenHash    string        `bson:"token_hash,omitempty" json:"-"`
	FCMToken     string        `bson:"fcm_token,omitempty" json:"-"`
	Subscription *Subscription `bson:"subscription,omitempty" json:"subscription,omitempty"`
	CreatedAt    time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Subscription tracks a provider's paid plan.
type Subscription struct {
	Plan      string    `bson:"plan" json:"plan"`
	Status    string    `bson:"status" json:"status"` // "active", "expired"
	ExpiresAt time.Time `bson:"expires_at" json:"expiresAt"`
	Warned    bool      `bson:"warned" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PublicProvider is the projection visible to customers.
type PublicProvider struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ServiceIDs []string `json:"serviceIds"`
	Rating     float64  `json:"rating"`
	Verified   bool     `json:"verified"`
}

func (p *Provider) Public() PublicProvider {
	return PublicProvider{
		ID:         p.ID,
		Name:       p.Name,
		ServiceIDs: p.ServiceIDs,
		Rating:     p.Rating,
		Verified:   p.Verified,
	}
}
