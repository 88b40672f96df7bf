package models

import "time"

// Service is a bookable catalog entry (cleaning, plumbing, babysitting, ...).
type Service struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	Icon        string    `bson:"icon" json:"icon"`
	UnitType    string    `bson:"unit_type" json:"unitType"` // e.g. "hour", "kg", "visit"
	BasePrice   float64   `bson:"base_price" json:"basePrice"`
	Active      bool      `bson:"active" json:"active"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
