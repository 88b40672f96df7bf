package models

import "time"

// AdminStats is the dashboard snapshot recomputed on every relevant mutation and
// pushed to admin rooms as statsUpdated.
type AdminStats struct {
	Users            int64            `json:"users"`
	Providers        int64            `json:"providers"`
	Services         int64            `json:"services"`
	BookingsByStatus map[string]int64 `json:"bookingsByStatus"`
	AverageRating    float64          `json:"averageRating"`
	GeneratedAt      time.Time        `json:"generatedAt"`
}
