package booking

import (
	"time"

	"homely/models"
	"homely/realtime"
	"homely/utils"

	"go.uber.org/zap"
)

// Stats computes the admin dashboard snapshot.
func (s *DefaultBookingService) Stats() (*models.AdminStats, error) {
	byStatus, err := s.Bookings.CountByStatus()
	if err != nil {
		return nil, err
	}

	stats := &models.AdminStats{
		BookingsByStatus: byStatus,
		GeneratedAt:      time.Now(),
	}

	providers, err := s.Providers.GetAll()
	if err == nil {
		stats.Providers = int64(len(providers))
		var sum float64
		var rated int
		for i := range providers {
			if providers[i].RatingCount > 0 {
				sum += providers[i].Rating
				rated++
			}
		}
		if rated > 0 {
			stats.AverageRating = sum / float64(rated)
		}
	}
	if count, err := s.Services.Count(); err == nil {
		stats.Services = count
	}
	if count, err := s.Users.Count(); err == nil {
		stats.Users = count
	}
	return stats, nil
}

// pushStats recomputes the snapshot and pushes it to admin rooms. Best-effort.
func (s *DefaultBookingService) pushStats() {
	stats, err := s.Stats()
	if err != nil {
		utils.GetLogger().Warn("booking: failed to compute stats", zap.Error(err))
		return
	}
	s.Hub.EmitAdmins(realtime.EventStatsUpdated, stats)
}
