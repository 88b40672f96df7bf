package handlers

import (
	"errors"
	"net/http"

	"homely/services/booking"
	"homely/services/provider"
	"homely/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the admin dashboard: account listings, bookings and stats.
type AdminHandler struct {
	Users     user.UserService
	Providers provider.ProviderService
	Bookings  booking.BookingService
}

func NewAdminHandler(users user.UserService, providers provider.ProviderService, bookings booking.BookingService) *AdminHandler {
	return &AdminHandler{Users: users, Providers: providers, Bookings: bookings}
}

// GetAllUsersHandler lists every customer account.
func (h *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := h.Users.GetAllUsers()
	if err != nil {
		getLogger(c).Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetAllProvidersHandler lists every provider account.
func (h *AdminHandler) GetAllProvidersHandler(c *gin.Context) {
	providers, err := h.Providers.GetAllProviders()
	if err != nil {
		getLogger(c).Error("Failed to list providers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list providers"})
		return
	}
	c.JSON(http.StatusOK, providers)
}

// ListAllBookingsHandler lists every booking for the dashboard.
func (h *AdminHandler) ListAllBookingsHandler(c *gin.Context) {
	bookings, err := h.Bookings.ListAll()
	if err != nil {
		getLogger(c).Error("Failed to list bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateUserHandler edits a customer account on behalf of the admin.
func (h *AdminHandler) UpdateUserHandler(c *gin.Context) {
	var req user.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	updated, err := h.Users.UpdateUser(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		getLogger(c).Error("Failed to update user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, updated.Public())
}

// DeleteUserHandler removes a customer account.
func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	if err := h.Users.DeleteUser(c.Param("id")); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		getLogger(c).Error("Failed to delete user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// StatsHandler returns the dashboard stats snapshot.
func (h *AdminHandler) StatsHandler(c *gin.Context) {
	stats, err := h.Bookings.Stats()
	if err != nil {
		getLogger(c).Error("Failed to compute stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
