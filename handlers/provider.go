package handlers

import (
	"errors"
	"net/http"

	"homely/services/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler serves provider accounts and the public provider directory.
type ProviderHandler struct {
	Providers provider.ProviderService
}

func NewProviderHandler(providers provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Providers: providers}
}

// GetProviderProfileHandler returns the authenticated provider's profile.
func (h *ProviderHandler) GetProviderProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	providerID, ok := authedID(c, "providerID")
	if !ok {
		return
	}

	prov, err := h.Providers.GetProviderByID(providerID)
	if err != nil || prov == nil {
		logger.Error("Failed to get provider profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}
	c.JSON(http.StatusOK, prov)
}

// UpdateProviderHandler updates the authenticated provider's profile.
func (h *ProviderHandler) UpdateProviderHandler(c *gin.Context) {
	logger := getLogger(c)

	providerID, ok := authedID(c, "providerID")
	if !ok {
		return
	}

	var update provider.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Providers.UpdateProvider(providerID, update)
	if err != nil {
		logger.Error("Failed to update provider", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteProviderHandler removes the authenticated provider's account.
func (h *ProviderHandler) DeleteProviderHandler(c *gin.Context) {
	providerID, ok := authedID(c, "providerID")
	if !ok {
		return
	}

	if err := h.Providers.DeleteProvider(providerID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// LogoutProviderHandler revokes the current provider session token.
func (h *ProviderHandler) LogoutProviderHandler(c *gin.Context) {
	providerID, ok := authedID(c, "providerID")
	if !ok {
		return
	}

	if err := h.Providers.RevokeAuthToken(providerID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// UpdateProviderFCMTokenHandler stores the device push token for the provider.
func (h *ProviderHandler) UpdateProviderFCMTokenHandler(c *gin.Context) {
	providerID, ok := authedID(c, "providerID")
	if !ok {
		return
	}

	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Providers.UpdateFCMToken(providerID, req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update push token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Push token updated"})
}

// ListProvidersByServiceHandler returns the public directory for one catalog service.
func (h *ProviderHandler) ListProvidersByServiceHandler(c *gin.Context) {
	serviceID := c.Param("serviceId")

	providers, err := h.Providers.GetProvidersByService(serviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list providers"})
		return
	}
	c.JSON(http.StatusOK, providers)
}

// ActivateSubscriptionHandler activates a plan directly, without a card charge.
// Used for free trials and manually granted plans; paid plans go through payments.
func (h *ProviderHandler) ActivateSubscriptionHandler(c *gin.Context) {
	providerID, ok := authedID(c, "providerID")
	if !ok {
		return
	}

	var req struct {
		Plan string `json:"plan" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	sub, err := h.Providers.ActivateSubscription(providerID, req.Plan)
	if err != nil {
		if errors.Is(err, provider.ErrUnknownPlan) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate subscription"})
		return
	}
	c.JSON(http.StatusOK, sub)
}
