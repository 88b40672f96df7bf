package handlers

import (
	"errors"
	"net/http"

	"homely/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceHandler serves the service catalog: public reads, admin writes.
type ServiceHandler struct {
	Catalog catalog.CatalogService
}

func NewServiceHandler(cat catalog.CatalogService) *ServiceHandler {
	return &ServiceHandler{Catalog: cat}
}

// ListServicesHandler returns the active catalog.
func (h *ServiceHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Catalog.ListServices(true)
	if err != nil {
		getLogger(c).Error("Failed to list services", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list services"})
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetServiceHandler returns one catalog entry.
func (h *ServiceHandler) GetServiceHandler(c *gin.Context) {
	svc, err := h.Catalog.GetService(c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get service"})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// CreateServiceHandler adds a catalog entry (admin only).
func (h *ServiceHandler) CreateServiceHandler(c *gin.Context) {
	var input catalog.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	svc, err := h.Catalog.CreateService(input)
	if err != nil {
		getLogger(c).Error("Failed to create service", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// UpdateServiceHandler updates a catalog entry (admin only).
func (h *ServiceHandler) UpdateServiceHandler(c *gin.Context) {
	var input catalog.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	svc, err := h.Catalog.UpdateService(c.Param("id"), input)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteServiceHandler removes a catalog entry (admin only).
func (h *ServiceHandler) DeleteServiceHandler(c *gin.Context) {
	if err := h.Catalog.DeleteService(c.Param("id")); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}
