package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookstore-platform/fulfillment-service/pkg/errors"
	"github.com/bookstore-platform/fulfillment-service/pkg/logging"
	"github.com/bookstore-platform/fulfillment-service/pkg/middleware"

	"github.com/bookstore-platform/fulfillment-service/internal/application"
	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

// LocationHandlers contains handlers for location operations
type LocationHandlers struct {
	service CatalogService
	logger  *logging.Logger
}

// NewLocationHandlers creates a new LocationHandlers
func NewLocationHandlers(service CatalogService, logger *logging.Logger) *LocationHandlers {
	return &LocationHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers location routes on the router
func (h *LocationHandlers) RegisterRoutes(router *gin.RouterGroup) {
	locations := router.Group("/locations")
	{
		locations.POST("", requireOp(domain.OpManageLocations), h.CreateLocation)
		locations.GET("", h.ListLocations)
		locations.GET("/:locationId", h.GetLocation)
		locations.PUT("/:locationId/active", requireOp(domain.OpManageLocations), h.SetActive)
	}
}

// CreateLocation handles registering a stock-holding location
func (h *LocationHandlers) CreateLocation(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req struct {
		Code string `json:"code" binding:"required"`
		Name string `json:"name" binding:"required"`
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"location.code": req.Code,
	})

	cmd := application.CreateLocationCommand{
		Code: req.Code,
		Name: req.Name,
		Type: req.Type,
	}

	location, err := h.service.CreateLocation(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusCreated, location)
}

// GetLocation handles getting a location by ID
func (h *LocationHandlers) GetLocation(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	locationID := c.Param("locationId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"location.id": locationID,
	})

	location, err := h.service.GetLocation(c.Request.Context(), locationID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, location)
}

// SetActive handles activating or deactivating a location
func (h *LocationHandlers) SetActive(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	locationID := c.Param("locationId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"location.id": locationID,
	})

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.SetLocationActiveCommand{
		LocationID: locationID,
		Active:     *req.Active,
	}

	location, err := h.service.SetLocationActive(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, location)
}

// ListLocations handles listing all locations
func (h *LocationHandlers) ListLocations(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	locations, err := h.service.ListLocations(c.Request.Context())
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, locations)
}
