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

// StockHandlers contains handlers for ledger reads and threshold
// management
type StockHandlers struct {
	service LedgerService
	logger  *logging.Logger
}

// NewStockHandlers creates a new StockHandlers
func NewStockHandlers(service LedgerService, logger *logging.Logger) *StockHandlers {
	return &StockHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers stock routes on the router
func (h *StockHandlers) RegisterRoutes(router *gin.RouterGroup) {
	stock := router.Group("/stock")
	{
		stock.GET("/alerts", h.GetAlerts)
		stock.GET("/books/:bookId", h.ListByBook)
		stock.GET("/books/:bookId/locations/:locationId", h.GetStock)
		stock.PUT("/books/:bookId/locations/:locationId/threshold",
			requireOp(domain.OpSetThreshold), h.SetThreshold)
		stock.GET("/locations/:locationId", h.ListByLocation)
	}
}

// GetStock handles reading one counter
func (h *StockHandlers) GetStock(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	bookID := c.Param("bookId")
	locationID := c.Param("locationId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"book.id":     bookID,
		"location.id": locationID,
	})

	level, err := h.service.GetStock(c.Request.Context(), bookID, locationID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, level)
}

// ListByBook handles listing counters for a book
func (h *StockHandlers) ListByBook(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	bookID := c.Param("bookId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"book.id": bookID,
	})

	levels, err := h.service.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, levels)
}

// ListByLocation handles listing counters held at a location
func (h *StockHandlers) ListByLocation(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	locationID := c.Param("locationId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"location.id": locationID,
	})

	levels, err := h.service.ListByLocation(c.Request.Context(), locationID)
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, levels)
}

// SetThreshold handles configuring a low-stock threshold
func (h *StockHandlers) SetThreshold(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	bookID := c.Param("bookId")
	locationID := c.Param("locationId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"book.id":     bookID,
		"location.id": locationID,
	})

	var req struct {
		Threshold *int `json:"threshold" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.SetThresholdCommand{
		BookID:     bookID,
		LocationID: locationID,
		Threshold:  *req.Threshold,
	}

	level, err := h.service.SetThreshold(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, level)
}

// GetAlerts handles listing counters at or below their threshold
func (h *StockHandlers) GetAlerts(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	alerts, err := h.service.GetAlerts(c.Request.Context())
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}
