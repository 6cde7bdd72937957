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

// CartHandlers contains handlers for the calling user's cart
type CartHandlers struct {
	service CartService
	logger  *logging.Logger
}

// NewCartHandlers creates a new CartHandlers
func NewCartHandlers(service CartService, logger *logging.Logger) *CartHandlers {
	return &CartHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers cart routes on the router
func (h *CartHandlers) RegisterRoutes(router *gin.RouterGroup) {
	cart := router.Group("/cart", requireOp(domain.OpManageCart))
	{
		cart.GET("", h.GetCart)
		cart.POST("/items", h.AddItem)
		cart.DELETE("/items/:bookId", h.RemoveItem)
		cart.DELETE("", h.ClearCart)
	}
}

// GetCart handles getting the calling user's cart
func (h *CartHandlers) GetCart(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	cart, err := h.service.GetCart(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// AddItem handles adding or replacing a cart line
func (h *CartHandlers) AddItem(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req struct {
		BookID   string `json:"bookId" binding:"required"`
		Quantity int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"book.id":       req.BookID,
		"cart.quantity": req.Quantity,
	})

	cmd := application.AddCartItemCommand{
		UserID:   middleware.GetUserID(c),
		BookID:   req.BookID,
		Quantity: req.Quantity,
	}

	cart, err := h.service.AddItem(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, cart)
}

// RemoveItem handles removing a cart line
func (h *CartHandlers) RemoveItem(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	bookID := c.Param("bookId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"book.id": bookID,
	})

	cmd := application.RemoveCartItemCommand{
		UserID: middleware.GetUserID(c),
		BookID: bookID,
	}

	cart, err := h.service.RemoveItem(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, cart)
}

// ClearCart handles emptying the calling user's cart
func (h *CartHandlers) ClearCart(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	if err := h.service.ClearCart(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.Status(http.StatusNoContent)
}
