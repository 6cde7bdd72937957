package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookstore-platform/fulfillment-service/pkg/errors"
	"github.com/bookstore-platform/fulfillment-service/pkg/logging"
	"github.com/bookstore-platform/fulfillment-service/pkg/middleware"

	"github.com/bookstore-platform/fulfillment-service/internal/application"
	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

// OrderHandlers contains handlers for checkout and order queries
type OrderHandlers struct {
	service CheckoutService
	logger  *logging.Logger
}

// NewOrderHandlers creates a new OrderHandlers
func NewOrderHandlers(service CheckoutService, logger *logging.Logger) *OrderHandlers {
	return &OrderHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers checkout and order routes on the router
func (h *OrderHandlers) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/checkout", requireOp(domain.OpCheckout), h.Checkout)

	orders := router.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:orderId", h.GetOrder)
	}
}

// Checkout handles converting the calling user's cart into an order
func (h *OrderHandlers) Checkout(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	userID := middleware.GetUserID(c)
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"user.id": userID,
	})

	order, err := h.service.Checkout(c.Request.Context(), application.CheckoutCommand{UserID: userID})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder handles getting an order by ID
func (h *OrderHandlers) GetOrder(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	orderID := c.Param("orderId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"order.id": orderID,
	})

	order, err := h.service.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListOrders handles listing the calling user's orders
func (h *OrderHandlers) ListOrders(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.service.ListOrders(c.Request.Context(), middleware.GetUserID(c), limit, offset)
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, orders)
}
