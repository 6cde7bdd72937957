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

// PurchaseRequestHandlers contains handlers for the restock approval
// workflow
type PurchaseRequestHandlers struct {
	service PurchaseRequestService
	logger  *logging.Logger
}

// NewPurchaseRequestHandlers creates a new PurchaseRequestHandlers
func NewPurchaseRequestHandlers(service PurchaseRequestService, logger *logging.Logger) *PurchaseRequestHandlers {
	return &PurchaseRequestHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers purchase request routes on the router
func (h *PurchaseRequestHandlers) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/purchase-requests")
	{
		requests.POST("", requireOp(domain.OpCreatePurchaseRequest), h.CreateRequest)
		requests.GET("", h.ListByStatus)
		requests.GET("/:requestId", h.GetRequest)
		requests.POST("/:requestId/submit", requireOp(domain.OpCreatePurchaseRequest), h.SubmitRequest)
		requests.POST("/:requestId/review", requireOp(domain.OpReviewPurchaseRequest), h.ReviewRequest)
		requests.POST("/:requestId/complete", requireOp(domain.OpCompletePurchaseRequest), h.CompleteRequest)
	}
}

// CreateRequest handles opening a restock request
func (h *PurchaseRequestHandlers) CreateRequest(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req struct {
		BookID        string   `json:"bookId" binding:"required"`
		WarehouseID   string   `json:"warehouseId" binding:"required"`
		Quantity      int      `json:"quantity" binding:"required"`
		EstimatedCost *float64 `json:"estimatedCost"`
		Submit        bool     `json:"submit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"book.id":      req.BookID,
		"warehouse.id": req.WarehouseID,
	})

	cmd := application.CreatePurchaseRequestCommand{
		BookID:        req.BookID,
		WarehouseID:   req.WarehouseID,
		Quantity:      req.Quantity,
		EstimatedCost: req.EstimatedCost,
		RequestedBy:   middleware.GetUserID(c),
		Submit:        req.Submit,
	}

	request, err := h.service.Create(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusCreated, request)
}

// SubmitRequest handles moving a draft into the approval queue
func (h *PurchaseRequestHandlers) SubmitRequest(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	requestID := c.Param("requestId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"purchase_request.id": requestID,
	})

	cmd := application.SubmitPurchaseRequestCommand{
		RequestID: requestID,
		UserID:    middleware.GetUserID(c),
	}

	request, err := h.service.Submit(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, request)
}

// ReviewRequest handles approving or rejecting a pending request
func (h *PurchaseRequestHandlers) ReviewRequest(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	requestID := c.Param("requestId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"purchase_request.id": requestID,
	})

	var req struct {
		Action string `json:"action" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.ReviewPurchaseRequestCommand{
		RequestID:  requestID,
		Action:     req.Action,
		ReviewedBy: middleware.GetUserID(c),
		Note:       req.Note,
	}

	request, err := h.service.Review(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, request)
}

// CompleteRequest handles recording fulfillment of an approved request
func (h *PurchaseRequestHandlers) CompleteRequest(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	requestID := c.Param("requestId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"purchase_request.id": requestID,
	})

	cmd := application.CompletePurchaseRequestCommand{
		RequestID: requestID,
		UserID:    middleware.GetUserID(c),
	}

	request, err := h.service.Complete(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, request)
}

// GetRequest handles getting a purchase request by ID
func (h *PurchaseRequestHandlers) GetRequest(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	requestID := c.Param("requestId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"purchase_request.id": requestID,
	})

	request, err := h.service.GetRequest(c.Request.Context(), requestID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, request)
}

// ListByStatus handles listing purchase requests by status
func (h *PurchaseRequestHandlers) ListByStatus(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	status := c.DefaultQuery("status", string(domain.RequestStatusPendingApproval))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	requests, err := h.service.ListByStatus(c.Request.Context(), status, limit, offset)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, requests)
}
