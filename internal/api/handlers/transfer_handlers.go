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

// TransferHandlers contains handlers for stock movements
type TransferHandlers struct {
	service TransferService
	logger  *logging.Logger
}

// NewTransferHandlers creates a new TransferHandlers
func NewTransferHandlers(service TransferService, logger *logging.Logger) *TransferHandlers {
	return &TransferHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers transfer routes on the router
func (h *TransferHandlers) RegisterRoutes(router *gin.RouterGroup) {
	transfers := router.Group("/transfers")
	{
		transfers.POST("", requireOp(domain.OpExecuteTransfer), h.ExecuteTransfer)
		transfers.GET("/book/:bookId", h.ListByBook)
		transfers.GET("/location/:locationId", h.ListByLocation)
	}
}

// ExecuteTransfer handles moving stock between two locations
func (h *TransferHandlers) ExecuteTransfer(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req struct {
		BookID         string `json:"bookId" binding:"required"`
		FromLocationID string `json:"fromLocationId" binding:"required"`
		ToLocationID   string `json:"toLocationId" binding:"required"`
		Quantity       int    `json:"quantity" binding:"required"`
		Note           string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"book.id":           req.BookID,
		"transfer.from":     req.FromLocationID,
		"transfer.to":       req.ToLocationID,
		"transfer.quantity": req.Quantity,
	})

	cmd := application.ExecuteTransferCommand{
		BookID:         req.BookID,
		FromLocationID: req.FromLocationID,
		ToLocationID:   req.ToLocationID,
		Quantity:       req.Quantity,
		Note:           req.Note,
		ExecutedBy:     middleware.GetUserID(c),
	}

	transfer, err := h.service.Execute(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusCreated, transfer)
}

// ListByBook handles listing movements for a book
func (h *TransferHandlers) ListByBook(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	bookID := c.Param("bookId")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	transfers, err := h.service.ListByBook(c.Request.Context(), bookID, limit, offset)
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, transfers)
}

// ListByLocation handles listing movements touching a location
func (h *TransferHandlers) ListByLocation(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	locationID := c.Param("locationId")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	transfers, err := h.service.ListByLocation(c.Request.Context(), locationID, limit, offset)
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, transfers)
}
