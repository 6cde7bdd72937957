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

// BookHandlers contains handlers for catalog book operations
type BookHandlers struct {
	service CatalogService
	logger  *logging.Logger
}

// NewBookHandlers creates a new BookHandlers
func NewBookHandlers(service CatalogService, logger *logging.Logger) *BookHandlers {
	return &BookHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers book routes on the router
func (h *BookHandlers) RegisterRoutes(router *gin.RouterGroup) {
	books := router.Group("/books")
	{
		books.POST("", requireOp(domain.OpCreateBook), h.CreateBook)
		books.GET("", h.ListBooks)
		books.GET("/:bookId", h.GetBook)
		books.PUT("/:bookId", requireOp(domain.OpUpdateBook), h.UpdateBook)
		books.DELETE("/:bookId", requireOp(domain.OpDeleteBook), h.DeleteBook)
	}
}

// CreateBook handles catalog entry creation
func (h *BookHandlers) CreateBook(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req struct {
		Title  string  `json:"title" binding:"required"`
		Author string  `json:"author" binding:"required"`
		ISBN   string  `json:"isbn" binding:"required"`
		Price  float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"book.isbn": req.ISBN,
	})

	cmd := application.CreateBookCommand{
		Title:  req.Title,
		Author: req.Author,
		ISBN:   req.ISBN,
		Price:  req.Price,
	}

	book, err := h.service.CreateBook(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusCreated, book)
}

// GetBook handles getting a book by ID
func (h *BookHandlers) GetBook(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	bookID := c.Param("bookId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"book.id": bookID,
	})

	book, err := h.service.GetBook(c.Request.Context(), bookID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, book)
}

// UpdateBook handles updating catalog fields
func (h *BookHandlers) UpdateBook(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	bookID := c.Param("bookId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"book.id": bookID,
	})

	var req struct {
		Title  string  `json:"title" binding:"required"`
		Author string  `json:"author" binding:"required"`
		Price  float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.UpdateBookCommand{
		BookID: bookID,
		Title:  req.Title,
		Author: req.Author,
		Price:  req.Price,
	}

	book, err := h.service.UpdateBook(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, book)
}

// DeleteBook handles deleting a catalog entry
func (h *BookHandlers) DeleteBook(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	bookID := c.Param("bookId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"book.id": bookID,
	})

	if err := h.service.DeleteBook(c.Request.Context(), bookID); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ListBooks handles listing catalog entries
func (h *BookHandlers) ListBooks(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	books, err := h.service.ListBooks(c.Request.Context(), limit, offset)
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, books)
}
