package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/bookstore-platform/fulfillment-service/pkg/errors"
	"github.com/bookstore-platform/fulfillment-service/pkg/middleware"

	"github.com/bookstore-platform/fulfillment-service/internal/application"
	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

// requireOp gates a route behind the capability the operation table
// assigns to it. Route wiring consults the table; handlers never check
// permissions themselves.
func requireOp(op domain.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentActor(c).Can(op) {
			required := domain.OperationCapabilities[op]
			middleware.AbortWithAppError(c, errors.ErrForbidden("missing capability: "+string(required)))
			return
		}
		c.Next()
	}
}

// currentActor rebuilds the domain actor from the identity and grants
// the auth middleware resolved.
func currentActor(c *gin.Context) *domain.Actor {
	granted := middleware.GetCapabilities(c)
	caps := make([]domain.Capability, 0, len(granted))
	for name := range granted {
		caps = append(caps, domain.Capability(name))
	}
	return domain.NewActor(middleware.GetUserID(c), caps)
}

// CatalogService is the application surface the book and location
// handlers depend on.
type CatalogService interface {
	CreateBook(ctx context.Context, cmd application.CreateBookCommand) (*application.BookDTO, error)
	UpdateBook(ctx context.Context, cmd application.UpdateBookCommand) (*application.BookDTO, error)
	DeleteBook(ctx context.Context, bookID string) error
	GetBook(ctx context.Context, bookID string) (*application.BookDTO, error)
	ListBooks(ctx context.Context, limit, offset int) ([]*application.BookDTO, error)
	CreateLocation(ctx context.Context, cmd application.CreateLocationCommand) (*application.LocationDTO, error)
	SetLocationActive(ctx context.Context, cmd application.SetLocationActiveCommand) (*application.LocationDTO, error)
	GetLocation(ctx context.Context, locationID string) (*application.LocationDTO, error)
	ListLocations(ctx context.Context) ([]*application.LocationDTO, error)
}

// CartService is the application surface the cart handlers depend on.
type CartService interface {
	AddItem(ctx context.Context, cmd application.AddCartItemCommand) (*application.CartDTO, error)
	RemoveItem(ctx context.Context, cmd application.RemoveCartItemCommand) (*application.CartDTO, error)
	GetCart(ctx context.Context, userID string) (*application.CartDTO, error)
	ClearCart(ctx context.Context, userID string) error
}

// CheckoutService is the application surface the order handlers depend
// on.
type CheckoutService interface {
	Checkout(ctx context.Context, cmd application.CheckoutCommand) (*application.OrderDTO, error)
	GetOrder(ctx context.Context, orderID string) (*application.OrderDTO, error)
	ListOrders(ctx context.Context, userID string, limit, offset int) ([]*application.OrderDTO, error)
}

// PurchaseRequestService is the application surface the purchase
// request handlers depend on.
type PurchaseRequestService interface {
	Create(ctx context.Context, cmd application.CreatePurchaseRequestCommand) (*application.PurchaseRequestDTO, error)
	Submit(ctx context.Context, cmd application.SubmitPurchaseRequestCommand) (*application.PurchaseRequestDTO, error)
	Review(ctx context.Context, cmd application.ReviewPurchaseRequestCommand) (*application.PurchaseRequestDTO, error)
	Complete(ctx context.Context, cmd application.CompletePurchaseRequestCommand) (*application.PurchaseRequestDTO, error)
	GetRequest(ctx context.Context, requestID string) (*application.PurchaseRequestDTO, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*application.PurchaseRequestDTO, error)
}

// TransferService is the application surface the transfer handlers
// depend on.
type TransferService interface {
	Execute(ctx context.Context, cmd application.ExecuteTransferCommand) (*application.TransferDTO, error)
	ListByBook(ctx context.Context, bookID string, limit, offset int) ([]*application.TransferDTO, error)
	ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*application.TransferDTO, error)
}

// LedgerService is the application surface the stock handlers depend
// on.
type LedgerService interface {
	GetStock(ctx context.Context, bookID, locationID string) (*application.StockLevelDTO, error)
	ListByBook(ctx context.Context, bookID string) ([]*application.StockLevelDTO, error)
	ListByLocation(ctx context.Context, locationID string) ([]*application.StockLevelDTO, error)
	SetThreshold(ctx context.Context, cmd application.SetThresholdCommand) (*application.StockLevelDTO, error)
	GetAlerts(ctx context.Context) ([]*application.StockAlertDTO, error)
}
