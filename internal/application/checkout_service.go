package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bookstore-platform/fulfillment-service/pkg/cloudevents"
	"github.com/bookstore-platform/fulfillment-service/pkg/logging"
	"github.com/bookstore-platform/fulfillment-service/pkg/metrics"
	"github.com/bookstore-platform/fulfillment-service/pkg/outbox"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

// CheckoutService converts a cart into a completed order. The whole
// conversion runs in one transaction: every line is debited from the
// webstore ledger or none are, the cart is cleared, and the order
// lands already COMPLETED. There is no partially-fulfilled order state.
type CheckoutService struct {
	carts        domain.CartRepository
	books        domain.BookRepository
	locations    domain.LocationRepository
	orders       domain.OrderRepository
	ledger       domain.StockLedger
	txn          domain.TxnRunner
	outboxRepo   outbox.Repository
	eventFactory *cloudevents.EventFactory
	logger       *logging.Logger
	metrics      *metrics.Metrics
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	carts domain.CartRepository,
	books domain.BookRepository,
	locations domain.LocationRepository,
	orders domain.OrderRepository,
	ledger domain.StockLedger,
	txn domain.TxnRunner,
	outboxRepo outbox.Repository,
	eventFactory *cloudevents.EventFactory,
	logger *logging.Logger,
	metrics *metrics.Metrics,
) *CheckoutService {
	return &CheckoutService{
		carts:        carts,
		books:        books,
		locations:    locations,
		orders:       orders,
		ledger:       ledger,
		txn:          txn,
		outboxRepo:   outboxRepo,
		eventFactory: eventFactory,
		logger:       logger,
		metrics:      metrics,
	}
}

// Checkout converts the user's cart into a completed order. Prices and
// titles are captured from the catalog at this moment; later catalog
// edits never retroact into the order.
func (s *CheckoutService) Checkout(ctx context.Context, cmd CheckoutCommand) (*OrderDTO, error) {
	var order *domain.Order

	err := s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.carts.FindCart(ctx, cmd.UserID)
		if err != nil {
			return err
		}
		if cart.IsEmpty() {
			return domain.ErrEmptyCart
		}

		webstore, err := s.locations.FindByCode(ctx, domain.WebstoreCode)
		if err != nil {
			return err
		}

		items := make([]domain.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			book, err := s.books.FindByBookID(ctx, line.BookID)
			if err != nil {
				return err
			}

			if _, err := s.ledger.ReserveAndCommit(ctx, line.BookID, webstore.LocationID, -line.Quantity); err != nil {
				return err
			}

			items = append(items, domain.OrderItem{
				BookID:    book.BookID,
				Title:     book.Title,
				Quantity:  line.Quantity,
				UnitPrice: book.Price,
			})
		}

		order, err = domain.NewOrder(uuid.New().String(), cmd.UserID, items)
		if err != nil {
			return err
		}
		if err := order.Complete(); err != nil {
			return err
		}

		if err := s.orders.Save(ctx, order); err != nil {
			return err
		}
		if err := s.carts.Clear(ctx, cmd.UserID); err != nil {
			return err
		}

		if err := stageOutboxEvents(ctx, s.outboxRepo, s.eventFactory,
			order.OrderID, "Order", "orders/"+order.OrderID, order.DomainEvents()); err != nil {
			return err
		}
		order.ClearDomainEvents()

		for _, line := range order.Items {
			if err := stageLowStockAlert(ctx, s.ledger, s.outboxRepo, s.eventFactory, line.BookID, webstore.LocationID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		s.logger.WithError(err).Warn("Checkout rejected", "userId", cmd.UserID)
		if s.metrics != nil {
			s.metrics.RecordCheckoutRejected(rejectionReason(err))
		}
		return nil, mapError(err)
	}

	if s.metrics != nil {
		s.metrics.RecordCheckoutCompleted()
		s.metrics.RecordStockMovement("checkout", itemCount(order))
	}

	s.logger.Info("Checkout completed",
		"userId", cmd.UserID,
		"orderId", order.OrderID,
		"total", order.Total,
		"lines", len(order.Items),
	)
	return ToOrderDTO(order), nil
}

// GetOrder retrieves an order by ID
func (s *CheckoutService) GetOrder(ctx context.Context, orderID string) (*OrderDTO, error) {
	order, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	return ToOrderDTO(order), nil
}

// ListOrders lists a user's orders, newest first
func (s *CheckoutService) ListOrders(ctx context.Context, userID string, limit, offset int) ([]*OrderDTO, error) {
	orders, err := s.orders.FindByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, mapError(err)
	}

	dtos := make([]*OrderDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, ToOrderDTO(order))
	}
	return dtos, nil
}

func rejectionReason(err error) string {
	switch {
	case domain.IsInsufficientStock(err):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, domain.ErrBookNotFound):
		return "book_not_found"
	default:
		return "error"
	}
}

func itemCount(order *domain.Order) int {
	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}
	return count
}
