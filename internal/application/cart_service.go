package application

import (
	"context"

	"github.com/bookstore-platform/fulfillment-service/pkg/logging"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

// CartService manages per-user cart lines. The cart holds no stock:
// nothing is reserved until checkout commits.
type CartService struct {
	carts  domain.CartRepository
	books  domain.BookRepository
	logger *logging.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	carts domain.CartRepository,
	books domain.BookRepository,
	logger *logging.Logger,
) *CartService {
	return &CartService{
		carts:  carts,
		books:  books,
		logger: logger,
	}
}

// AddItem adds a book to the user's cart, replacing the line quantity
// if the book is already carted.
func (s *CartService) AddItem(ctx context.Context, cmd AddCartItemCommand) (*CartDTO, error) {
	// Reject unknown books at cart time for early feedback. Stock is
	// not checked here; availability is decided at checkout.
	if _, err := s.books.FindByBookID(ctx, cmd.BookID); err != nil {
		return nil, mapError(err)
	}

	item, err := domain.NewCartItem(cmd.UserID, cmd.BookID, cmd.Quantity)
	if err != nil {
		return nil, mapError(err)
	}

	if err := s.carts.SaveItem(ctx, item); err != nil {
		return nil, mapError(err)
	}

	s.logger.Info("Cart item saved", "userId", cmd.UserID, "bookId", cmd.BookID, "quantity", cmd.Quantity)
	return s.GetCart(ctx, cmd.UserID)
}

// RemoveItem removes a book from the user's cart
func (s *CartService) RemoveItem(ctx context.Context, cmd RemoveCartItemCommand) (*CartDTO, error) {
	if err := s.carts.RemoveItem(ctx, cmd.UserID, cmd.BookID); err != nil {
		return nil, mapError(err)
	}
	return s.GetCart(ctx, cmd.UserID)
}

// GetCart retrieves the user's cart. A user with no lines gets an
// empty cart, not an error.
func (s *CartService) GetCart(ctx context.Context, userID string) (*CartDTO, error) {
	cart, err := s.carts.FindCart(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return ToCartDTO(cart), nil
}

// ClearCart removes all lines from the user's cart
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if err := s.carts.Clear(ctx, userID); err != nil {
		return mapError(err)
	}
	return nil
}
