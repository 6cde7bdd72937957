package domain

import (
	"errors"
	"fmt"
)

// Engine errors surfaced to callers as typed failures
var (
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInvalidThreshold     = errors.New("threshold must not be negative")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrBookNotFound         = errors.New("book not found")
	ErrLocationNotFound     = errors.New("location not found")
	ErrLocationInactive     = errors.New("location is not active")
	ErrSameLocation         = errors.New("source and destination locations must differ")
	ErrRequestNotFound      = errors.New("purchase request not found")
	ErrInvalidRequestStatus = errors.New("invalid purchase request status")
	ErrOrderNotFound        = errors.New("order not found")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrStockLevelNotFound   = errors.New("stock level not found")
	ErrDuplicateISBN        = errors.New("a book with this ISBN already exists")
	ErrDuplicateCode        = errors.New("a location with this code already exists")
)

// InsufficientStockError is returned when a debit would drive a stock
// counter negative. It names the book and the exact shortfall so the
// API layer never has to emit a generic failure.
type InsufficientStockError struct {
	BookID     string
	LocationID string
	Requested  int
	Available  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for book %s at %s: requested %d, available %d",
		e.BookID, e.LocationID, e.Requested, e.Available)
}

// Shortfall returns how many units the request exceeded availability by.
func (e *InsufficientStockError) Shortfall() int {
	return e.Requested - e.Available
}

// InvalidTransitionError is returned when a purchase request operation
// is attempted from a state that does not allow it.
type InvalidTransitionError struct {
	Current   RequestStatus
	Attempted RequestStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid purchase request transition: %s -> %s", e.Current, e.Attempted)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}
