package domain

import "context"

// TxnRunner executes fn inside a single storage transaction. Every
// mutating engine operation runs under one call; the transaction is the
// serialization boundary, so the engine holds no in-process lock across
// requests.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// StockLedger is the sole authority over stock counters. Every other
// component routes counter reads and mutations through it.
type StockLedger interface {
	// ReserveAndCommit applies delta (negative = consume, positive =
	// replenish) to the (bookID, locationID) counter and returns the new
	// balance. It fails with InsufficientStockError if the result would
	// go negative, and must be called with the transaction context of
	// any sibling writes.
	ReserveAndCommit(ctx context.Context, bookID, locationID string, delta int) (int, error)

	// Read returns a point-in-time snapshot with no side effects. A row
	// that was never credited reads as zero stock.
	Read(ctx context.Context, bookID, locationID string) (*StockLevel, error)

	// SetThreshold upserts the low-stock threshold for a counter row
	// without touching its balance.
	SetThreshold(ctx context.Context, bookID, locationID string, threshold int) error

	FindByBook(ctx context.Context, bookID string) ([]*StockLevel, error)
	FindByLocation(ctx context.Context, locationID string) ([]*StockLevel, error)

	// FindAlerts returns every (book, location) at or below its
	// threshold, classified on read.
	FindAlerts(ctx context.Context) ([]*StockAlert, error)
}

// BookRepository persists catalog entries.
type BookRepository interface {
	Save(ctx context.Context, book *Book) error
	FindByBookID(ctx context.Context, bookID string) (*Book, error)
	FindAll(ctx context.Context, limit, offset int) ([]*Book, error)
	Delete(ctx context.Context, bookID string) error
}

// LocationRepository persists warehouses and stores.
type LocationRepository interface {
	Save(ctx context.Context, location *Location) error
	FindByLocationID(ctx context.Context, locationID string) (*Location, error)
	FindByCode(ctx context.Context, code string) (*Location, error)
	FindAll(ctx context.Context) ([]*Location, error)
}

// CartRepository persists per-user cart lines.
type CartRepository interface {
	SaveItem(ctx context.Context, item *CartItem) error
	FindCart(ctx context.Context, userID string) (*Cart, error)
	RemoveItem(ctx context.Context, userID, bookID string) error
	Clear(ctx context.Context, userID string) error
}

// OrderRepository persists checkout output.
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByOrderID(ctx context.Context, orderID string) (*Order, error)
	FindByUser(ctx context.Context, userID string, limit, offset int) ([]*Order, error)
}

// PurchaseRequestRepository persists the approval workflow records.
type PurchaseRequestRepository interface {
	Save(ctx context.Context, request *PurchaseRequest) error
	FindByRequestID(ctx context.Context, requestID string) (*PurchaseRequest, error)
	FindByStatus(ctx context.Context, status RequestStatus, limit, offset int) ([]*PurchaseRequest, error)
}

// TransferRepository appends immutable movement records.
type TransferRepository interface {
	Save(ctx context.Context, transfer *Transfer) error
	FindByBook(ctx context.Context, bookID string, limit, offset int) ([]*Transfer, error)
	FindByLocation(ctx context.Context, locationID string, limit, offset int) ([]*Transfer, error)
}
