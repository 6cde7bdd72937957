package domain

import "time"

// DomainEvent is implemented by events the engine emits after a
// committed mutation. Subscribers are fire-and-forget and can never
// roll back a committed ledger change.
type DomainEvent interface {
	EventType() string
}

// OrderCompletedEvent is emitted when checkout commits.
type OrderCompletedEvent struct {
	OrderID     string    `json:"orderId"`
	UserID      string    `json:"userId"`
	Total       float64   `json:"total"`
	ItemCount   int       `json:"itemCount"`
	CompletedAt time.Time `json:"completedAt"`
}

func (e *OrderCompletedEvent) EventType() string { return "order.completed" }

// PurchaseRequestCompletedEvent is emitted when an approved request is
// fulfilled and the warehouse credited.
type PurchaseRequestCompletedEvent struct {
	RequestID   string    `json:"requestId"`
	BookID      string    `json:"bookId"`
	WarehouseID string    `json:"warehouseId"`
	Quantity    int       `json:"quantity"`
	CompletedAt time.Time `json:"completedAt"`
}

func (e *PurchaseRequestCompletedEvent) EventType() string { return "purchase_request.completed" }

// TransferExecutedEvent is emitted when a location-to-location movement
// commits.
type TransferExecutedEvent struct {
	TransferID     string    `json:"transferId"`
	BookID         string    `json:"bookId"`
	FromLocationID string    `json:"fromLocationId"`
	ToLocationID   string    `json:"toLocationId"`
	Quantity       int       `json:"quantity"`
	ExecutedAt     time.Time `json:"executedAt"`
}

func (e *TransferExecutedEvent) EventType() string { return "transfer.executed" }

// LowStockAlertEvent is emitted when a committed mutation leaves a
// stock level at or below its threshold.
type LowStockAlertEvent struct {
	BookID            string    `json:"bookId"`
	LocationID        string    `json:"locationId"`
	Stock             int       `json:"stock"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	AlertedAt         time.Time `json:"alertedAt"`
}

func (e *LowStockAlertEvent) EventType() string { return "stock.low_stock_alert" }
