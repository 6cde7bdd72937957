package application

import "time"

// BookDTO represents a catalog entry in responses
type BookDTO struct {
	BookID    string    `json:"bookId"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LocationDTO represents a stock-holding location in responses
type LocationDTO struct {
	LocationID string    `json:"locationId"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CartItemDTO represents one cart line
type CartItemDTO struct {
	BookID    string    `json:"bookId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartDTO represents a user's cart
type CartDTO struct {
	UserID string        `json:"userId"`
	Items  []CartItemDTO `json:"items"`
}

// OrderItemDTO represents one order line with its captured price
type OrderItemDTO struct {
	BookID    string  `json:"bookId"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

// OrderDTO represents a completed checkout
type OrderDTO struct {
	OrderID     string         `json:"orderId"`
	UserID      string         `json:"userId"`
	Items       []OrderItemDTO `json:"items"`
	Total       float64        `json:"total"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

// PurchaseRequestDTO represents a restock request
type PurchaseRequestDTO struct {
	RequestID     string     `json:"requestId"`
	BookID        string     `json:"bookId"`
	WarehouseID   string     `json:"warehouseId"`
	Quantity      int        `json:"quantity"`
	EstimatedCost *float64   `json:"estimatedCost,omitempty"`
	Status        string     `json:"status"`
	RequestedBy   string     `json:"requestedBy"`
	ReviewedBy    string     `json:"reviewedBy,omitempty"`
	ReviewNote    string     `json:"reviewNote,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// TransferDTO represents an executed stock movement
type TransferDTO struct {
	TransferID     string    `json:"transferId"`
	BookID         string    `json:"bookId"`
	FromLocationID string    `json:"fromLocationId"`
	ToLocationID   string    `json:"toLocationId"`
	Quantity       int       `json:"quantity"`
	Note           string    `json:"note,omitempty"`
	ExecutedBy     string    `json:"executedBy"`
	CreatedAt      time.Time `json:"createdAt"`
}

// StockLevelDTO represents one ledger counter with its classification
type StockLevelDTO struct {
	BookID            string    `json:"bookId"`
	LocationID        string    `json:"locationId"`
	Stock             int       `json:"stock"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	Status            string    `json:"status"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// StockAlertDTO represents a counter at or below its threshold
type StockAlertDTO struct {
	BookID            string `json:"bookId"`
	LocationID        string `json:"locationId"`
	Stock             int    `json:"stock"`
	LowStockThreshold int    `json:"lowStockThreshold"`
	Status            string `json:"status"`
}
