package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockLevel is one counter row of the ledger, keyed by (bookId,
// locationId). Rows are created lazily on first credit and never
// deleted: zero stock is a valid state, not an absence.
type StockLevel struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookID            string             `bson:"bookId" json:"bookId"`
	LocationID        string             `bson:"locationId" json:"locationId"`
	Stock             int                `bson:"stock" json:"stock"`
	LowStockThreshold int                `bson:"lowStockThreshold" json:"lowStockThreshold"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StockStatus classifies a stock level against its threshold.
type StockStatus string

const (
	StockStatusOutOfStock StockStatus = "OUT_OF_STOCK"
	StockStatusLowStock   StockStatus = "LOW_STOCK"
	StockStatusInStock    StockStatus = "IN_STOCK"
)

// ClassifyStock is the alerting rule. It is pure and computed on read,
// never persisted as mutable state.
func ClassifyStock(stock, threshold int) StockStatus {
	switch {
	case stock == 0:
		return StockStatusOutOfStock
	case stock <= threshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// Status classifies this row.
func (s *StockLevel) Status() StockStatus {
	return ClassifyStock(s.Stock, s.LowStockThreshold)
}

// StockAlert is a derived view over the ledger for rows at or below
// their threshold.
type StockAlert struct {
	BookID            string      `json:"bookId"`
	LocationID        string      `json:"locationId"`
	Stock             int         `json:"stock"`
	LowStockThreshold int         `json:"lowStockThreshold"`
	Status            StockStatus `json:"status"`
}
