package cloudevents

import (
	"time"
)

// EventType constants for fulfillment domain events
const (
	// Checkout events
	OrderCompleted = "bookstore.order.completed"

	// Purchase request events
	PurchaseRequestCompleted = "bookstore.purchase-request.completed"

	// Transfer events
	TransferExecuted = "bookstore.transfer.executed"

	// Stock events
	LowStockAlert = "bookstore.stock.low-stock-alert"
)

// Source constants for event sources
const (
	SourceFulfillment = "/bookstore/fulfillment-service"
)

// CloudEvent represents a CloudEvents v1.0 compliant event
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data"`

	// Correlation extension
	CorrelationID string `json:"correlationid,omitempty"`
}
