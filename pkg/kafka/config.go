package kafka

import (
	"strings"
	"time"
)

// Config holds Kafka configuration
type Config struct {
	Brokers  []string
	ClientID string

	// Producer settings
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int // 0: no ack, 1: leader ack, -1: all replicas ack
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Brokers:  []string{"localhost:9092"},
		ClientID: "fulfillment-service",

		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: -1, // All replicas
	}
}

// Topics contains the fulfillment Kafka topic names. The notification
// and audit layers subscribe to these; nothing in this service
// consumes them.
var Topics = struct {
	OrderEvents           string
	PurchaseRequestEvents string
	TransferEvents        string
	StockEvents           string
}{
	OrderEvents:           "bookstore.orders.events",
	PurchaseRequestEvents: "bookstore.purchase-requests.events",
	TransferEvents:        "bookstore.transfers.events",
	StockEvents:           "bookstore.stock.events",
}

// TopicForEventType maps a domain event type to its outbound topic.
func TopicForEventType(eventType string) string {
	switch {
	case strings.Contains(eventType, "order"):
		return Topics.OrderEvents
	case strings.Contains(eventType, "purchase-request"):
		return Topics.PurchaseRequestEvents
	case strings.Contains(eventType, "transfer"):
		return Topics.TransferEvents
	default:
		return Topics.StockEvents
	}
}
