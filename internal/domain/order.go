package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNoOrderItems    = errors.New("order must have at least one item")
	ErrOrderNotPending = errors.New("order is not pending")
)

// OrderStatus represents the checkout lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// OrderItem is a purchased line. UnitPrice is copied from the catalog
// at purchase time so later price edits never retroact.
type OrderItem struct {
	BookID    string  `bson:"bookId" json:"bookId"`
	Title     string  `bson:"title" json:"title"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unitPrice" json:"unitPrice"`
}

// LineTotal returns quantity times the captured unit price.
func (i *OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// Order is the aggregate produced by checkout. Once COMPLETED it is an
// immutable record.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID     string             `bson:"orderId" json:"orderId"`
	UserID      string             `bson:"userId" json:"userId"`
	Items       []OrderItem        `bson:"items" json:"items"`
	Total       float64            `bson:"total" json:"total"`
	Status      OrderStatus        `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	domainEvents []DomainEvent `bson:"-" json:"-"`
}

// NewOrder creates a PENDING order from priced lines.
func NewOrder(orderID, userID string, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoOrderItems
	}

	var total float64
	for i := range items {
		if items[i].Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		total += items[i].LineTotal()
	}

	return &Order{
		OrderID:   orderID,
		UserID:    userID,
		Items:     items,
		Total:     total,
		Status:    OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Complete flips the order to COMPLETED and emits the completion event.
func (o *Order) Complete() error {
	if o.Status != OrderStatusPending {
		return ErrOrderNotPending
	}

	now := time.Now().UTC()
	o.Status = OrderStatusCompleted
	o.CompletedAt = &now

	o.addDomainEvent(&OrderCompletedEvent{
		OrderID:     o.OrderID,
		UserID:      o.UserID,
		Total:       o.Total,
		ItemCount:   len(o.Items),
		CompletedAt: now,
	})
	return nil
}

func (o *Order) addDomainEvent(event DomainEvent) {
	o.domainEvents = append(o.domainEvents, event)
}

// DomainEvents returns events emitted since the last clear.
func (o *Order) DomainEvents() []DomainEvent {
	return o.domainEvents
}

// ClearDomainEvents drops emitted events after they are captured.
func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}
