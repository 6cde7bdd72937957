package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one (userId, bookId) line of a cart. Quantity is always
// at least 1; removing a line deletes it rather than zeroing it.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	BookID    string             `bson:"bookId" json:"bookId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	AddedAt   time.Time          `bson:"addedAt" json:"addedAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewCartItem creates a cart line after quantity validation.
func NewCartItem(userID, bookID string, quantity int) (*CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	now := time.Now().UTC()
	return &CartItem{
		UserID:    userID,
		BookID:    bookID,
		Quantity:  quantity,
		AddedAt:   now,
		UpdatedAt: now,
	}, nil
}

// SetQuantity replaces the line quantity.
func (c *CartItem) SetQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	c.Quantity = quantity
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Cart bundles a user's lines for checkout. Cart rows are exclusively
// owned per user and need no cross-user coordination.
type Cart struct {
	UserID string
	Items  []CartItem
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
