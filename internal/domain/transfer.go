package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transfer is the immutable audit record of one executed stock
// movement: one row per movement, net effect across its two locations
// summing to zero.
type Transfer struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TransferID     string             `bson:"transferId" json:"transferId"`
	BookID         string             `bson:"bookId" json:"bookId"`
	FromLocationID string             `bson:"fromLocationId" json:"fromLocationId"`
	ToLocationID   string             `bson:"toLocationId" json:"toLocationId"`
	Quantity       int                `bson:"quantity" json:"quantity"`
	Note           string             `bson:"note,omitempty" json:"note,omitempty"`
	ExecutedBy     string             `bson:"executedBy" json:"executedBy"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// NewTransfer validates the movement's shape before any transaction
// opens. Identical source and destination is a validation failure.
func NewTransfer(transferID, bookID, fromLocationID, toLocationID string, quantity int, note, executedBy string) (*Transfer, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if fromLocationID == toLocationID {
		return nil, ErrSameLocation
	}

	return &Transfer{
		TransferID:     transferID,
		BookID:         bookID,
		FromLocationID: fromLocationID,
		ToLocationID:   toLocationID,
		Quantity:       quantity,
		Note:           note,
		ExecutedBy:     executedBy,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
