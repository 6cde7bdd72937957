package domain

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrMissingLocationCode = errors.New("location code is required")
	ErrMissingLocationName = errors.New("location name is required")
	ErrInvalidLocationType = errors.New("invalid location type")
)

// LocationType distinguishes warehouses from customer-facing stores.
type LocationType string

const (
	LocationTypeWarehouse LocationType = "warehouse"
	LocationTypeStore     LocationType = "store"
)

// IsValid checks if the location type is valid.
func (t LocationType) IsValid() bool {
	switch t {
	case LocationTypeWarehouse, LocationTypeStore:
		return true
	default:
		return false
	}
}

// WebstoreCode is the code of the designated sellable location. Checkout
// debits this location's stock level; there is no separate global
// sellable counter.
const WebstoreCode = "WEBSTORE"

// Location is a physical or virtual stock-holding site.
type Location struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LocationID string            `bson:"locationId" json:"locationId"`
	Code      string             `bson:"code" json:"code"`
	Name      string             `bson:"name" json:"name"`
	Type      LocationType       `bson:"type" json:"type"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewLocation creates an active location after shape validation.
func NewLocation(locationID, code, name string, locType LocationType) (*Location, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrMissingLocationCode
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrMissingLocationName
	}
	if !locType.IsValid() {
		return nil, ErrInvalidLocationType
	}

	now := time.Now().UTC()
	return &Location{
		LocationID: locationID,
		Code:       strings.ToUpper(code),
		Name:       name,
		Type:       locType,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Deactivate marks the location unusable for transfers and purchase
// request fulfillment. Stock levels it holds remain readable.
func (l *Location) Deactivate() {
	l.IsActive = false
	l.UpdatedAt = time.Now().UTC()
}

// Activate re-enables the location.
func (l *Location) Activate() {
	l.IsActive = true
	l.UpdatedAt = time.Now().UTC()
}
