package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidReviewAction = errors.New("review action must be approve or reject")

// RequestStatus represents the state of a purchase request.
type RequestStatus string

const (
	RequestStatusDraft           RequestStatus = "DRAFT"
	RequestStatusPendingApproval RequestStatus = "PENDING_APPROVAL"
	RequestStatusApproved        RequestStatus = "APPROVED"
	RequestStatusRejected        RequestStatus = "REJECTED"
	RequestStatusCompleted       RequestStatus = "COMPLETED"
)

// IsValid checks if the status is valid.
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusDraft, RequestStatusPendingApproval, RequestStatusApproved,
		RequestStatusRejected, RequestStatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if the status can transition to another status.
// Transitions are monotonic: DRAFT, REJECTED and COMPLETED are terminal
// except for DRAFT's submission edge.
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	validTransitions := map[RequestStatus][]RequestStatus{
		RequestStatusDraft:           {RequestStatusPendingApproval},
		RequestStatusPendingApproval: {RequestStatusApproved, RequestStatusRejected},
		RequestStatusApproved:        {RequestStatusCompleted},
		RequestStatusRejected:        {},
		RequestStatusCompleted:       {},
	}

	for _, allowed := range validTransitions[s] {
		if target == allowed {
			return true
		}
	}
	return false
}

// ReviewAction is the decision taken on a PENDING_APPROVAL request.
type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "APPROVE"
	ReviewActionReject  ReviewAction = "REJECT"
)

// PurchaseRequest authorizes new stock to enter the ledger from a
// vendor. Review moves no stock; Complete is the single entry point for
// crediting the target warehouse.
type PurchaseRequest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID     string             `bson:"requestId" json:"requestId"`
	BookID        string             `bson:"bookId" json:"bookId"`
	WarehouseID   string             `bson:"warehouseId" json:"warehouseId"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	EstimatedCost *float64           `bson:"estimatedCost,omitempty" json:"estimatedCost,omitempty"`
	Status        RequestStatus      `bson:"status" json:"status"`
	RequestedBy   string             `bson:"requestedBy" json:"requestedBy"`
	ReviewedBy    string             `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ReviewNote    string             `bson:"reviewNote,omitempty" json:"reviewNote,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
	CompletedAt   *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	domainEvents []DomainEvent `bson:"-" json:"-"`
}

// NewPurchaseRequest creates a DRAFT request, advancing immediately to
// PENDING_APPROVAL when submitForApproval is set. Non-positive quantity
// is a validation failure, not a ledger failure.
func NewPurchaseRequest(requestID, bookID, warehouseID string, quantity int, estimatedCost *float64, requestedBy string, submitForApproval bool) (*PurchaseRequest, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	now := time.Now().UTC()
	pr := &PurchaseRequest{
		RequestID:     requestID,
		BookID:        bookID,
		WarehouseID:   warehouseID,
		Quantity:      quantity,
		EstimatedCost: estimatedCost,
		Status:        RequestStatusDraft,
		RequestedBy:   requestedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if submitForApproval {
		if err := pr.Submit(); err != nil {
			return nil, err
		}
	}
	return pr, nil
}

// Submit advances a DRAFT to PENDING_APPROVAL.
func (p *PurchaseRequest) Submit() error {
	if err := p.transition(RequestStatusPendingApproval); err != nil {
		return err
	}
	return nil
}

// Review approves or rejects a PENDING_APPROVAL request. It only
// authorizes fulfillment; no stock moves here.
func (p *PurchaseRequest) Review(action ReviewAction, reviewedBy, note string) error {
	var target RequestStatus
	switch action {
	case ReviewActionApprove:
		target = RequestStatusApproved
	case ReviewActionReject:
		target = RequestStatusRejected
	default:
		return ErrInvalidReviewAction
	}

	if err := p.transition(target); err != nil {
		return err
	}
	p.ReviewedBy = reviewedBy
	p.ReviewNote = note
	return nil
}

// MarkCompleted records fulfillment after the warehouse credit has been
// applied in the same transaction. The transition guard makes
// completion idempotent per request: a second attempt is rejected, not
// re-credited.
func (p *PurchaseRequest) MarkCompleted() error {
	if err := p.transition(RequestStatusCompleted); err != nil {
		return err
	}

	now := time.Now().UTC()
	p.CompletedAt = &now

	p.addDomainEvent(&PurchaseRequestCompletedEvent{
		RequestID:   p.RequestID,
		BookID:      p.BookID,
		WarehouseID: p.WarehouseID,
		Quantity:    p.Quantity,
		CompletedAt: now,
	})
	return nil
}

func (p *PurchaseRequest) transition(target RequestStatus) error {
	if !p.Status.CanTransitionTo(target) {
		return &InvalidTransitionError{Current: p.Status, Attempted: target}
	}
	p.Status = target
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (p *PurchaseRequest) addDomainEvent(event DomainEvent) {
	p.domainEvents = append(p.domainEvents, event)
}

// DomainEvents returns events emitted since the last clear.
func (p *PurchaseRequest) DomainEvents() []DomainEvent {
	return p.domainEvents
}

// ClearDomainEvents drops emitted events after they are captured.
func (p *PurchaseRequest) ClearDomainEvents() {
	p.domainEvents = nil
}
