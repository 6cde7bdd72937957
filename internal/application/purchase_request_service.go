package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookstore-platform/fulfillment-service/pkg/cloudevents"
	"github.com/bookstore-platform/fulfillment-service/pkg/logging"
	"github.com/bookstore-platform/fulfillment-service/pkg/metrics"
	"github.com/bookstore-platform/fulfillment-service/pkg/outbox"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

// PurchaseRequestService drives the restock approval workflow. Only
// Complete touches the ledger; Create, Submit and Review move the
// request through its states without any stock effect.
type PurchaseRequestService struct {
	requests     domain.PurchaseRequestRepository
	books        domain.BookRepository
	locations    domain.LocationRepository
	ledger       domain.StockLedger
	txn          domain.TxnRunner
	outboxRepo   outbox.Repository
	eventFactory *cloudevents.EventFactory
	logger       *logging.Logger
	metrics      *metrics.Metrics
}

// NewPurchaseRequestService creates a new PurchaseRequestService
func NewPurchaseRequestService(
	requests domain.PurchaseRequestRepository,
	books domain.BookRepository,
	locations domain.LocationRepository,
	ledger domain.StockLedger,
	txn domain.TxnRunner,
	outboxRepo outbox.Repository,
	eventFactory *cloudevents.EventFactory,
	logger *logging.Logger,
	m *metrics.Metrics,
) *PurchaseRequestService {
	return &PurchaseRequestService{
		requests:     requests,
		books:        books,
		locations:    locations,
		ledger:       ledger,
		txn:          txn,
		outboxRepo:   outboxRepo,
		eventFactory: eventFactory,
		logger:       logger,
		metrics:      m,
	}
}

// Create registers a restock request for a book at a warehouse. The
// book and warehouse must exist and the warehouse must be a WAREHOUSE
// type location; with cmd.Submit the request lands directly in
// PENDING_APPROVAL.
func (s *PurchaseRequestService) Create(ctx context.Context, cmd CreatePurchaseRequestCommand) (*PurchaseRequestDTO, error) {
	if _, err := s.books.FindByBookID(ctx, cmd.BookID); err != nil {
		return nil, mapError(err)
	}

	warehouse, err := s.locations.FindByLocationID(ctx, cmd.WarehouseID)
	if err != nil {
		return nil, mapError(err)
	}
	if warehouse.Type != domain.LocationTypeWarehouse {
		return nil, mapError(domain.ErrInvalidLocationType)
	}

	request, err := domain.NewPurchaseRequest(
		uuid.New().String(),
		cmd.BookID,
		cmd.WarehouseID,
		cmd.Quantity,
		cmd.EstimatedCost,
		cmd.RequestedBy,
		cmd.Submit,
	)
	if err != nil {
		return nil, mapError(err)
	}

	if err := s.requests.Save(ctx, request); err != nil {
		return nil, mapError(err)
	}

	s.logger.Info("Purchase request created",
		"requestId", request.RequestID,
		"bookId", request.BookID,
		"warehouseId", request.WarehouseID,
		"status", string(request.Status))
	return ToPurchaseRequestDTO(request), nil
}

// Submit advances a DRAFT request to PENDING_APPROVAL.
func (s *PurchaseRequestService) Submit(ctx context.Context, cmd SubmitPurchaseRequestCommand) (*PurchaseRequestDTO, error) {
	request, err := s.requests.FindByRequestID(ctx, cmd.RequestID)
	if err != nil {
		return nil, mapError(err)
	}

	if err := request.Submit(); err != nil {
		return nil, mapError(err)
	}

	if err := s.requests.Save(ctx, request); err != nil {
		return nil, mapError(err)
	}

	s.logger.Info("Purchase request submitted", "requestId", request.RequestID)
	return ToPurchaseRequestDTO(request), nil
}

// Review approves or rejects a PENDING_APPROVAL request. Approval
// authorizes fulfillment but moves no stock.
func (s *PurchaseRequestService) Review(ctx context.Context, cmd ReviewPurchaseRequestCommand) (*PurchaseRequestDTO, error) {
	request, err := s.requests.FindByRequestID(ctx, cmd.RequestID)
	if err != nil {
		return nil, mapError(err)
	}

	if err := request.Review(domain.ReviewAction(cmd.Action), cmd.ReviewedBy, cmd.Note); err != nil {
		return nil, mapError(err)
	}

	if err := s.requests.Save(ctx, request); err != nil {
		return nil, mapError(err)
	}

	s.logger.Info("Purchase request reviewed",
		"requestId", request.RequestID,
		"action", cmd.Action,
		"reviewedBy", cmd.ReviewedBy)
	return ToPurchaseRequestDTO(request), nil
}

// Complete fulfills an APPROVED request: the warehouse credit and the
// COMPLETED transition commit in one transaction. The transition guard
// rejects a replayed completion, so the credit can never apply twice.
func (s *PurchaseRequestService) Complete(ctx context.Context, cmd CompletePurchaseRequestCommand) (*PurchaseRequestDTO, error) {
	var request *domain.PurchaseRequest

	err := s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.requests.FindByRequestID(ctx, cmd.RequestID)
		if err != nil {
			return err
		}

		// Transition first: a replayed completion must fail on the
		// state machine even if the warehouse has since changed.
		if err := request.MarkCompleted(); err != nil {
			return err
		}

		warehouse, err := s.locations.FindByLocationID(ctx, request.WarehouseID)
		if err != nil {
			return err
		}
		if !warehouse.IsActive {
			return domain.ErrLocationInactive
		}

		if _, err := s.ledger.ReserveAndCommit(ctx, request.BookID, request.WarehouseID, request.Quantity); err != nil {
			return err
		}

		if err := s.requests.Save(ctx, request); err != nil {
			return err
		}

		if err := stageOutboxEvents(ctx, s.outboxRepo, s.eventFactory,
			request.RequestID, "PurchaseRequest", "purchase-requests/"+request.RequestID,
			request.DomainEvents()); err != nil {
			return err
		}
		request.ClearDomainEvents()
		return nil
	})
	if err != nil {
		s.logger.Warn("Purchase request completion failed", "requestId", cmd.RequestID, "error", err)
		return nil, mapError(err)
	}

	if s.metrics != nil {
		s.metrics.RecordPurchaseRequestCompleted()
		s.metrics.RecordStockMovement("restock", request.Quantity)
	}

	s.logger.Info("Purchase request completed",
		"requestId", request.RequestID,
		"warehouseId", request.WarehouseID,
		"quantity", request.Quantity)
	return ToPurchaseRequestDTO(request), nil
}

// GetRequest retrieves a purchase request by ID
func (s *PurchaseRequestService) GetRequest(ctx context.Context, requestID string) (*PurchaseRequestDTO, error) {
	request, err := s.requests.FindByRequestID(ctx, requestID)
	if err != nil {
		return nil, mapError(err)
	}
	return ToPurchaseRequestDTO(request), nil
}

// ListByStatus lists requests in a given state, newest first
func (s *PurchaseRequestService) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*PurchaseRequestDTO, error) {
	requestStatus := domain.RequestStatus(status)
	if !requestStatus.IsValid() {
		return nil, mapError(domain.ErrInvalidRequestStatus)
	}

	requests, err := s.requests.FindByStatus(ctx, requestStatus, limit, offset)
	if err != nil {
		return nil, mapError(err)
	}

	dtos := make([]*PurchaseRequestDTO, 0, len(requests))
	for _, request := range requests {
		dtos = append(dtos, ToPurchaseRequestDTO(request))
	}
	return dtos, nil
}
