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

// TransferService moves stock between locations. The debit and credit
// commit in one transaction, so every transfer conserves total stock.
type TransferService struct {
	transfers    domain.TransferRepository
	books        domain.BookRepository
	locations    domain.LocationRepository
	ledger       domain.StockLedger
	txn          domain.TxnRunner
	outboxRepo   outbox.Repository
	eventFactory *cloudevents.EventFactory
	logger       *logging.Logger
	metrics      *metrics.Metrics
}

// NewTransferService creates a new TransferService
func NewTransferService(
	transfers domain.TransferRepository,
	books domain.BookRepository,
	locations domain.LocationRepository,
	ledger domain.StockLedger,
	txn domain.TxnRunner,
	outboxRepo outbox.Repository,
	eventFactory *cloudevents.EventFactory,
	logger *logging.Logger,
	m *metrics.Metrics,
) *TransferService {
	return &TransferService{
		transfers:    transfers,
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

// Execute moves quantity units of a book from one active location to
// another. The source is debited before the destination is credited;
// an insufficient source balance aborts the whole movement and neither
// counter changes.
func (s *TransferService) Execute(ctx context.Context, cmd ExecuteTransferCommand) (*TransferDTO, error) {
	transfer, err := domain.NewTransfer(
		uuid.New().String(),
		cmd.BookID,
		cmd.FromLocationID,
		cmd.ToLocationID,
		cmd.Quantity,
		cmd.Note,
		cmd.ExecutedBy,
	)
	if err != nil {
		return nil, mapError(err)
	}

	err = s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.books.FindByBookID(ctx, cmd.BookID); err != nil {
			return err
		}

		for _, locationID := range []string{cmd.FromLocationID, cmd.ToLocationID} {
			location, err := s.locations.FindByLocationID(ctx, locationID)
			if err != nil {
				return err
			}
			if !location.IsActive {
				return domain.ErrLocationInactive
			}
		}

		if _, err := s.ledger.ReserveAndCommit(ctx, cmd.BookID, cmd.FromLocationID, -cmd.Quantity); err != nil {
			return err
		}
		if _, err := s.ledger.ReserveAndCommit(ctx, cmd.BookID, cmd.ToLocationID, cmd.Quantity); err != nil {
			return err
		}

		if err := s.transfers.Save(ctx, transfer); err != nil {
			return err
		}

		event := &domain.TransferExecutedEvent{
			TransferID:     transfer.TransferID,
			BookID:         transfer.BookID,
			FromLocationID: transfer.FromLocationID,
			ToLocationID:   transfer.ToLocationID,
			Quantity:       transfer.Quantity,
			ExecutedAt:     transfer.CreatedAt,
		}
		if err := stageOutboxEvents(ctx, s.outboxRepo, s.eventFactory,
			transfer.TransferID, "Transfer", "transfers/"+transfer.TransferID,
			[]domain.DomainEvent{event}); err != nil {
			return err
		}

		return stageLowStockAlert(ctx, s.ledger, s.outboxRepo, s.eventFactory, cmd.BookID, cmd.FromLocationID)
	})
	if err != nil {
		s.logger.Warn("Transfer failed",
			"bookId", cmd.BookID,
			"from", cmd.FromLocationID,
			"to", cmd.ToLocationID,
			"error", err)
		return nil, mapError(err)
	}

	if s.metrics != nil {
		s.metrics.RecordTransferExecuted()
		s.metrics.RecordStockMovement("transfer", transfer.Quantity)
	}

	s.logger.Info("Transfer executed",
		"transferId", transfer.TransferID,
		"bookId", transfer.BookID,
		"from", transfer.FromLocationID,
		"to", transfer.ToLocationID,
		"quantity", transfer.Quantity)
	return ToTransferDTO(transfer), nil
}

// ListByBook returns movement history for a book, newest first
func (s *TransferService) ListByBook(ctx context.Context, bookID string, limit, offset int) ([]*TransferDTO, error) {
	transfers, err := s.transfers.FindByBook(ctx, bookID, limit, offset)
	if err != nil {
		return nil, mapError(err)
	}
	return toTransferDTOs(transfers), nil
}

// ListByLocation returns movements touching a location as source or
// destination, newest first
func (s *TransferService) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*TransferDTO, error) {
	transfers, err := s.transfers.FindByLocation(ctx, locationID, limit, offset)
	if err != nil {
		return nil, mapError(err)
	}
	return toTransferDTOs(transfers), nil
}

func toTransferDTOs(transfers []*domain.Transfer) []*TransferDTO {
	dtos := make([]*TransferDTO, 0, len(transfers))
	for _, transfer := range transfers {
		dtos = append(dtos, ToTransferDTO(transfer))
	}
	return dtos
}
