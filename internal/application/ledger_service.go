package application

import (
	"context"

	"github.com/bookstore-platform/fulfillment-service/pkg/logging"
	"github.com/bookstore-platform/fulfillment-service/pkg/metrics"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

// LedgerService exposes read access to stock counters and threshold
// management. Availability status is computed on read, never stored.
type LedgerService struct {
	ledger  domain.StockLedger
	books   domain.BookRepository
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	ledger domain.StockLedger,
	books domain.BookRepository,
	logger *logging.Logger,
	m *metrics.Metrics,
) *LedgerService {
	return &LedgerService{
		ledger:  ledger,
		books:   books,
		logger:  logger,
		metrics: m,
	}
}

// GetStock returns the counter for one (book, location) pair. A pair
// that was never credited reads as zero stock with OUT_OF_STOCK status.
func (s *LedgerService) GetStock(ctx context.Context, bookID, locationID string) (*StockLevelDTO, error) {
	level, err := s.ledger.Read(ctx, bookID, locationID)
	if err != nil {
		return nil, mapError(err)
	}
	return ToStockLevelDTO(level), nil
}

// ListByBook returns all counters for a book across locations
func (s *LedgerService) ListByBook(ctx context.Context, bookID string) ([]*StockLevelDTO, error) {
	if _, err := s.books.FindByBookID(ctx, bookID); err != nil {
		return nil, mapError(err)
	}

	levels, err := s.ledger.FindByBook(ctx, bookID)
	if err != nil {
		return nil, mapError(err)
	}
	return toStockLevelDTOs(levels), nil
}

// ListByLocation returns all counters held at a location
func (s *LedgerService) ListByLocation(ctx context.Context, locationID string) ([]*StockLevelDTO, error) {
	levels, err := s.ledger.FindByLocation(ctx, locationID)
	if err != nil {
		return nil, mapError(err)
	}
	return toStockLevelDTOs(levels), nil
}

// SetThreshold configures the low-stock threshold for a counter
func (s *LedgerService) SetThreshold(ctx context.Context, cmd SetThresholdCommand) (*StockLevelDTO, error) {
	if cmd.Threshold < 0 {
		return nil, mapError(domain.ErrInvalidThreshold)
	}

	if _, err := s.books.FindByBookID(ctx, cmd.BookID); err != nil {
		return nil, mapError(err)
	}

	if err := s.ledger.SetThreshold(ctx, cmd.BookID, cmd.LocationID, cmd.Threshold); err != nil {
		return nil, mapError(err)
	}

	level, err := s.ledger.Read(ctx, cmd.BookID, cmd.LocationID)
	if err != nil {
		return nil, mapError(err)
	}

	s.logger.Info("Low-stock threshold set",
		"bookId", cmd.BookID,
		"locationId", cmd.LocationID,
		"threshold", cmd.Threshold)
	return ToStockLevelDTO(level), nil
}

// GetAlerts returns every counter at or below its threshold, with the
// status classified at read time
func (s *LedgerService) GetAlerts(ctx context.Context) ([]*StockAlertDTO, error) {
	alerts, err := s.ledger.FindAlerts(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	if s.metrics != nil {
		s.metrics.SetLowStockAlerts(len(alerts))
	}

	dtos := make([]*StockAlertDTO, 0, len(alerts))
	for _, alert := range alerts {
		dtos = append(dtos, ToStockAlertDTO(alert))
	}
	return dtos, nil
}

func toStockLevelDTOs(levels []*domain.StockLevel) []*StockLevelDTO {
	dtos := make([]*StockLevelDTO, 0, len(levels))
	for _, level := range levels {
		dtos = append(dtos, ToStockLevelDTO(level))
	}
	return dtos
}
