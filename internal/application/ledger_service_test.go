package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/bookstore-platform/fulfillment-service/pkg/errors"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

func newLedgerFixture(t *testing.T) (*LedgerService, *fakeStockLedger) {
	t.Helper()

	books := newFakeBookRepository()
	ledger := newFakeStockLedger()

	book, err := domain.NewBook("book-1", "Counted Title", "Author", "isbn-book-1", 9.00)
	require.NoError(t, err)
	require.NoError(t, books.Save(context.Background(), book))

	return NewLedgerService(ledger, books, testLogger(), nil), ledger
}

func TestGetStockNeverCreditedReadsAsZero(t *testing.T) {
	service, _ := newLedgerFixture(t)

	level, err := service.GetStock(context.Background(), "book-1", "loc-anywhere")
	require.NoError(t, err)
	assert.Equal(t, 0, level.Stock)
	assert.Equal(t, "OUT_OF_STOCK", level.Status)
}

func TestGetStockClassification(t *testing.T) {
	service, ledger := newLedgerFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		stock     int
		threshold int
		status    string
	}{
		{"zero stock is out of stock", 0, 5, "OUT_OF_STOCK"},
		{"at threshold is low", 5, 5, "LOW_STOCK"},
		{"below threshold is low", 3, 5, "LOW_STOCK"},
		{"above threshold is in stock", 6, 5, "IN_STOCK"},
		{"zero threshold zero stock", 0, 0, "OUT_OF_STOCK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger.seed("book-1", "loc-1", tt.stock, tt.threshold)

			level, err := service.GetStock(ctx, "book-1", "loc-1")
			require.NoError(t, err)
			assert.Equal(t, tt.status, level.Status)
		})
	}
}

func TestSetThresholdDoesNotTouchBalance(t *testing.T) {
	service, ledger := newLedgerFixture(t)
	ctx := context.Background()

	ledger.seed("book-1", "loc-1", 7, 0)

	level, err := service.SetThreshold(ctx, SetThresholdCommand{
		BookID:     "book-1",
		LocationID: "loc-1",
		Threshold:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, level.Stock)
	assert.Equal(t, 10, level.LowStockThreshold)
	assert.Equal(t, "LOW_STOCK", level.Status)
}

func TestSetThresholdNegativeRejected(t *testing.T) {
	service, _ := newLedgerFixture(t)

	_, err := service.SetThreshold(context.Background(), SetThresholdCommand{
		BookID:     "book-1",
		LocationID: "loc-1",
		Threshold:  -1,
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationError, appErr.Code)
}

func TestSetThresholdUnknownBook(t *testing.T) {
	service, _ := newLedgerFixture(t)

	_, err := service.SetThreshold(context.Background(), SetThresholdCommand{
		BookID:     "book-missing",
		LocationID: "loc-1",
		Threshold:  5,
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestGetAlertsReturnsOnlyRowsAtOrBelowThreshold(t *testing.T) {
	service, ledger := newLedgerFixture(t)

	ledger.seed("book-1", "loc-1", 0, 5)
	ledger.seed("book-1", "loc-2", 5, 5)
	ledger.seed("book-1", "loc-3", 6, 5)

	alerts, err := service.GetAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	statuses := make(map[string]string)
	for _, alert := range alerts {
		statuses[alert.LocationID] = alert.Status
	}
	assert.Equal(t, "OUT_OF_STOCK", statuses["loc-1"])
	assert.Equal(t, "LOW_STOCK", statuses["loc-2"])
}

func TestListByBookRequiresKnownBook(t *testing.T) {
	service, ledger := newLedgerFixture(t)
	ctx := context.Background()

	ledger.seed("book-1", "loc-1", 4, 0)
	ledger.seed("book-1", "loc-2", 9, 0)

	levels, err := service.ListByBook(ctx, "book-1")
	require.NoError(t, err)
	assert.Len(t, levels, 2)

	_, err = service.ListByBook(ctx, "book-missing")
	require.Error(t, err)
}
