package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/bookstore-platform/fulfillment-service/pkg/errors"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

type purchaseRequestFixture struct {
	service   *PurchaseRequestService
	requests  *fakePurchaseRequestRepository
	ledger    *fakeStockLedger
	outbox    *fakeOutboxRepository
	locations *fakeLocationRepository
	warehouse *domain.Location
}

func newPurchaseRequestFixture(t *testing.T) *purchaseRequestFixture {
	t.Helper()

	requests := newFakePurchaseRequestRepository()
	books := newFakeBookRepository()
	locations := newFakeLocationRepository()
	ledger := newFakeStockLedger()
	outboxRepo := newFakeOutboxRepository()
	txn := &fakeTxnRunner{ledger: ledger}

	warehouse, err := domain.NewLocation("loc-warehouse", "WH-MAIN", "Main Warehouse", domain.LocationTypeWarehouse)
	require.NoError(t, err)
	require.NoError(t, locations.Save(context.Background(), warehouse))

	book, err := domain.NewBook("book-1", "Restock Title", "Author", "isbn-book-1", 15.00)
	require.NoError(t, err)
	require.NoError(t, books.Save(context.Background(), book))

	service := NewPurchaseRequestService(requests, books, locations, ledger, txn,
		outboxRepo, testEventFactory(), testLogger(), nil)

	return &purchaseRequestFixture{
		service:   service,
		requests:  requests,
		ledger:    ledger,
		outbox:    outboxRepo,
		locations: locations,
		warehouse: warehouse,
	}
}

func (f *purchaseRequestFixture) create(t *testing.T, quantity int, submit bool) *PurchaseRequestDTO {
	t.Helper()
	dto, err := f.service.Create(context.Background(), CreatePurchaseRequestCommand{
		BookID:      "book-1",
		WarehouseID: f.warehouse.LocationID,
		Quantity:    quantity,
		RequestedBy: "user-req",
		Submit:      submit,
	})
	require.NoError(t, err)
	return dto
}

func (f *purchaseRequestFixture) approve(t *testing.T, requestID string) {
	t.Helper()
	_, err := f.service.Review(context.Background(), ReviewPurchaseRequestCommand{
		RequestID:  requestID,
		Action:     string(domain.ReviewActionApprove),
		ReviewedBy: "user-mgr",
	})
	require.NoError(t, err)
}

func TestPurchaseRequestLifecycle(t *testing.T) {
	f := newPurchaseRequestFixture(t)
	ctx := context.Background()

	dto := f.create(t, 10, false)
	assert.Equal(t, "DRAFT", dto.Status)

	// Creation and submission move no stock.
	level, err := f.ledger.Read(ctx, "book-1", f.warehouse.LocationID)
	require.NoError(t, err)
	assert.Equal(t, 0, level.Stock)

	dto, err = f.service.Submit(ctx, SubmitPurchaseRequestCommand{RequestID: dto.RequestID, UserID: "user-req"})
	require.NoError(t, err)
	assert.Equal(t, "PENDING_APPROVAL", dto.Status)

	dto, err = f.service.Review(ctx, ReviewPurchaseRequestCommand{
		RequestID:  dto.RequestID,
		Action:     string(domain.ReviewActionApprove),
		ReviewedBy: "user-mgr",
		Note:       "restock before launch",
	})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", dto.Status)
	assert.Equal(t, "user-mgr", dto.ReviewedBy)

	// Approval authorizes the credit but does not apply it.
	level, err = f.ledger.Read(ctx, "book-1", f.warehouse.LocationID)
	require.NoError(t, err)
	assert.Equal(t, 0, level.Stock)

	dto, err = f.service.Complete(ctx, CompletePurchaseRequestCommand{RequestID: dto.RequestID, UserID: "user-ops"})
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", dto.Status)
	assert.NotNil(t, dto.CompletedAt)

	level, err = f.ledger.Read(ctx, "book-1", f.warehouse.LocationID)
	require.NoError(t, err)
	assert.Equal(t, 10, level.Stock)

	assert.Equal(t, []string{"bookstore.purchase-request.completed"}, f.outbox.eventTypes())
}

func TestPurchaseRequestCreateSubmitted(t *testing.T) {
	f := newPurchaseRequestFixture(t)

	dto := f.create(t, 5, true)
	assert.Equal(t, "PENDING_APPROVAL", dto.Status)
}

func TestPurchaseRequestDraftCannotBeApproved(t *testing.T) {
	f := newPurchaseRequestFixture(t)

	dto := f.create(t, 5, false)

	_, err := f.service.Review(context.Background(), ReviewPurchaseRequestCommand{
		RequestID:  dto.RequestID,
		Action:     string(domain.ReviewActionApprove),
		ReviewedBy: "user-mgr",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)
	assert.Equal(t, "DRAFT", appErr.Details["current"])
}

func TestPurchaseRequestRejectedIsTerminal(t *testing.T) {
	f := newPurchaseRequestFixture(t)
	ctx := context.Background()

	dto := f.create(t, 5, true)
	dto, err := f.service.Review(ctx, ReviewPurchaseRequestCommand{
		RequestID:  dto.RequestID,
		Action:     string(domain.ReviewActionReject),
		ReviewedBy: "user-mgr",
		Note:       "budget freeze",
	})
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", dto.Status)

	_, err = f.service.Complete(ctx, CompletePurchaseRequestCommand{RequestID: dto.RequestID, UserID: "user-ops"})
	require.Error(t, err)
	assert.True(t, domain.IsInvalidTransition(err))

	level, err := f.ledger.Read(ctx, "book-1", f.warehouse.LocationID)
	require.NoError(t, err)
	assert.Equal(t, 0, level.Stock)
}

func TestPurchaseRequestSecondCompletionRejected(t *testing.T) {
	f := newPurchaseRequestFixture(t)
	ctx := context.Background()

	dto := f.create(t, 10, true)
	f.approve(t, dto.RequestID)

	first, err := f.service.Complete(ctx, CompletePurchaseRequestCommand{RequestID: dto.RequestID, UserID: "user-ops"})
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", first.Status)

	_, err = f.service.Complete(ctx, CompletePurchaseRequestCommand{RequestID: dto.RequestID, UserID: "user-ops"})
	require.Error(t, err)
	assert.True(t, domain.IsInvalidTransition(err))

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)
	assert.Equal(t, "COMPLETED", appErr.Details["current"])

	// The replay credited nothing and emitted nothing.
	level, err := f.ledger.Read(ctx, "book-1", f.warehouse.LocationID)
	require.NoError(t, err)
	assert.Equal(t, 10, level.Stock)
	assert.Len(t, f.outbox.eventTypes(), 1)
}

func TestPurchaseRequestCompleteInactiveWarehouse(t *testing.T) {
	f := newPurchaseRequestFixture(t)
	ctx := context.Background()

	dto := f.create(t, 10, true)
	f.approve(t, dto.RequestID)

	f.warehouse.Deactivate()
	require.NoError(t, f.locations.Save(ctx, f.warehouse))

	_, err := f.service.Complete(ctx, CompletePurchaseRequestCommand{RequestID: dto.RequestID, UserID: "user-ops"})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationError, appErr.Code)

	level, err := f.ledger.Read(ctx, "book-1", f.warehouse.LocationID)
	require.NoError(t, err)
	assert.Equal(t, 0, level.Stock)
}

func TestPurchaseRequestRejectsStoreLocation(t *testing.T) {
	f := newPurchaseRequestFixture(t)
	ctx := context.Background()

	store, err := domain.NewLocation("loc-store", "STORE-1", "Downtown Store", domain.LocationTypeStore)
	require.NoError(t, err)
	require.NoError(t, f.locations.Save(ctx, store))

	_, err = f.service.Create(ctx, CreatePurchaseRequestCommand{
		BookID:      "book-1",
		WarehouseID: store.LocationID,
		Quantity:    5,
		RequestedBy: "user-req",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationError, appErr.Code)
}

func TestPurchaseRequestInvalidQuantity(t *testing.T) {
	f := newPurchaseRequestFixture(t)

	_, err := f.service.Create(context.Background(), CreatePurchaseRequestCommand{
		BookID:      "book-1",
		WarehouseID: f.warehouse.LocationID,
		Quantity:    0,
		RequestedBy: "user-req",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationError, appErr.Code)
}

func TestPurchaseRequestListByStatus(t *testing.T) {
	f := newPurchaseRequestFixture(t)
	ctx := context.Background()

	f.create(t, 5, false)
	f.create(t, 6, true)
	f.create(t, 7, true)

	pending, err := f.service.ListByStatus(ctx, "PENDING_APPROVAL", 10, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	drafts, err := f.service.ListByStatus(ctx, "DRAFT", 10, 0)
	require.NoError(t, err)
	assert.Len(t, drafts, 1)

	_, err = f.service.ListByStatus(ctx, "SHIPPED", 10, 0)
	require.Error(t, err)
}
