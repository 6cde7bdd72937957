package application

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/bookstore-platform/fulfillment-service/pkg/cloudevents"
	"github.com/bookstore-platform/fulfillment-service/pkg/logging"
	"github.com/bookstore-platform/fulfillment-service/pkg/outbox"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

func testLogger() *logging.Logger {
	return logging.New(&logging.Config{
		Level:       logging.LevelError,
		ServiceName: "test",
		Output:      io.Discard,
	})
}

func testEventFactory() *cloudevents.EventFactory {
	return cloudevents.NewEventFactory("fulfillment-service-test")
}

// fakeTxnRunner serializes transactions with a mutex and rolls the
// ledger back when fn fails, mirroring the storage transaction
// contract closely enough for atomicity assertions.
type fakeTxnRunner struct {
	mu     sync.Mutex
	ledger *fakeStockLedger
}

func (r *fakeTxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var snapshot map[string]domain.StockLevel
	if r.ledger != nil {
		snapshot = r.ledger.snapshot()
	}
	if err := fn(ctx); err != nil {
		if r.ledger != nil {
			r.ledger.restore(snapshot)
		}
		return err
	}
	return nil
}

type fakeStockLedger struct {
	mu     sync.Mutex
	levels map[string]domain.StockLevel
}

func newFakeStockLedger() *fakeStockLedger {
	return &fakeStockLedger{levels: make(map[string]domain.StockLevel)}
}

func ledgerKey(bookID, locationID string) string {
	return bookID + "|" + locationID
}

func (l *fakeStockLedger) seed(bookID, locationID string, stock, threshold int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.levels[ledgerKey(bookID, locationID)] = domain.StockLevel{
		BookID:            bookID,
		LocationID:        locationID,
		Stock:             stock,
		LowStockThreshold: threshold,
	}
}

func (l *fakeStockLedger) snapshot() map[string]domain.StockLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]domain.StockLevel, len(l.levels))
	for k, v := range l.levels {
		out[k] = v
	}
	return out
}

func (l *fakeStockLedger) restore(snapshot map[string]domain.StockLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.levels = make(map[string]domain.StockLevel, len(snapshot))
	for k, v := range snapshot {
		l.levels[k] = v
	}
}

func (l *fakeStockLedger) ReserveAndCommit(ctx context.Context, bookID, locationID string, delta int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := ledgerKey(bookID, locationID)
	level, ok := l.levels[key]
	if !ok {
		level = domain.StockLevel{BookID: bookID, LocationID: locationID}
	}

	next := level.Stock + delta
	if next < 0 {
		return 0, &domain.InsufficientStockError{
			BookID:     bookID,
			LocationID: locationID,
			Requested:  -delta,
			Available:  level.Stock,
		}
	}

	level.Stock = next
	l.levels[key] = level
	return next, nil
}

func (l *fakeStockLedger) Read(ctx context.Context, bookID, locationID string) (*domain.StockLevel, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level, ok := l.levels[ledgerKey(bookID, locationID)]; ok {
		copied := level
		return &copied, nil
	}
	return &domain.StockLevel{BookID: bookID, LocationID: locationID}, nil
}

func (l *fakeStockLedger) SetThreshold(ctx context.Context, bookID, locationID string, threshold int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := ledgerKey(bookID, locationID)
	level, ok := l.levels[key]
	if !ok {
		level = domain.StockLevel{BookID: bookID, LocationID: locationID}
	}
	level.LowStockThreshold = threshold
	l.levels[key] = level
	return nil
}

func (l *fakeStockLedger) FindByBook(ctx context.Context, bookID string) ([]*domain.StockLevel, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []*domain.StockLevel
	for _, level := range l.levels {
		if level.BookID == bookID {
			copied := level
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (l *fakeStockLedger) FindByLocation(ctx context.Context, locationID string) ([]*domain.StockLevel, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []*domain.StockLevel
	for _, level := range l.levels {
		if level.LocationID == locationID {
			copied := level
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (l *fakeStockLedger) FindAlerts(ctx context.Context) ([]*domain.StockAlert, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []*domain.StockAlert
	for _, level := range l.levels {
		if level.Stock <= level.LowStockThreshold {
			out = append(out, &domain.StockAlert{
				BookID:            level.BookID,
				LocationID:        level.LocationID,
				Stock:             level.Stock,
				LowStockThreshold: level.LowStockThreshold,
				Status:            level.Status(),
			})
		}
	}
	return out, nil
}

type fakeBookRepository struct {
	mu    sync.Mutex
	books map[string]*domain.Book
}

func newFakeBookRepository() *fakeBookRepository {
	return &fakeBookRepository{books: make(map[string]*domain.Book)}
}

func (r *fakeBookRepository) Save(ctx context.Context, book *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.books {
		if existing.ISBN == book.ISBN && existing.BookID != book.BookID {
			return domain.ErrDuplicateISBN
		}
	}
	copied := *book
	r.books[book.BookID] = &copied
	return nil
}

func (r *fakeBookRepository) FindByBookID(ctx context.Context, bookID string) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	book, ok := r.books[bookID]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (r *fakeBookRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Book
	for _, book := range r.books {
		copied := *book
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return paginate(out, limit, offset), nil
}

func (r *fakeBookRepository) Delete(ctx context.Context, bookID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[bookID]; !ok {
		return domain.ErrBookNotFound
	}
	delete(r.books, bookID)
	return nil
}

type fakeLocationRepository struct {
	mu        sync.Mutex
	locations map[string]*domain.Location
}

func newFakeLocationRepository() *fakeLocationRepository {
	return &fakeLocationRepository{locations: make(map[string]*domain.Location)}
}

func (r *fakeLocationRepository) Save(ctx context.Context, location *domain.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.locations {
		if existing.Code == location.Code && existing.LocationID != location.LocationID {
			return domain.ErrDuplicateCode
		}
	}
	copied := *location
	r.locations[location.LocationID] = &copied
	return nil
}

func (r *fakeLocationRepository) FindByLocationID(ctx context.Context, locationID string) (*domain.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	location, ok := r.locations[locationID]
	if !ok {
		return nil, domain.ErrLocationNotFound
	}
	copied := *location
	return &copied, nil
}

func (r *fakeLocationRepository) FindByCode(ctx context.Context, code string) (*domain.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, location := range r.locations {
		if location.Code == code {
			copied := *location
			return &copied, nil
		}
	}
	return nil, domain.ErrLocationNotFound
}

func (r *fakeLocationRepository) FindAll(ctx context.Context) ([]*domain.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Location
	for _, location := range r.locations {
		copied := *location
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

type fakeCartRepository struct {
	mu    sync.Mutex
	carts map[string]map[string]*domain.CartItem
}

func newFakeCartRepository() *fakeCartRepository {
	return &fakeCartRepository{carts: make(map[string]map[string]*domain.CartItem)}
}

func (r *fakeCartRepository) SaveItem(ctx context.Context, item *domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.carts[item.UserID] == nil {
		r.carts[item.UserID] = make(map[string]*domain.CartItem)
	}
	copied := *item
	r.carts[item.UserID][item.BookID] = &copied
	return nil
}

func (r *fakeCartRepository) FindCart(ctx context.Context, userID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart := &domain.Cart{UserID: userID}
	for _, item := range r.carts[userID] {
		cart.Items = append(cart.Items, *item)
	}
	sort.Slice(cart.Items, func(i, j int) bool { return cart.Items[i].BookID < cart.Items[j].BookID })
	return cart, nil
}

func (r *fakeCartRepository) RemoveItem(ctx context.Context, userID, bookID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.carts[userID]
	if _, ok := items[bookID]; !ok {
		return domain.ErrCartItemNotFound
	}
	delete(items, bookID)
	return nil
}

func (r *fakeCartRepository) Clear(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}

type fakeOrderRepository struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{orders: make(map[string]*domain.Order)}
}

func (r *fakeOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *order
	r.orders[order.OrderID] = &copied
	return nil
}

func (r *fakeOrderRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepository) FindByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			copied := *order
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *fakeOrderRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type fakePurchaseRequestRepository struct {
	mu       sync.Mutex
	requests map[string]*domain.PurchaseRequest
}

func newFakePurchaseRequestRepository() *fakePurchaseRequestRepository {
	return &fakePurchaseRequestRepository{requests: make(map[string]*domain.PurchaseRequest)}
}

func (r *fakePurchaseRequestRepository) Save(ctx context.Context, request *domain.PurchaseRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *request
	copied.ClearDomainEvents()
	r.requests[request.RequestID] = &copied
	return nil
}

func (r *fakePurchaseRequestRepository) FindByRequestID(ctx context.Context, requestID string) (*domain.PurchaseRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *fakePurchaseRequestRepository) FindByStatus(ctx context.Context, status domain.RequestStatus, limit, offset int) ([]*domain.PurchaseRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.PurchaseRequest
	for _, request := range r.requests {
		if request.Status == status {
			copied := *request
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

type fakeTransferRepository struct {
	mu        sync.Mutex
	transfers []*domain.Transfer
}

func newFakeTransferRepository() *fakeTransferRepository {
	return &fakeTransferRepository{}
}

func (r *fakeTransferRepository) Save(ctx context.Context, transfer *domain.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *transfer
	r.transfers = append(r.transfers, &copied)
	return nil
}

func (r *fakeTransferRepository) FindByBook(ctx context.Context, bookID string, limit, offset int) ([]*domain.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Transfer
	for _, transfer := range r.transfers {
		if transfer.BookID == bookID {
			copied := *transfer
			out = append(out, &copied)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *fakeTransferRepository) FindByLocation(ctx context.Context, locationID string, limit, offset int) ([]*domain.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Transfer
	for _, transfer := range r.transfers {
		if transfer.FromLocationID == locationID || transfer.ToLocationID == locationID {
			copied := *transfer
			out = append(out, &copied)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *fakeTransferRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.transfers)
}

type fakeOutboxRepository struct {
	mu     sync.Mutex
	events []*outbox.OutboxEvent
}

func newFakeOutboxRepository() *fakeOutboxRepository {
	return &fakeOutboxRepository{}
}

func (r *fakeOutboxRepository) Save(ctx context.Context, event *outbox.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *fakeOutboxRepository) SaveAll(ctx context.Context, events []*outbox.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return nil
}

func (r *fakeOutboxRepository) FindUnpublished(ctx context.Context, limit int) ([]*outbox.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*outbox.OutboxEvent
	for _, event := range r.events {
		if !event.IsPublished() {
			out = append(out, event)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeOutboxRepository) MarkPublished(ctx context.Context, eventID string) error {
	return nil
}

func (r *fakeOutboxRepository) IncrementRetry(ctx context.Context, eventID string, errorMsg string) error {
	return nil
}

func (r *fakeOutboxRepository) DeletePublished(ctx context.Context, olderThan int64) error {
	return nil
}

func (r *fakeOutboxRepository) FindByAggregateID(ctx context.Context, aggregateID string) ([]*outbox.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*outbox.OutboxEvent
	for _, event := range r.events {
		if event.AggregateID == aggregateID {
			out = append(out, event)
		}
	}
	return out, nil
}

func (r *fakeOutboxRepository) eventTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, event := range r.events {
		out = append(out, event.EventType)
	}
	return out
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
