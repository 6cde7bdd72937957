package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

// StockLedgerRepository implements domain.StockLedger on MongoDB. The
// never-negative invariant is enforced by the database, not by Go code:
// debits are conditional updates that only match rows holding enough
// stock, so concurrent requests race safely.
type StockLedgerRepository struct {
	collection *mongo.Collection
}

func NewStockLedgerRepository(db *mongo.Database) *StockLedgerRepository {
	collection := db.Collection("stock_levels")

	repo := &StockLedgerRepository{
		collection: collection,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *StockLedgerRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "bookId", Value: 1}, {Key: "locationId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "locationId", Value: 1}}},
		{Keys: bson.D{{Key: "stock", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

// ReserveAndCommit applies delta to the (bookID, locationID) counter
// and returns the new balance. A negative delta only succeeds against a
// row holding at least that much stock.
func (r *StockLedgerRepository) ReserveAndCommit(ctx context.Context, bookID, locationID string, delta int) (int, error) {
	if delta < 0 {
		return r.debit(ctx, bookID, locationID, -delta)
	}
	return r.credit(ctx, bookID, locationID, delta)
}

func (r *StockLedgerRepository) debit(ctx context.Context, bookID, locationID string, qty int) (int, error) {
	filter := bson.M{
		"bookId":     bookID,
		"locationId": locationID,
		"stock":      bson.M{"$gte": qty},
	}
	update := bson.M{
		"$inc": bson.M{"stock": -qty},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var level domain.StockLevel
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&level)
	if err == mongo.ErrNoDocuments {
		// Either the row is missing or it holds too little stock.
		// Re-read outside the conditional filter to report availability.
		current, readErr := r.Read(ctx, bookID, locationID)
		if readErr != nil {
			return 0, readErr
		}
		return current.Stock, &domain.InsufficientStockError{
			BookID:     bookID,
			LocationID: locationID,
			Requested:  qty,
			Available:  current.Stock,
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to debit stock: %w", err)
	}

	return level.Stock, nil
}

func (r *StockLedgerRepository) credit(ctx context.Context, bookID, locationID string, qty int) (int, error) {
	filter := bson.M{
		"bookId":     bookID,
		"locationId": locationID,
	}
	update := bson.M{
		"$inc": bson.M{"stock": qty},
		"$set": bson.M{"updatedAt": time.Now()},
		"$setOnInsert": bson.M{
			"lowStockThreshold": 0,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var level domain.StockLevel
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&level); err != nil {
		return 0, fmt.Errorf("failed to credit stock: %w", err)
	}

	return level.Stock, nil
}

// Read returns a snapshot of the counter. A row that was never credited
// reads as zero stock.
func (r *StockLedgerRepository) Read(ctx context.Context, bookID, locationID string) (*domain.StockLevel, error) {
	filter := bson.M{"bookId": bookID, "locationId": locationID}

	var level domain.StockLevel
	err := r.collection.FindOne(ctx, filter).Decode(&level)
	if err == mongo.ErrNoDocuments {
		return &domain.StockLevel{
			BookID:     bookID,
			LocationID: locationID,
			Stock:      0,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stock level: %w", err)
	}

	return &level, nil
}

// SetThreshold upserts the low-stock threshold without touching the
// balance.
func (r *StockLedgerRepository) SetThreshold(ctx context.Context, bookID, locationID string, threshold int) error {
	filter := bson.M{"bookId": bookID, "locationId": locationID}
	update := bson.M{
		"$set": bson.M{
			"lowStockThreshold": threshold,
			"updatedAt":         time.Now(),
		},
		"$setOnInsert": bson.M{
			"stock": 0,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to set threshold: %w", err)
	}

	return nil
}

func (r *StockLedgerRepository) FindByBook(ctx context.Context, bookID string) ([]*domain.StockLevel, error) {
	return r.findLevels(ctx, bson.M{"bookId": bookID})
}

func (r *StockLedgerRepository) FindByLocation(ctx context.Context, locationID string) ([]*domain.StockLevel, error) {
	return r.findLevels(ctx, bson.M{"locationId": locationID})
}

func (r *StockLedgerRepository) findLevels(ctx context.Context, filter bson.M) ([]*domain.StockLevel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "bookId", Value: 1}, {Key: "locationId", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find stock levels: %w", err)
	}
	defer cursor.Close(ctx)

	var levels []*domain.StockLevel
	if err := cursor.All(ctx, &levels); err != nil {
		return nil, fmt.Errorf("failed to decode stock levels: %w", err)
	}

	return levels, nil
}

// FindAlerts returns every counter at or below its threshold,
// classified on read.
func (r *StockLedgerRepository) FindAlerts(ctx context.Context) ([]*domain.StockAlert, error) {
	filter := bson.M{
		"$expr": bson.M{
			"$lte": bson.A{"$stock", "$lowStockThreshold"},
		},
	}

	levels, err := r.findLevels(ctx, filter)
	if err != nil {
		return nil, err
	}

	alerts := make([]*domain.StockAlert, 0, len(levels))
	for _, level := range levels {
		alerts = append(alerts, &domain.StockAlert{
			BookID:            level.BookID,
			LocationID:        level.LocationID,
			Stock:             level.Stock,
			LowStockThreshold: level.LowStockThreshold,
			Status:            level.Status(),
		})
	}

	return alerts, nil
}
