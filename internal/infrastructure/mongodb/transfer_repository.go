package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

// TransferRepository appends immutable movement records. Transfers are
// never updated after insert.
type TransferRepository struct {
	collection *mongo.Collection
}

func NewTransferRepository(db *mongo.Database) *TransferRepository {
	collection := db.Collection("transfers")

	repo := &TransferRepository{
		collection: collection,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *TransferRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "transferId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "fromLocationId", Value: 1}}},
		{Keys: bson.D{{Key: "toLocationId", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *TransferRepository) Save(ctx context.Context, transfer *domain.Transfer) error {
	if _, err := r.collection.InsertOne(ctx, transfer); err != nil {
		return fmt.Errorf("failed to save transfer: %w", err)
	}
	return nil
}

func (r *TransferRepository) FindByBook(ctx context.Context, bookID string, limit, offset int) ([]*domain.Transfer, error) {
	return r.find(ctx, bson.M{"bookId": bookID}, limit, offset)
}

func (r *TransferRepository) FindByLocation(ctx context.Context, locationID string, limit, offset int) ([]*domain.Transfer, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"fromLocationId": locationID},
			{"toLocationId": locationID},
		},
	}
	return r.find(ctx, filter, limit, offset)
}

func (r *TransferRepository) find(ctx context.Context, filter bson.M, limit, offset int) ([]*domain.Transfer, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find transfers: %w", err)
	}
	defer cursor.Close(ctx)

	var transfers []*domain.Transfer
	if err := cursor.All(ctx, &transfers); err != nil {
		return nil, fmt.Errorf("failed to decode transfers: %w", err)
	}
	return transfers, nil
}
