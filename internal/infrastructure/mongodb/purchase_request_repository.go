package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

type PurchaseRequestRepository struct {
	collection *mongo.Collection
}

func NewPurchaseRequestRepository(db *mongo.Database) *PurchaseRequestRepository {
	collection := db.Collection("purchase_requests")

	repo := &PurchaseRequestRepository{
		collection: collection,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *PurchaseRequestRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "requestId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "warehouseId", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *PurchaseRequestRepository) Save(ctx context.Context, request *domain.PurchaseRequest) error {
	filter := bson.M{"requestId": request.RequestID}
	update := bson.M{"$set": request}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save purchase request: %w", err)
	}
	return nil
}

func (r *PurchaseRequestRepository) FindByRequestID(ctx context.Context, requestID string) (*domain.PurchaseRequest, error) {
	var request domain.PurchaseRequest
	err := r.collection.FindOne(ctx, bson.M{"requestId": requestID}).Decode(&request)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase request: %w", err)
	}
	return &request, nil
}

func (r *PurchaseRequestRepository) FindByStatus(ctx context.Context, status domain.RequestStatus, limit, offset int) ([]*domain.PurchaseRequest, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*domain.PurchaseRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode purchase requests: %w", err)
	}
	return requests, nil
}
