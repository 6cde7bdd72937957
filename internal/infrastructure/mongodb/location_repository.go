package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

type LocationRepository struct {
	collection *mongo.Collection
}

func NewLocationRepository(db *mongo.Database) *LocationRepository {
	collection := db.Collection("locations")

	repo := &LocationRepository{
		collection: collection,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *LocationRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "locationId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "isActive", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *LocationRepository) Save(ctx context.Context, location *domain.Location) error {
	filter := bson.M{"locationId": location.LocationID}
	update := bson.M{"$set": location}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("failed to save location: %w", err)
	}
	return nil
}

func (r *LocationRepository) FindByLocationID(ctx context.Context, locationID string) (*domain.Location, error) {
	return r.findOne(ctx, bson.M{"locationId": locationID})
}

func (r *LocationRepository) FindByCode(ctx context.Context, code string) (*domain.Location, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *LocationRepository) findOne(ctx context.Context, filter bson.M) (*domain.Location, error) {
	var location domain.Location
	err := r.collection.FindOne(ctx, filter).Decode(&location)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find location: %w", err)
	}
	return &location, nil
}

func (r *LocationRepository) FindAll(ctx context.Context) ([]*domain.Location, error) {
	opts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locations []*domain.Location
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, fmt.Errorf("failed to decode locations: %w", err)
	}
	return locations, nil
}
