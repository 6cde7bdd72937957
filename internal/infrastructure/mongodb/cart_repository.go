package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

// CartRepository stores one document per cart line, keyed by
// (userId, bookId). Adding a book the user already has replaces the
// line's quantity.
type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	collection := db.Collection("cart_items")

	repo := &CartRepository{
		collection: collection,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *CartRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "bookId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *CartRepository) SaveItem(ctx context.Context, item *domain.CartItem) error {
	filter := bson.M{"userId": item.UserID, "bookId": item.BookID}
	update := bson.M{
		"$set": bson.M{
			"quantity":  item.Quantity,
			"updatedAt": item.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"userId":  item.UserID,
			"bookId":  item.BookID,
			"addedAt": item.AddedAt,
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save cart item: %w", err)
	}
	return nil
}

func (r *CartRepository) FindCart(ctx context.Context, userID string) (*domain.Cart, error) {
	opts := options.Find().SetSort(bson.D{{Key: "addedAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart items: %w", err)
	}

	return &domain.Cart{UserID: userID, Items: items}, nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID, bookID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "bookId": bookID})
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
