package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

type BookRepository struct {
	collection *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	collection := db.Collection("books")

	repo := &BookRepository{
		collection: collection,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *BookRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "bookId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isbn", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "author", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *BookRepository) Save(ctx context.Context, book *domain.Book) error {
	filter := bson.M{"bookId": book.BookID}
	update := bson.M{"$set": book}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateISBN
		}
		return fmt.Errorf("failed to save book: %w", err)
	}
	return nil
}

func (r *BookRepository) FindByBookID(ctx context.Context, bookID string) (*domain.Book, error) {
	var book domain.Book
	err := r.collection.FindOne(ctx, bson.M{"bookId": bookID}).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find book: %w", err)
	}
	return &book, nil
}

func (r *BookRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.Book, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "title", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []*domain.Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("failed to decode books: %w", err)
	}
	return books, nil
}

func (r *BookRepository) Delete(ctx context.Context, bookID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"bookId": bookID})
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}
