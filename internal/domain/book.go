package domain

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrMissingTitle  = errors.New("title is required")
	ErrMissingAuthor = errors.New("author is required")
	ErrMissingISBN   = errors.New("isbn is required")
	ErrInvalidPrice  = errors.New("price cannot be negative")
)

// Book is a catalog entry. Its sellable availability lives in the stock
// ledger as the webstore location's stock level; the catalog never
// mutates counters directly.
type Book struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookID    string             `bson:"bookId" json:"bookId"`
	Title     string             `bson:"title" json:"title"`
	Author    string             `bson:"author" json:"author"`
	ISBN      string             `bson:"isbn" json:"isbn"`
	Price     float64            `bson:"price" json:"price"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewBook creates a catalog entry after shape validation.
func NewBook(bookID, title, author, isbn string, price float64) (*Book, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrMissingTitle
	}
	if strings.TrimSpace(author) == "" {
		return nil, ErrMissingAuthor
	}
	if strings.TrimSpace(isbn) == "" {
		return nil, ErrMissingISBN
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}

	now := time.Now().UTC()
	return &Book{
		BookID:    bookID,
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateDetails replaces the mutable catalog fields. Completed orders
// keep the price they were purchased at, so repricing never retroacts.
func (b *Book) UpdateDetails(title, author string, price float64) error {
	if strings.TrimSpace(title) == "" {
		return ErrMissingTitle
	}
	if strings.TrimSpace(author) == "" {
		return ErrMissingAuthor
	}
	if price < 0 {
		return ErrInvalidPrice
	}

	b.Title = title
	b.Author = author
	b.Price = price
	b.UpdatedAt = time.Now().UTC()
	return nil
}
