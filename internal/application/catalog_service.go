package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookstore-platform/fulfillment-service/pkg/logging"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

// CatalogService manages books and locations. It never touches stock
// counters; those belong to the ledger.
type CatalogService struct {
	books     domain.BookRepository
	locations domain.LocationRepository
	logger    *logging.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	books domain.BookRepository,
	locations domain.LocationRepository,
	logger *logging.Logger,
) *CatalogService {
	return &CatalogService{
		books:     books,
		locations: locations,
		logger:    logger,
	}
}

// CreateBook creates a catalog entry
func (s *CatalogService) CreateBook(ctx context.Context, cmd CreateBookCommand) (*BookDTO, error) {
	book, err := domain.NewBook(uuid.New().String(), cmd.Title, cmd.Author, cmd.ISBN, cmd.Price)
	if err != nil {
		return nil, mapError(err)
	}

	if err := s.books.Save(ctx, book); err != nil {
		return nil, mapError(err)
	}

	s.logger.Info("Book created", "bookId", book.BookID, "isbn", book.ISBN)
	return ToBookDTO(book), nil
}

// UpdateBook updates the mutable catalog fields of a book
func (s *CatalogService) UpdateBook(ctx context.Context, cmd UpdateBookCommand) (*BookDTO, error) {
	book, err := s.books.FindByBookID(ctx, cmd.BookID)
	if err != nil {
		return nil, mapError(err)
	}

	if err := book.UpdateDetails(cmd.Title, cmd.Author, cmd.Price); err != nil {
		return nil, mapError(err)
	}

	if err := s.books.Save(ctx, book); err != nil {
		return nil, mapError(err)
	}

	s.logger.Info("Book updated", "bookId", book.BookID)
	return ToBookDTO(book), nil
}

// DeleteBook removes a catalog entry
func (s *CatalogService) DeleteBook(ctx context.Context, bookID string) error {
	if err := s.books.Delete(ctx, bookID); err != nil {
		return mapError(err)
	}
	s.logger.Info("Book deleted", "bookId", bookID)
	return nil
}

// GetBook retrieves a catalog entry
func (s *CatalogService) GetBook(ctx context.Context, bookID string) (*BookDTO, error) {
	book, err := s.books.FindByBookID(ctx, bookID)
	if err != nil {
		return nil, mapError(err)
	}
	return ToBookDTO(book), nil
}

// ListBooks lists catalog entries sorted by title
func (s *CatalogService) ListBooks(ctx context.Context, limit, offset int) ([]*BookDTO, error) {
	books, err := s.books.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, mapError(err)
	}

	dtos := make([]*BookDTO, 0, len(books))
	for _, book := range books {
		dtos = append(dtos, ToBookDTO(book))
	}
	return dtos, nil
}

// CreateLocation registers a stock-holding location
func (s *CatalogService) CreateLocation(ctx context.Context, cmd CreateLocationCommand) (*LocationDTO, error) {
	location, err := domain.NewLocation(uuid.New().String(), cmd.Code, cmd.Name, domain.LocationType(cmd.Type))
	if err != nil {
		return nil, mapError(err)
	}

	if err := s.locations.Save(ctx, location); err != nil {
		return nil, mapError(err)
	}

	s.logger.Info("Location created", "locationId", location.LocationID, "code", location.Code)
	return ToLocationDTO(location), nil
}

// SetLocationActive activates or deactivates a location
func (s *CatalogService) SetLocationActive(ctx context.Context, cmd SetLocationActiveCommand) (*LocationDTO, error) {
	location, err := s.locations.FindByLocationID(ctx, cmd.LocationID)
	if err != nil {
		return nil, mapError(err)
	}

	if cmd.Active {
		location.Activate()
	} else {
		location.Deactivate()
	}

	if err := s.locations.Save(ctx, location); err != nil {
		return nil, mapError(err)
	}

	s.logger.Info("Location active flag changed", "locationId", location.LocationID, "active", cmd.Active)
	return ToLocationDTO(location), nil
}

// GetLocation retrieves a location by ID
func (s *CatalogService) GetLocation(ctx context.Context, locationID string) (*LocationDTO, error) {
	location, err := s.locations.FindByLocationID(ctx, locationID)
	if err != nil {
		return nil, mapError(err)
	}
	return ToLocationDTO(location), nil
}

// ListLocations lists all registered locations
func (s *CatalogService) ListLocations(ctx context.Context) ([]*LocationDTO, error) {
	locations, err := s.locations.FindAll(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	dtos := make([]*LocationDTO, 0, len(locations))
	for _, location := range locations {
		dtos = append(dtos, ToLocationDTO(location))
	}
	return dtos, nil
}
