package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bookstore-platform/fulfillment-service/pkg/errors"

	"github.com/bookstore-platform/fulfillment-service/internal/application"
	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

type mockTransferService struct {
	executeFn        func(ctx context.Context, cmd application.ExecuteTransferCommand) (*application.TransferDTO, error)
	listByBookFn     func(ctx context.Context, bookID string, limit, offset int) ([]*application.TransferDTO, error)
	listByLocationFn func(ctx context.Context, locationID string, limit, offset int) ([]*application.TransferDTO, error)
}

func (m *mockTransferService) Execute(ctx context.Context, cmd application.ExecuteTransferCommand) (*application.TransferDTO, error) {
	if m.executeFn == nil {
		panic("Execute not implemented")
	}
	return m.executeFn(ctx, cmd)
}

func (m *mockTransferService) ListByBook(ctx context.Context, bookID string, limit, offset int) ([]*application.TransferDTO, error) {
	if m.listByBookFn == nil {
		panic("ListByBook not implemented")
	}
	return m.listByBookFn(ctx, bookID, limit, offset)
}

func (m *mockTransferService) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*application.TransferDTO, error) {
	if m.listByLocationFn == nil {
		panic("ListByLocation not implemented")
	}
	return m.listByLocationFn(ctx, locationID, limit, offset)
}

func newTransferRouter(service TransferService) *gin.Engine {
	return newTestRouter(func(group *gin.RouterGroup) {
		NewTransferHandlers(service, testHandlerLogger()).RegisterRoutes(group)
	})
}

func TestTransferHandlers_Execute(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := &mockTransferService{
			executeFn: func(ctx context.Context, cmd application.ExecuteTransferCommand) (*application.TransferDTO, error) {
				if cmd.BookID != "book-1" || cmd.FromLocationID != "loc-wh" || cmd.ToLocationID != "loc-store" {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				if cmd.Quantity != 5 || cmd.ExecutedBy != testUserID {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return &application.TransferDTO{TransferID: "tr-1", Quantity: cmd.Quantity}, nil
			},
		}
		router := newTransferRouter(service)
		body := `{"bookId":"book-1","fromLocationId":"loc-wh","toLocationId":"loc-store","quantity":5}`
		rec := performRequest(router, http.MethodPost, "/api/v1/transfers", body, domain.CapExecuteTransfer)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"transferId":"tr-1"`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("missing capability", func(t *testing.T) {
		service := &mockTransferService{}
		router := newTransferRouter(service)
		body := `{"bookId":"book-1","fromLocationId":"loc-wh","toLocationId":"loc-store","quantity":5}`
		rec := performRequest(router, http.MethodPost, "/api/v1/transfers", body)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("bad json", func(t *testing.T) {
		service := &mockTransferService{}
		router := newTransferRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/transfers", `{"bookId":}`, domain.CapExecuteTransfer)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("insufficient source stock", func(t *testing.T) {
		service := &mockTransferService{
			executeFn: func(ctx context.Context, cmd application.ExecuteTransferCommand) (*application.TransferDTO, error) {
				return nil, errors.ErrInsufficientStock("insufficient stock at loc-wh").WithDetail("shortfall", "3")
			},
		}
		router := newTransferRouter(service)
		body := `{"bookId":"book-1","fromLocationId":"loc-wh","toLocationId":"loc-store","quantity":8}`
		rec := performRequest(router, http.MethodPost, "/api/v1/transfers", body, domain.CapExecuteTransfer)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestTransferHandlers_History(t *testing.T) {
	t.Run("list by book", func(t *testing.T) {
		service := &mockTransferService{
			listByBookFn: func(ctx context.Context, bookID string, limit, offset int) ([]*application.TransferDTO, error) {
				if bookID != "book-2" {
					t.Fatalf("bookID = %s", bookID)
				}
				return []*application.TransferDTO{{TransferID: "tr-2"}}, nil
			},
		}
		router := newTransferRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/transfers/book/book-2", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("list by location", func(t *testing.T) {
		service := &mockTransferService{
			listByLocationFn: func(ctx context.Context, locationID string, limit, offset int) ([]*application.TransferDTO, error) {
				if locationID != "loc-store" {
					t.Fatalf("locationID = %s", locationID)
				}
				return []*application.TransferDTO{}, nil
			},
		}
		router := newTransferRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/transfers/location/loc-store", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}
