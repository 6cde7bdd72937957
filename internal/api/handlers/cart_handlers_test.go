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

type mockCartService struct {
	addItemFn    func(ctx context.Context, cmd application.AddCartItemCommand) (*application.CartDTO, error)
	removeItemFn func(ctx context.Context, cmd application.RemoveCartItemCommand) (*application.CartDTO, error)
	getCartFn    func(ctx context.Context, userID string) (*application.CartDTO, error)
	clearCartFn  func(ctx context.Context, userID string) error
}

func (m *mockCartService) AddItem(ctx context.Context, cmd application.AddCartItemCommand) (*application.CartDTO, error) {
	if m.addItemFn == nil {
		panic("AddItem not implemented")
	}
	return m.addItemFn(ctx, cmd)
}

func (m *mockCartService) RemoveItem(ctx context.Context, cmd application.RemoveCartItemCommand) (*application.CartDTO, error) {
	if m.removeItemFn == nil {
		panic("RemoveItem not implemented")
	}
	return m.removeItemFn(ctx, cmd)
}

func (m *mockCartService) GetCart(ctx context.Context, userID string) (*application.CartDTO, error) {
	if m.getCartFn == nil {
		panic("GetCart not implemented")
	}
	return m.getCartFn(ctx, userID)
}

func (m *mockCartService) ClearCart(ctx context.Context, userID string) error {
	if m.clearCartFn == nil {
		panic("ClearCart not implemented")
	}
	return m.clearCartFn(ctx, userID)
}

func newCartRouter(service CartService) *gin.Engine {
	return newTestRouter(func(group *gin.RouterGroup) {
		NewCartHandlers(service, testHandlerLogger()).RegisterRoutes(group)
	})
}

func TestCartHandlers_AddItem(t *testing.T) {
	t.Run("user comes from identity header", func(t *testing.T) {
		service := &mockCartService{
			addItemFn: func(ctx context.Context, cmd application.AddCartItemCommand) (*application.CartDTO, error) {
				if cmd.UserID != testUserID {
					t.Fatalf("UserID = %s", cmd.UserID)
				}
				if cmd.BookID != "book-1" || cmd.Quantity != 2 {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return &application.CartDTO{UserID: cmd.UserID}, nil
			},
		}
		router := newCartRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/cart/items", `{"bookId":"book-1","quantity":2}`, domain.CapManageCart)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("missing capability", func(t *testing.T) {
		service := &mockCartService{}
		router := newCartRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/cart/items", `{"bookId":"book-1","quantity":2}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("bad json", func(t *testing.T) {
		service := &mockCartService{}
		router := newCartRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/cart/items", `{"bookId":}`, domain.CapManageCart)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("unknown book", func(t *testing.T) {
		service := &mockCartService{
			addItemFn: func(ctx context.Context, cmd application.AddCartItemCommand) (*application.CartDTO, error) {
				return nil, errors.ErrNotFound("book")
			},
		}
		router := newCartRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/cart/items", `{"bookId":"nope","quantity":1}`, domain.CapManageCart)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestCartHandlers_RemoveAndClear(t *testing.T) {
	t.Run("remove item", func(t *testing.T) {
		service := &mockCartService{
			removeItemFn: func(ctx context.Context, cmd application.RemoveCartItemCommand) (*application.CartDTO, error) {
				if cmd.UserID != testUserID || cmd.BookID != "book-2" {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return &application.CartDTO{UserID: cmd.UserID}, nil
			},
		}
		router := newCartRouter(service)
		rec := performRequest(router, http.MethodDelete, "/api/v1/cart/items/book-2", "", domain.CapManageCart)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("clear cart", func(t *testing.T) {
		service := &mockCartService{
			clearCartFn: func(ctx context.Context, userID string) error {
				if userID != testUserID {
					t.Fatalf("userID = %s", userID)
				}
				return nil
			},
		}
		router := newCartRouter(service)
		rec := performRequest(router, http.MethodDelete, "/api/v1/cart", "", domain.CapManageCart)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestCartHandlers_GetCart(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := &mockCartService{
			getCartFn: func(ctx context.Context, userID string) (*application.CartDTO, error) {
				return &application.CartDTO{UserID: userID, Items: []application.CartItemDTO{{BookID: "book-1", Quantity: 3}}}, nil
			},
		}
		router := newCartRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/cart", "", domain.CapManageCart)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"quantity":3`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("no identity header", func(t *testing.T) {
		service := &mockCartService{}
		router := newCartRouter(service)
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		rec := performBare(router, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}
