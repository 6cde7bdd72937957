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

type mockPurchaseRequestService struct {
	createFn       func(ctx context.Context, cmd application.CreatePurchaseRequestCommand) (*application.PurchaseRequestDTO, error)
	submitFn       func(ctx context.Context, cmd application.SubmitPurchaseRequestCommand) (*application.PurchaseRequestDTO, error)
	reviewFn       func(ctx context.Context, cmd application.ReviewPurchaseRequestCommand) (*application.PurchaseRequestDTO, error)
	completeFn     func(ctx context.Context, cmd application.CompletePurchaseRequestCommand) (*application.PurchaseRequestDTO, error)
	getRequestFn   func(ctx context.Context, requestID string) (*application.PurchaseRequestDTO, error)
	listByStatusFn func(ctx context.Context, status string, limit, offset int) ([]*application.PurchaseRequestDTO, error)
}

func (m *mockPurchaseRequestService) Create(ctx context.Context, cmd application.CreatePurchaseRequestCommand) (*application.PurchaseRequestDTO, error) {
	if m.createFn == nil {
		panic("Create not implemented")
	}
	return m.createFn(ctx, cmd)
}

func (m *mockPurchaseRequestService) Submit(ctx context.Context, cmd application.SubmitPurchaseRequestCommand) (*application.PurchaseRequestDTO, error) {
	if m.submitFn == nil {
		panic("Submit not implemented")
	}
	return m.submitFn(ctx, cmd)
}

func (m *mockPurchaseRequestService) Review(ctx context.Context, cmd application.ReviewPurchaseRequestCommand) (*application.PurchaseRequestDTO, error) {
	if m.reviewFn == nil {
		panic("Review not implemented")
	}
	return m.reviewFn(ctx, cmd)
}

func (m *mockPurchaseRequestService) Complete(ctx context.Context, cmd application.CompletePurchaseRequestCommand) (*application.PurchaseRequestDTO, error) {
	if m.completeFn == nil {
		panic("Complete not implemented")
	}
	return m.completeFn(ctx, cmd)
}

func (m *mockPurchaseRequestService) GetRequest(ctx context.Context, requestID string) (*application.PurchaseRequestDTO, error) {
	if m.getRequestFn == nil {
		panic("GetRequest not implemented")
	}
	return m.getRequestFn(ctx, requestID)
}

func (m *mockPurchaseRequestService) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*application.PurchaseRequestDTO, error) {
	if m.listByStatusFn == nil {
		panic("ListByStatus not implemented")
	}
	return m.listByStatusFn(ctx, status, limit, offset)
}

func newPurchaseRequestRouter(service PurchaseRequestService) *gin.Engine {
	return newTestRouter(func(group *gin.RouterGroup) {
		NewPurchaseRequestHandlers(service, testHandlerLogger()).RegisterRoutes(group)
	})
}

func TestPurchaseRequestHandlers_Create(t *testing.T) {
	t.Run("draft", func(t *testing.T) {
		service := &mockPurchaseRequestService{
			createFn: func(ctx context.Context, cmd application.CreatePurchaseRequestCommand) (*application.PurchaseRequestDTO, error) {
				if cmd.BookID != "book-1" || cmd.WarehouseID != "loc-wh" || cmd.Quantity != 25 {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				if cmd.RequestedBy != testUserID {
					t.Fatalf("RequestedBy = %s", cmd.RequestedBy)
				}
				if cmd.Submit {
					t.Fatal("Submit should default to false")
				}
				return &application.PurchaseRequestDTO{RequestID: "pr-1", Status: "DRAFT"}, nil
			},
		}
		router := newPurchaseRequestRouter(service)
		body := `{"bookId":"book-1","warehouseId":"loc-wh","quantity":25}`
		rec := performRequest(router, http.MethodPost, "/api/v1/purchase-requests", body, domain.CapCreatePurchaseRequest)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"status":"DRAFT"`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("submit on create", func(t *testing.T) {
		service := &mockPurchaseRequestService{
			createFn: func(ctx context.Context, cmd application.CreatePurchaseRequestCommand) (*application.PurchaseRequestDTO, error) {
				if !cmd.Submit {
					t.Fatal("Submit flag not forwarded")
				}
				return &application.PurchaseRequestDTO{RequestID: "pr-2", Status: "PENDING_APPROVAL"}, nil
			},
		}
		router := newPurchaseRequestRouter(service)
		body := `{"bookId":"book-1","warehouseId":"loc-wh","quantity":10,"submit":true}`
		rec := performRequest(router, http.MethodPost, "/api/v1/purchase-requests", body, domain.CapCreatePurchaseRequest)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("missing capability", func(t *testing.T) {
		service := &mockPurchaseRequestService{}
		router := newPurchaseRequestRouter(service)
		body := `{"bookId":"book-1","warehouseId":"loc-wh","quantity":10}`
		rec := performRequest(router, http.MethodPost, "/api/v1/purchase-requests", body)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("bad json", func(t *testing.T) {
		service := &mockPurchaseRequestService{}
		router := newPurchaseRequestRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/purchase-requests", `{"bookId":}`, domain.CapCreatePurchaseRequest)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestPurchaseRequestHandlers_Workflow(t *testing.T) {
	t.Run("submit", func(t *testing.T) {
		service := &mockPurchaseRequestService{
			submitFn: func(ctx context.Context, cmd application.SubmitPurchaseRequestCommand) (*application.PurchaseRequestDTO, error) {
				if cmd.RequestID != "pr-3" || cmd.UserID != testUserID {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return &application.PurchaseRequestDTO{RequestID: cmd.RequestID, Status: "PENDING_APPROVAL"}, nil
			},
		}
		router := newPurchaseRequestRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/purchase-requests/pr-3/submit", "", domain.CapCreatePurchaseRequest)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("approve", func(t *testing.T) {
		service := &mockPurchaseRequestService{
			reviewFn: func(ctx context.Context, cmd application.ReviewPurchaseRequestCommand) (*application.PurchaseRequestDTO, error) {
				if cmd.Action != "APPROVE" || cmd.ReviewedBy != testUserID {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return &application.PurchaseRequestDTO{RequestID: cmd.RequestID, Status: "APPROVED"}, nil
			},
		}
		router := newPurchaseRequestRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/purchase-requests/pr-4/review", `{"action":"APPROVE"}`, domain.CapReviewPurchaseRequest)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("reject with note", func(t *testing.T) {
		service := &mockPurchaseRequestService{
			reviewFn: func(ctx context.Context, cmd application.ReviewPurchaseRequestCommand) (*application.PurchaseRequestDTO, error) {
				if cmd.Action != "REJECT" || cmd.Note != "over budget" {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return &application.PurchaseRequestDTO{RequestID: cmd.RequestID, Status: "REJECTED"}, nil
			},
		}
		router := newPurchaseRequestRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/purchase-requests/pr-5/review", `{"action":"REJECT","note":"over budget"}`, domain.CapReviewPurchaseRequest)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("review requires reviewer capability", func(t *testing.T) {
		service := &mockPurchaseRequestService{}
		router := newPurchaseRequestRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/purchase-requests/pr-4/review", `{"action":"APPROVE"}`, domain.CapCreatePurchaseRequest)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("complete", func(t *testing.T) {
		service := &mockPurchaseRequestService{
			completeFn: func(ctx context.Context, cmd application.CompletePurchaseRequestCommand) (*application.PurchaseRequestDTO, error) {
				if cmd.RequestID != "pr-6" || cmd.UserID != testUserID {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return &application.PurchaseRequestDTO{RequestID: cmd.RequestID, Status: "COMPLETED"}, nil
			},
		}
		router := newPurchaseRequestRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/purchase-requests/pr-6/complete", "", domain.CapCompletePurchaseRequest)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("invalid transition", func(t *testing.T) {
		service := &mockPurchaseRequestService{
			reviewFn: func(ctx context.Context, cmd application.ReviewPurchaseRequestCommand) (*application.PurchaseRequestDTO, error) {
				return nil, errors.ErrInvalidTransition("cannot review a DRAFT request").WithDetail("current", "DRAFT")
			},
		}
		router := newPurchaseRequestRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/purchase-requests/pr-7/review", `{"action":"APPROVE"}`, domain.CapReviewPurchaseRequest)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), errors.CodeInvalidTransition) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})
}

func TestPurchaseRequestHandlers_Queries(t *testing.T) {
	t.Run("get request", func(t *testing.T) {
		service := &mockPurchaseRequestService{
			getRequestFn: func(ctx context.Context, requestID string) (*application.PurchaseRequestDTO, error) {
				if requestID != "pr-8" {
					t.Fatalf("requestID = %s", requestID)
				}
				return &application.PurchaseRequestDTO{RequestID: requestID}, nil
			},
		}
		router := newPurchaseRequestRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/purchase-requests/pr-8", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("list defaults to approval queue", func(t *testing.T) {
		service := &mockPurchaseRequestService{
			listByStatusFn: func(ctx context.Context, status string, limit, offset int) ([]*application.PurchaseRequestDTO, error) {
				if status != string(domain.RequestStatusPendingApproval) {
					t.Fatalf("status = %s", status)
				}
				return []*application.PurchaseRequestDTO{{RequestID: "pr-9"}}, nil
			},
		}
		router := newPurchaseRequestRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/purchase-requests", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("list invalid status", func(t *testing.T) {
		service := &mockPurchaseRequestService{
			listByStatusFn: func(ctx context.Context, status string, limit, offset int) ([]*application.PurchaseRequestDTO, error) {
				return nil, errors.ErrValidation("invalid purchase request status")
			},
		}
		router := newPurchaseRequestRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/purchase-requests?status=SHIPPED", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}
