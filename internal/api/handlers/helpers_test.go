package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bookstore-platform/fulfillment-service/pkg/logging"
	"github.com/bookstore-platform/fulfillment-service/pkg/middleware"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

const testUserID = "user-1"

func testHandlerLogger() *logging.Logger {
	return logging.New(logging.DefaultConfig("test"))
}

// newTestRouter mounts the handlers under the same actor auth the real
// server uses, so capability checks run in tests exactly as they do in
// production.
func newTestRouter(register func(*gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/v1", middleware.ActorAuth())
	register(group)
	return router
}

func performRequest(router *gin.Engine, method, path, body string, caps ...domain.Capability) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.HeaderUserID, testUserID)
	names := make([]string, 0, len(caps))
	for _, cap := range caps {
		names = append(names, string(cap))
	}
	req.Header.Set(middleware.HeaderCapabilities, strings.Join(names, ","))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// performBare sends the request exactly as built, with no identity or
// capability headers attached.
func performBare(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
