package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bookstore-platform/fulfillment-service/pkg/errors"
)

// Actor context keys and headers. The gateway authenticates the caller
// and forwards identity and granted capabilities in these headers.
const (
	ContextKeyUserID       = "userId"
	ContextKeyCapabilities = "capabilities"

	HeaderUserID       = "X-User-ID"
	HeaderCapabilities = "X-User-Capabilities"
)

// ActorAuth middleware extracts the calling user and their capability
// grants from request headers. Requests without a user identity are
// rejected.
func ActorAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		if userID == "" {
			AbortWithAppError(c, errors.ErrUnauthorized("user identity is required"))
			return
		}

		caps := make(map[string]bool)
		for _, cap := range strings.Split(c.GetHeader(HeaderCapabilities), ",") {
			cap = strings.TrimSpace(cap)
			if cap != "" {
				caps[cap] = true
			}
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyCapabilities, caps)

		c.Next()
	}
}

// GetUserID extracts the authenticated user ID from context
func GetUserID(c *gin.Context) string {
	if val, exists := c.Get(ContextKeyUserID); exists {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}

// GetCapabilities extracts the actor's capability set from context
func GetCapabilities(c *gin.Context) map[string]bool {
	if val, exists := c.Get(ContextKeyCapabilities); exists {
		if caps, ok := val.(map[string]bool); ok {
			return caps
		}
	}
	return map[string]bool{}
}
