package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey    = "user_id"
	UserIDHeader = "X-User-ID"
)

// Actor returns a Gin middleware that resolves the acting user.
// The mock backend has no sessions: the X-User-ID header selects a
// profile and defaultUserID is used when it is absent.
func Actor(defaultUserID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			userID = defaultUserID
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID extracts user ID from Gin context.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(UserIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
