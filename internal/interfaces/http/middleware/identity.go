package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity headers injected by the upstream gateway. Requests reaching this
// service are pre-authenticated; the headers are trusted as-is.
const (
	HeaderUserID       = "x-user-id"
	HeaderUserEmail    = "x-user-email"
	HeaderUserUsername = "x-user-username"
	HeaderUserRole     = "x-user-role"

	// Gin context keys
	UserIDKey       = "userId"
	UserEmailKey    = "userEmail"
	UserUsernameKey = "userUsername"
	UserRoleKey     = "userRole"
)

// GatewayIdentityMiddleware extracts the gateway identity headers. Protected
// routes reject requests without a parseable x-user-id.
func GatewayIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := c.GetHeader(HeaderUserID)
		if rawID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing x-user-id header",
			})
			return
		}

		userID, err := uuid.Parse(rawID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid x-user-id header",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UserEmailKey, c.GetHeader(HeaderUserEmail))
		c.Set(UserUsernameKey, c.GetHeader(HeaderUserUsername))
		c.Set(UserRoleKey, c.GetHeader(HeaderUserRole))

		c.Next()
	}
}

// RequireRole rejects requests whose gateway role header does not match any
// of the allowed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetUserRole(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "insufficient role",
		})
	}
}

// GetUserID returns the authenticated user id set by the identity middleware
func GetUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetUserEmail returns the gateway-supplied email hint
func GetUserEmail(c *gin.Context) string {
	return c.GetString(UserEmailKey)
}

// GetUserUsername returns the gateway-supplied username hint
func GetUserUsername(c *gin.Context) string {
	return c.GetString(UserUsernameKey)
}

// GetUserRole returns the gateway-supplied role hint
func GetUserRole(c *gin.Context) string {
	return c.GetString(UserRoleKey)
}
