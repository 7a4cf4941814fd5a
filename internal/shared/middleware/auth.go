package middleware

import (
	"strings"

	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextUserID is the gin context key holding the authenticated user's id.
const ContextUserID = "userID"

// RequireAuth rejects requests without a valid Bearer access token.
// Runs before any validation so unauthenticated writes never touch the
// request body.
func RequireAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerUserID(c, manager)
		if !ok {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// OptionalAuth sets the user id when a valid token is present but lets
// anonymous requests through. Used on open read endpoints.
func OptionalAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := bearerUserID(c, manager); ok {
			c.Set(ContextUserID, userID)
		}
		c.Next()
	}
}

func bearerUserID(c *gin.Context, manager *jwt.Manager) (uuid.UUID, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return uuid.Nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return uuid.Nil, false
	}

	claims, err := manager.ValidateAccessToken(parts[1])
	if err != nil {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

// UserID fetches the authenticated user id set by RequireAuth.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
