package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kilo-recipes/recipe-api/backend/internal/models"
)

const userKey = "user"

// UserResolver resolves a presented token to its account
type UserResolver interface {
	UserFromToken(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware creates a middleware that requires a valid token. Both the
// "Bearer" and "Token" schemes are accepted.
func AuthMiddleware(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
			c.Abort()
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !(strings.EqualFold(parts[0], "Bearer") || strings.EqualFold(parts[0], "Token")) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		user, err := resolver.UserFromToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
			c.Abort()
			return
		}

		// Store user info in context
		c.Set(userKey, user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// CurrentUser returns the account set by AuthMiddleware
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// CurrentUserID returns the authenticated account id, or 0
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint("user_id")
}
