// Package middleware provides HTTP middleware for the store manager API.
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oma0256/store-manager-api/internal/models"
	"github.com/oma0256/store-manager-api/internal/repository"
	"github.com/oma0256/store-manager-api/internal/service"
)

// currentUserKey is the gin context key holding the authenticated user.
const currentUserKey = "currentUser"

// ExtractToken returns the bearer token from the Authorization header.
func ExtractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	parts := strings.Split(bearerToken, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// SetCurrentUser stores the authenticated user in the request context.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(currentUserKey, user)
}

// CurrentUser returns the user resolved by RequireAuth, or nil when the
// request is unauthenticated.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// RequireAuth validates the bearer token, rejects tokens invalidated by
// logout, loads the caller's user record and stores it in the request
// context. Requests failing any step get 401.
func RequireAuth(jwtService service.JWTService, userRepo repository.UserRepository, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please login first"})
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		denied, err := redisClient.Exists(c.Request.Context(), fmt.Sprintf("denylist:%s", token)).Result()
		if err == nil && denied > 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		SetCurrentUser(c, user)
		c.Next()
	}
}
