package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tourlink-server/database"
	"tourlink-server/models"
	"tourlink-server/utils"
)

// AuthMiddleware validates JWT tokens and sets user context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":  "UNAUTHORIZED",
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":  "UNAUTHORIZED",
				"error": "Token must be in format: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":  "UNAUTHORIZED",
				"error": "Token is invalid or expired",
			})
			c.Abort()
			return
		}

		// Role and identity are re-derived from the persisted user on every
		// request; client-supplied role claims are never trusted on their own.
		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":  "UNAUTHORIZED",
				"error": "User no longer exists",
			})
			c.Abort()
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":  "UNAUTHORIZED",
				"error": "Account is deactivated",
			})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", string(user.Role))
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated user has one of the
// given roles. Must run after AuthMiddleware.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := models.UserRole(c.GetString("role"))
		for _, role := range roles {
			if current == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"code":  "FORBIDDEN",
			"error": "Insufficient permissions for this action",
		})
		c.Abort()
	}
}
