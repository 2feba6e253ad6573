package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/services"
	"github.com/KSRM-F-2025/feedback-service/internal/utils"
)

const sessionContextKey = "session"

// JWTAuthMiddleware authenticates requests with tokens issued by the auth
// service.
type JWTAuthMiddleware struct {
	jwt *utils.JWTService
}

// NewJWTAuthMiddleware creates a new JWT authentication middleware
func NewJWTAuthMiddleware(jwt *utils.JWTService) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{jwt: jwt}
}

// AuthMiddleware returns a Gin middleware function for token authentication
func (am *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := utils.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": err.Error(),
			})
			c.Abort()
			return
		}

		claims, err := am.jwt.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid or expired token",
			})
			c.Abort()
			return
		}

		session := services.SessionContext{
			UserID:    claims.UserID,
			Email:     claims.Email,
			Role:      claims.Role,
			FacultyID: claims.FacultyID,
		}

		c.Set(sessionContextKey, session)
		c.Set("user_id", session.UserID)
		c.Set("user_role", session.Role)

		c.Next()
	}
}

// RequireRoleMiddleware checks if the session has one of the required
// roles. Admins pass every check.
func (am *JWTAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := GetSessionFromContext(c)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "session not found in context",
			})
			c.Abort()
			return
		}

		hasRequiredRole := false
		for _, requiredRole := range requiredRoles {
			if session.Role == requiredRole || session.Role == models.RoleAdmin {
				hasRequiredRole = true
				break
			}
		}

		if !hasRequiredRole {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetSessionFromContext extracts the authenticated session from Gin context
func GetSessionFromContext(c *gin.Context) (services.SessionContext, error) {
	v, exists := c.Get(sessionContextKey)
	if !exists {
		return services.SessionContext{}, fmt.Errorf("session not found in context")
	}

	session, ok := v.(services.SessionContext)
	if !ok {
		return services.SessionContext{}, fmt.Errorf("invalid session type in context")
	}

	return session, nil
}
