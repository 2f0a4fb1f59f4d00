package middleware

import (
	"strings"

	"github.com/FRANKLIN09020/smart-billing/internal/presentation/http/dto/response"
	"github.com/FRANKLIN09020/smart-billing/pkg/utils"
	"github.com/gin-gonic/gin"
)

const (
	// OperatorKey holds the signed-in operator's username in the gin context
	OperatorKey = "operator"
	// OperatorNameKey holds the operator's display name
	OperatorNameKey = "operator_name"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(OperatorKey, claims.Username)
		c.Set(OperatorNameKey, claims.DisplayName)

		c.Next()
	}
}

// GetOperator returns the authenticated operator's username, or "" when the
// request was not authenticated
func GetOperator(c *gin.Context) string {
	return c.GetString(OperatorKey)
}
