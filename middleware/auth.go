package middleware

import (
	"strings"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token to a user identity and stores
// it in the request context. Both "Token <value>" and "Bearer <value>"
// authorization schemes are accepted.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c.GetHeader("Authorization"))
		if !ok {
			utils.Unauthorized(c, "Missing or invalid token")
			c.Abort()
			return
		}

		if services.IsTokenBlacklisted(tokenString) {
			utils.Unauthorized(c, "Token has been invalidated")
			c.Abort()
			return
		}

		claims, err := services.ParseToken(tokenString)
		if err != nil {
			utils.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("session_id", claims.SessionID)
		c.Set("token", tokenString)

		c.Next()
	}
}

func extractToken(authHeader string) (string, bool) {
	for _, prefix := range []string{"Token ", "Bearer "} {
		if strings.HasPrefix(authHeader, prefix) {
			token := strings.TrimPrefix(authHeader, prefix)
			return token, token != ""
		}
	}
	return "", false
}
