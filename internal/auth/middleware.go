package auth

import (
	"net/http"
	"strings"

	"linkup/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the session token and puts the user id into the
// gin context. The token is read from the Authorization header, falling back
// to the jwt cookie set at login.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		userID, err := jwt.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// TokenFromRequest extracts the session token from a request: bearer header
// first, then the jwt cookie, then the token query parameter (used by the
// websocket handshake, which cannot set headers from the browser).
func TokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie("jwt"); err == nil && cookie != "" {
		return cookie
	}

	return c.Query("token")
}
