package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edupath/edupath-backend/internal/auth"
)

// Context keys set by RequireAdmin.
const (
	CtxUsername    = "auth.username"
	CtxDisplayName = "auth.name"
	CtxRole        = "auth.role"
)

// TokenVerifier validates a session token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAdmin rejects requests without a valid bearer token.
func RequireAdmin(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		c.Set(CtxUsername, claims.Sub)
		c.Set(CtxDisplayName, claims.Name)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}
