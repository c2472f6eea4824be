package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tourtrack/internal/auth"
	"tourtrack/internal/domain"
)

const identityKey = "identity"

// AuthMiddleware verifies the bearer token and stores the caller identity.
// A missing token is 401; a token that fails verification is 403.
func AuthMiddleware(gate auth.IdentityGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithMessage(c, http.StatusUnauthorized, "authentication required")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			abortWithMessage(c, http.StatusForbidden, "invalid or expired token")
			return
		}

		identity, err := gate.Verify(token)
		if err != nil {
			abortWithMessage(c, http.StatusForbidden, "invalid or expired token")
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the caller stored by AuthMiddleware, or nil.
func IdentityFrom(c *gin.Context) *domain.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*domain.Identity)
	return identity
}

// abortWithMessage writes the standard failure envelope and stops the chain.
func abortWithMessage(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{
		"success": false,
		"message": message,
	})
}
