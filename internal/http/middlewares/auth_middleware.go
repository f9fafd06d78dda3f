package middlewares

import (
	"net/http"
	"strings"

	"github.com/dbarrios89/storeapi/internal/token"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, token.Status)
}

type AuthMiddleware struct {
	codec TokenVerifier
}

func NewAuthMiddleware(codec TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{codec: codec}
}

// RequireAuth gates a route on a verifiable bearer token. The header format
// is "<scheme> <value>"; a missing header, missing value, or malformed
// header all count as "token not present". Verification itself is a pure
// per-request decision: no retries, no server-side lookup.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c.GetHeader("Authorization"))

		if raw == "" {
			rejectToken(c, "token not present")
			return
		}

		claims, status := m.codec.Verify(raw)

		switch status {
		case token.StatusExpired:
			rejectToken(c, "token expired")
			return
		case token.StatusInvalid:
			rejectToken(c, "token invalid")
			return
		}

		// stash decoded identity for downstream handlers
		c.Set(CtxClaims, claims)

		c.Next()
	}
}

func extractToken(header string) string {
	parts := strings.Fields(header)

	if len(parts) != 2 {
		return ""
	}

	return parts[1]
}

func rejectToken(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status": "FAILED",
		"error":  msg,
	})
}

// ClaimsFromContext is a helper so handlers don't need to know the magic key.
func ClaimsFromContext(c *gin.Context) (*token.Claims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}

	claims, ok := v.(*token.Claims)
	return claims, ok
}
