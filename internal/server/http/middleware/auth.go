package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

const authCookieName = "storefront_token"

// TokenParser verifies tokens locally.
type TokenParser interface {
	ParseToken(token string) (pkgAuth.Identity, error)
}

// Identify attaches the verified identity to the request context when a valid
// token is presented. It never rejects a request: a missing or invalid token
// leaves the request anonymous and protected operations refuse it themselves.
func Identify(parser TokenParser, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		identity, err := parser.ParseToken(token)
		if err != nil {
			logger.Debug("ignoring unverifiable token", slog.String("path", c.Request.URL.Path), slog.Any("error", err))
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(pkgAuth.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
