package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"voting-service/internal/models"
	"voting-service/internal/services"
	"voting-service/pkg/response"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// TokenParser turns a bearer token into the caller's identity.
type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*models.Identity, error)
}

type AuthMiddleware struct {
	tokens TokenParser
}

func NewAuthMiddleware(tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "authorization header is required")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			response.Abort(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "authorization header must use the Bearer scheme")
			return
		}

		identity, err := am.tokens.ParseToken(c.Request.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			if !errors.Is(err, services.ErrInvalidToken) {
				slog.Error("Token validation failed", "error", err)
			}
			response.Abort(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "invalid or expired token")
			return
		}

		SetIdentity(c, identity)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "")
			return
		}
		if !identity.IsAdmin() {
			response.Abort(c, http.StatusForbidden, response.ErrCodeForbidden, "")
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the caller attached by RequireAuth.
func CurrentIdentity(c *gin.Context) (*models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*models.Identity)
	return identity, ok && identity != nil
}

// SetIdentity attaches an identity to the request context.
func SetIdentity(c *gin.Context, identity *models.Identity) {
	c.Set(identityKey, identity)
	c.Set("user_id", identity.UserID)
	c.Set("role", identity.Role)
}
