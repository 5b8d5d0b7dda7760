package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"codetrek/internal/common"
	"codetrek/internal/logger"
	"codetrek/internal/models"
	"codetrek/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	userContextKey       = "user"
	tokenErrorContextKey = "tokenError"
)

// TokenFromRequest extracts the token from an "Authorization: Token <t>" or
// "Authorization: Bearer <t>" header.
func TokenFromRequest(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok {
		return ""
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// OptionalAuthMiddleware resolves the caller from the request token, if any,
// without enforcing authentication. A rejected token is remembered so that
// RequireUser can report it.
func OptionalAuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, common.ErrUnauthorized) {
				logger.Log.Error("Failed to authenticate request", zap.Error(err))
			}
			c.Set(tokenErrorContextKey, err)
			c.Next()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireUser enforces an authenticated caller. With allowFallback, an
// anonymous request is served as the first registered user.
func RequireUser(auth *services.AuthService, allowFallback bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.Next()
			return
		}

		if _, rejected := c.Get(tokenErrorContextKey); rejected {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if !allowFallback {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided"})
			return
		}

		user, err := auth.FallbackUser(c.Request.Context())
		if err != nil {
			status := common.HTTPStatusFromError(err)
			if status == http.StatusInternalServerError {
				logger.Log.Error("Failed to load fallback user", zap.Error(err))
			}
			c.AbortWithStatusJSON(status, gin.H{"error": common.PublicMessage(err)})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated caller, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
