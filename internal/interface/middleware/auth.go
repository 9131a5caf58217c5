package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-storefront/internal/application"
	"github.com/oksasatya/marketplace-storefront/internal/domain/entity"
	"github.com/oksasatya/marketplace-storefront/pkg/helpers"
	"github.com/oksasatya/marketplace-storefront/pkg/metrics"
	"github.com/oksasatya/marketplace-storefront/pkg/response"
)

// CtxUserIDKey holds the verified user id for handlers.
const CtxUserIDKey = "userID"

// TokenVerifier resolves a session token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth verifies the auth_token cookie on API routes and sets userID in the Gin context.
// It does not depend on the route guard having run.
func Auth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := helpers.SessionToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "Not authenticated", nil)
			return
		}
		uid, err := tokens.Verify(token)
		if err != nil || uid == "" {
			metrics.AuthErrors.WithLabelValues("invalid_token").Inc()
			response.Abort(c, http.StatusUnauthorized, "Invalid or expired session", nil)
			return
		}
		c.Set(CtxUserIDKey, uid)
		c.Next()
	}
}

// UserLookup loads the account behind a verified session.
type UserLookup interface {
	GetProfile(ctx context.Context, userID string) (*entity.User, error)
}

// RequireRole must run after Auth. It re-reads the user so a role change applies immediately.
func RequireRole(users UserLookup, logger *logrus.Logger, roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := users.GetProfile(c.Request.Context(), c.GetString(CtxUserIDKey))
		if err != nil {
			if errors.Is(err, application.ErrUserNotFound) {
				response.Abort(c, http.StatusUnauthorized, "Not authenticated", nil)
				return
			}
			helpers.LogError(logger, "role lookup failed", err, logrus.Fields{"user_id": c.GetString(CtxUserIDKey)})
			response.Abort(c, http.StatusInternalServerError, "Internal server error", nil)
			return
		}
		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}
		response.Abort(c, http.StatusForbidden, "Forbidden", nil)
	}
}
