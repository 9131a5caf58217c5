package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/marketplace-storefront/internal/application"
	"github.com/oksasatya/marketplace-storefront/pkg/helpers"
	"github.com/oksasatya/marketplace-storefront/pkg/metrics"
	"github.com/oksasatya/marketplace-storefront/pkg/response"
	"github.com/oksasatya/marketplace-storefront/pkg/validation"
)

const msgInternal = "Internal server error"

// writeError maps service errors to status codes. Anything unrecognised is
// logged with op and answered with a generic 500.
func writeError(c *gin.Context, logger *logrus.Logger, op string, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		metrics.AuthErrors.WithLabelValues("invalid_credentials").Inc()
		response.Error[any](c, http.StatusUnauthorized, "Invalid email or password", nil)
	case errors.Is(err, application.ErrEmailTaken):
		metrics.AuthErrors.WithLabelValues("duplicate_email").Inc()
		response.Error[any](c, http.StatusConflict, "User with this email already exists", nil)
	case errors.Is(err, application.ErrIncorrectPassword):
		metrics.AuthErrors.WithLabelValues("wrong_password").Inc()
		response.Error[any](c, http.StatusBadRequest, "Current password is incorrect", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, application.ErrRoleNotAllowed):
		response.Error[any](c, http.StatusBadRequest, "This account type cannot be registered", nil)
	case errors.Is(err, application.ErrIncompleteAddress):
		response.Error[any](c, http.StatusBadRequest, "Address is incomplete", nil)
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		response.Error[any](c, http.StatusBadRequest, "Password must be at most 72 bytes long", nil)
	case errors.Is(err, application.ErrInvalidImage):
		response.Error[any](c, http.StatusBadRequest, "Profile image must be a PNG, JPEG, GIF or WebP image up to 5 MB", nil)
	default:
		metrics.AuthErrors.WithLabelValues("internal").Inc()
		helpers.LogError(logger, op+" failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
		response.Error[any](c, http.StatusInternalServerError, msgInternal, nil)
	}
}

func badRequest(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "Invalid request body", validation.ToDetails(err))
}

// currentUserID returns the id set by the Auth middleware. Handlers refuse to run
// without one even when mounted behind Auth.
func currentUserID(c *gin.Context) (string, bool) {
	uid := c.GetString("userID")
	if uid == "" {
		response.Error[any](c, http.StatusUnauthorized, "Not authenticated", nil)
		return "", false
	}
	return uid, true
}

func clientInfo(c *gin.Context) application.ClientInfo {
	ip := c.GetString("real_ip")
	if ip == "" {
		ip = c.ClientIP()
	}
	return application.ClientInfo{IP: ip, UserAgent: c.Request.UserAgent()}
}
