package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-storefront/internal/application"
	"github.com/oksasatya/marketplace-storefront/internal/domain/entity"
	"github.com/oksasatya/marketplace-storefront/pkg/helpers"
	"github.com/oksasatya/marketplace-storefront/pkg/metrics"
	"github.com/oksasatya/marketplace-storefront/pkg/response"
)

type AuthHandler struct {
	Svc        *application.Service
	Cookies    *helpers.Manager
	SessionTTL time.Duration
	Logger     *logrus.Logger
}

func NewAuthHandler(svc *application.Service, cookies *helpers.Manager, sessionTTL time.Duration, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, SessionTTL: sessionTTL, Logger: logger}
}

// Register returns a handler creating an account with the given role.
func (h *AuthHandler) Register(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
			Name:         req.Name,
			Email:        req.Email,
			Password:     req.Password,
			ProfileImage: req.ProfileImage,
			Address:      req.Address.toEntity(),
			Role:         role,
			Client:       clientInfo(c),
		})
		if err != nil {
			writeError(c, h.Logger, "register", err)
			return
		}
		metrics.Registrations.WithLabelValues(u.Role.String()).Inc()
		helpers.LogInfo(h.Logger, "user registered", logrus.Fields{"user_id": u.ID, "role": u.Role})
		response.Success(c, http.StatusCreated, userEnvelope[publicUser]{User: toPublicUser(u)}, "User registered successfully", nil)
	}
}

// Login returns a handler that authenticates and sets the session cookie.
// An empty role accepts any account.
func (h *AuthHandler) Login(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		u, sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password, role)
		if err != nil {
			metrics.Logins.WithLabelValues("failure").Inc()
			writeError(c, h.Logger, "login", err)
			return
		}
		metrics.Logins.WithLabelValues("success").Inc()
		h.Cookies.SetSession(c, sess.Token, h.SessionTTL)
		response.Success(c, http.StatusOK, userEnvelope[publicUser]{User: toPublicUser(u)}, "Login successful",
			map[string]any{"expiresAt": sess.ExpiresAt})
	}
}

// Logout clears the cookie. Tokens are not revoked; they expire on their own.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "Logged out successfully", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		writeError(c, h.Logger, "me", err)
		return
	}
	response.Success(c, http.StatusOK, userEnvelope[publicUser]{User: toPublicUser(u)}, "Current user", nil)
}
