package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/marketplace-storefront/internal/domain/entity"
	handlers "github.com/oksasatya/marketplace-storefront/internal/interface/http"
	"github.com/oksasatya/marketplace-storefront/internal/interface/middleware"
)

// AuthLimits are requests per minute per client IP and route.
type AuthLimits struct {
	Login    int
	Register int
}

// AuthModule routes:
// Public: POST /api/auth/register, /api/auth/login, /api/auth/logout
// Public, role scoped: POST /api/auth/{customer|seller|reseller}/register and /login
// Protected: GET /api/auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	Tokens  middleware.TokenVerifier
	RDB     *redis.Client
	Limits  AuthLimits
}

func NewAuthModule(h *handlers.AuthHandler, tokens middleware.TokenVerifier, rdb *redis.Client, limits AuthLimits) *AuthModule {
	return &AuthModule{Handler: h, Tokens: tokens, RDB: rdb, Limits: limits}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.RDB, m.Limits.Login, time.Minute, middleware.KeyByIPAndPath(), nil)
	registerLimiter := middleware.RateLimit(m.RDB, m.Limits.Register, time.Minute, middleware.KeyByIPAndPath(), nil)

	auth := rg.Group("/auth")
	auth.POST("/register", registerLimiter, m.Handler.Register(entity.RoleCustomer))
	auth.POST("/login", loginLimiter, m.Handler.Login(""))
	auth.POST("/logout", m.Handler.Logout)
	auth.GET("/me", middleware.Auth(m.Tokens), m.Handler.Me)

	for _, role := range []entity.Role{entity.RoleCustomer, entity.RoleSeller, entity.RoleReseller} {
		scoped := auth.Group("/" + role.String())
		scoped.POST("/register", registerLimiter, m.Handler.Register(role))
		scoped.POST("/login", loginLimiter, m.Handler.Login(role))
	}
}
