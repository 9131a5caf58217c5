package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/marketplace-storefront/internal/interface/http"
	"github.com/oksasatya/marketplace-storefront/internal/interface/middleware"
)

// UserModule wires the account endpoints. Every route requires the session cookie:
// GET /api/user/profile, PUT /api/user/update-profile, PUT /api/user/settings,
// PUT /api/user/address, DELETE /api/user/address
type UserModule struct {
	Handler *handlers.UserHandler
	Tokens  middleware.TokenVerifier
	RDB     *redis.Client
}

func NewUserModule(h *handlers.UserHandler, tokens middleware.TokenVerifier, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Tokens: tokens, RDB: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	user.Use(middleware.Auth(m.Tokens))
	user.Use(middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		user.GET("/profile", m.Handler.GetProfile)
		user.PUT("/update-profile", m.Handler.UpdateProfile)
		user.PUT("/settings", m.Handler.UpdateSettings)
		user.PUT("/address", m.Handler.UpsertAddress)
		user.DELETE("/address", m.Handler.DeleteAddress)
	}
}
