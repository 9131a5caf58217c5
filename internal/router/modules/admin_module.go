package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-storefront/internal/domain/entity"
	handlers "github.com/oksasatya/marketplace-storefront/internal/interface/http"
	"github.com/oksasatya/marketplace-storefront/internal/interface/middleware"
)

// AdminModule: GET /api/admin/users, admin role only.
type AdminModule struct {
	Handler *handlers.AdminHandler
	Tokens  middleware.TokenVerifier
	Users   middleware.UserLookup
	Logger  *logrus.Logger
}

func NewAdminModule(h *handlers.AdminHandler, tokens middleware.TokenVerifier, users middleware.UserLookup, logger *logrus.Logger) *AdminModule {
	return &AdminModule{Handler: h, Tokens: tokens, Users: users, Logger: logger}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.Tokens), middleware.RequireRole(m.Users, m.Logger, entity.RoleAdmin))
	admin.GET("/users", m.Handler.SearchUsers)
}
