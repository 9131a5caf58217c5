package router

import (
	"github.com/oksasatya/marketplace-storefront/internal/container"
	handlers "github.com/oksasatya/marketplace-storefront/internal/interface/http"
	"github.com/oksasatya/marketplace-storefront/internal/router/modules"
	"github.com/oksasatya/marketplace-storefront/pkg/helpers"
)

// InitModules builds handlers from the container and registers every module.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	svc := c.AccountService()
	cfg := c.Config

	authHandler := handlers.NewAuthHandler(svc, c.Cookies, helpers.SessionTTL, c.Logger)
	userHandler := handlers.NewUserHandler(svc, c.Logger)
	adminHandler := handlers.NewAdminHandler(svc, c.Logger)

	r.Add(modules.NewAuthModule(authHandler, c.JWT, c.Redis, modules.AuthLimits{
		Login:    cfg.LoginRateLimit,
		Register: cfg.RegisterRateLimit,
	}))
	r.Add(modules.NewUserModule(userHandler, c.JWT, c.Redis))
	r.Add(modules.NewAdminModule(adminHandler, c.JWT, svc, c.Logger))

	if cfg.MetricsEnabled {
		r.AddEngine(modules.NewMetricsModule(c.Gatherer, c.Redis))
	}
	if cfg.FrontendDir != "" {
		r.AddEngine(modules.NewStorefrontModule(cfg.FrontendDir))
	}
}
