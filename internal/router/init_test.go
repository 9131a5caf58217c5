package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/marketplace-storefront/config"
	"github.com/oksasatya/marketplace-storefront/internal/container"
	"github.com/oksasatya/marketplace-storefront/internal/infrastructure/memory"
	"github.com/oksasatya/marketplace-storefront/pkg/helpers"
	"github.com/oksasatya/marketplace-storefront/pkg/validation"
)

// Requirement: every account route is mounted, and the account routes sit behind API auth.
func TestInitModules_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	cfg := &config.Config{
		Env:            "development",
		JWTSecret:      "0123456789abcdef0123456789abcdef",
		BcryptCost:     4,
		MetricsEnabled: true,
		ESUsersIndex:   "users",
	}
	c, err := container.New(cfg, helpers.NopLogger(), memory.NewUserRepository())
	require.NoError(t, err)

	r := gin.New()
	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()

	routes := map[string]bool{}
	for _, ri := range r.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"POST /api/auth/logout",
		"GET /api/auth/me",
		"POST /api/auth/seller/register",
		"POST /api/auth/reseller/login",
		"GET /api/user/profile",
		"PUT /api/user/update-profile",
		"PUT /api/user/settings",
		"PUT /api/user/address",
		"DELETE /api/user/address",
		"GET /api/admin/users",
		"GET /metrics",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
	assert.False(t, routes["POST /api/auth/admin/register"])

	for _, path := range []string{"/api/user/profile", "/api/admin/users", "/api/auth/me"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
