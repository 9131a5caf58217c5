package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/marketplace-storefront/pkg/helpers"
)

var guardPrefixes = []string{"/account", "/checkout", "/orders"}

func newJWT(t *testing.T) *helpers.JWTManager {
	t.Helper()
	m, err := helpers.NewJWTManager("0123456789abcdef0123456789abcdef", helpers.SessionTTL)
	require.NoError(t, err)
	return m
}

func guardedEngine(m *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RouteGuard(m, guardPrefixes, "/customer-login"))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "page") }
	r.GET("/account", ok)
	r.GET("/account/orders", ok)
	r.GET("/accounts", ok)
	r.GET("/checkout", ok)
	r.GET("/", ok)
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// Requirement: prefixes match the path itself and everything below it, nothing else.
func TestProtected(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/account", true},
		{"/account/", true},
		{"/account/settings", true},
		{"/orders/123", true},
		{"/accounts", false},
		{"/checkoutx", false},
		{"/", false},
		{"/api/user/profile", false},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, Protected(test.path, guardPrefixes), test.path)
	}
	assert.False(t, Protected("/anything", []string{"", "/"}))
}

// Requirement: without a cookie a protected page redirects to login, with a fresh token it
// passes, and once the token expires it redirects again.
func TestRouteGuard_RedirectScenario(t *testing.T) {
	m := newJWT(t)
	r := guardedEngine(m)

	rec := get(r, "/account", "")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/customer-login", rec.Header().Get("Location"))

	token, _, err := m.Issue("user-1")
	require.NoError(t, err)
	rec = get(r, "/account", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "page", rec.Body.String())

	m.Now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	rec = get(r, "/account", token)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
}

// Requirement: unprotected paths are never redirected; garbage cookies on protected paths are.
func TestRouteGuard_Paths(t *testing.T) {
	r := guardedEngine(newJWT(t))

	tests := []struct {
		path     string
		token    string
		wantCode int
	}{
		{"/", "", http.StatusOK},
		{"/accounts", "", http.StatusOK},
		{"/account/orders", "", http.StatusTemporaryRedirect},
		{"/checkout", "garbage", http.StatusTemporaryRedirect},
	}
	for _, test := range tests {
		rec := get(r, test.path, test.token)
		assert.Equal(t, test.wantCode, rec.Code, test.path)
	}
}
