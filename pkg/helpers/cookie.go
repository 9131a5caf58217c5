package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookieName carries the session token; it is the only session transport.
const SessionCookieName = "auth_token"

type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

// SetSession writes the session cookie: HttpOnly, SameSite=Strict, Path=/, Max-Age equal to ttl.
func (m *Manager) SetSession(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, token, maxAgeFrom(ttl), "/", m.Domain, m.Secure, true)
}

// Clear expires the session cookie on the client. Nothing is invalidated server side.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, "", -1, "/", m.Domain, m.Secure, true)
}

// SessionToken returns the raw session cookie value, or "" when absent.
func SessionToken(c *gin.Context) string {
	v, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return v
}

func maxAgeFrom(ttl time.Duration) int {
	sec := int(ttl / time.Second)
	if sec < 0 {
		return 0
	}
	return sec
}
