package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/marketplace-storefront/pkg/helpers"
)

// Protected reports whether path falls under one of prefixes. A prefix matches
// the path itself and anything below it, so "/account" covers "/account/orders"
// but not "/accounts".
func Protected(path string, prefixes []string) bool {
	for _, p := range prefixes {
		p = strings.TrimRight(p, "/")
		if p == "" {
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// RouteGuard redirects requests for protected pages to loginPath unless they carry
// a verifiable session cookie. It only gates; identity is not passed downstream.
func RouteGuard(tokens TokenVerifier, prefixes []string, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Protected(c.Request.URL.Path, prefixes) {
			c.Next()
			return
		}
		token := helpers.SessionToken(c)
		if token != "" {
			if _, err := tokens.Verify(token); err == nil {
				c.Next()
				return
			}
		}
		c.Redirect(http.StatusTemporaryRedirect, loginPath)
		c.Abort()
	}
}
