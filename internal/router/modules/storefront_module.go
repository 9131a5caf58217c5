package modules

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/marketplace-storefront/pkg/response"
)

// StorefrontModule serves the built storefront from Dir. Unknown non-API paths
// fall back to index.html so client-side routes such as /account load.
type StorefrontModule struct {
	Dir string
}

func NewStorefrontModule(dir string) *StorefrontModule {
	return &StorefrontModule{Dir: dir}
}

func (m *StorefrontModule) RegisterEngine(e *gin.Engine) {
	index := filepath.Join(m.Dir, "index.html")
	e.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/api/") || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			response.Error[any](c, http.StatusNotFound, "Not found", nil)
			return
		}
		if f, ok := m.file(p); ok {
			c.File(f)
			return
		}
		c.File(index)
	})
}

// file resolves p inside Dir, refusing anything that escapes it.
func (m *StorefrontModule) file(p string) (string, bool) {
	clean := filepath.Clean("/" + p)
	if clean == "/" {
		return "", false
	}
	full := filepath.Join(m.Dir, filepath.FromSlash(clean))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}
