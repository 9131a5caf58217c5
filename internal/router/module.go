package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that can register its routes on a RouterGroup
type Module interface {
	Register(rg *gin.RouterGroup)
}

// EngineModule registers routes outside the /api group, e.g. /metrics or storefront pages.
type EngineModule interface {
	RegisterEngine(e *gin.Engine)
}
