package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/marketplace-storefront/internal/interface/middleware"
)

// MetricsModule exposes Prometheus metrics at /metrics. Scrapers on private
// networks bypass the per-IP limit.
type MetricsModule struct {
	Gatherer prometheus.Gatherer
	RDB      *redis.Client
}

func NewMetricsModule(g prometheus.Gatherer, rdb *redis.Client) *MetricsModule {
	return &MetricsModule{Gatherer: g, RDB: rdb}
}

func (m *MetricsModule) RegisterEngine(e *gin.Engine) {
	rl := middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	e.GET("/metrics", rl, gin.WrapH(promhttp.HandlerFor(m.Gatherer, promhttp.HandlerOpts{})))
}
