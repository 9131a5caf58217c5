package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequests counts requests by method, matched route and status code.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Logins counts login attempts; result is "success" or "failure".
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_auth_login_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	Registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_auth_register_total",
			Help: "Total number of account registrations",
		},
		[]string{"role"},
	)

	// AuthErrors counts rejected or failed auth operations by type,
	// e.g. "invalid_token", "duplicate_email", "wrong_password", "internal".
	AuthErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"},
	)
)

var once sync.Once

// Register adds all collectors to reg once per process.
func Register(reg prometheus.Registerer) {
	once.Do(func() {
		reg.MustRegister(HTTPRequests, HTTPDuration, Logins, Registrations, AuthErrors)
	})
}
