package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RateLimitRejections counts requests rejected by the login rate limiter, by path.
var RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "vitrin_rate_limit_rejections_total",
	Help: "Total number of requests rejected by the login rate limiter",
}, []string{"path"})

// LoginAttempts counts login attempts by outcome (success, invalid_credentials).
var LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "vitrin_login_attempts_total",
	Help: "Total number of login attempts by outcome",
}, []string{"outcome"})

// RedisErrors counts Redis command errors by operation type.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "vitrin_redis_errors_total",
	Help: "Total number of Redis errors by operation type",
}, []string{"operation"})

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The middleware registers its collectors in the default registry, so it is
// created once per process; subsequent calls return the same instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// MetricsMiddleware returns the request-metrics middleware handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
