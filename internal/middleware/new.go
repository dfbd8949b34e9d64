package middleware

import (
	"tailortalk/config"
	"tailortalk/pkg/log"
	"tailortalk/pkg/metrics"
)

// Middleware bundles the gin middlewares shared by every route group.
type Middleware struct {
	l       log.Logger
	cors    config.CORSConfig
	limiter *rateLimiter
	metrics *metrics.Metrics
}

// New builds the middleware set. The rate limiter is only created when
// enabled in cfg.
func New(l log.Logger, cors config.CORSConfig, limit config.RateLimitConfig, m *metrics.Metrics) Middleware {
	mw := Middleware{
		l:       l,
		cors:    cors,
		metrics: m,
	}
	if limit.Enabled && limit.RequestsPerMin > 0 {
		mw.limiter = newRateLimiter(limit.RequestsPerMin)
	}
	return mw
}
