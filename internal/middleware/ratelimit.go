package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

// ipLimiter keeps one token bucket per client IP.
type ipLimiter struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int
}

func newIPLimiter(cfg config.RateLimitConfig) *ipLimiter {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}
	return &ipLimiter{rps: rate.Limit(cfg.RPS), burst: burst}
}

func (l *ipLimiter) get(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	lim := rate.NewLimiter(l.rps, l.burst)
	actual, _ := l.limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}

func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	l := newIPLimiter(cfg)

	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			httperr.TooManyRequests(c, "rate_limited", "Too many requests. Slow down.")
			return
		}
		c.Next()
	}
}
