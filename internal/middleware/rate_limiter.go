package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-api/internal/handler"
)

type RateLimiterConfig struct {
	Rate  rate.Limit
	Burst int
	// Idle limiters are dropped after this long.
	IdleTimeout time.Duration
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	config   RateLimiterConfig
	limiters *gocache.Cache
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = 10 * time.Minute
	}
	return &RateLimiter{
		config:   config,
		limiters: gocache.New(config.IdleTimeout, 2*config.IdleTimeout),
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	if v, found := rl.limiters.Get(key); found {
		l := v.(*rate.Limiter)
		rl.limiters.SetDefault(key, l)
		return l
	}

	l := rate.NewLimiter(rl.config.Rate, rl.config.Burst)
	// Add fails when a concurrent request created the limiter first
	if err := rl.limiters.Add(key, l, gocache.DefaultExpiration); err != nil {
		if v, found := rl.limiters.Get(key); found {
			return v.(*rate.Limiter)
		}
	}
	return l
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, handler.NewErrorResponse("rate limit exceeded"))
			return
		}
		c.Next()
	}
}
