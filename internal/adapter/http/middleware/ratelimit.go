package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"taskapp/internal/adapter/http/helper"
	"taskapp/internal/telemetry"
)

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// DefaultRateLimits throttles the unauthenticated account endpoints per
// client IP.
func DefaultRateLimits() map[string]RateLimitConfig {
	return map[string]RateLimitConfig{
		"POST /users":       {Requests: 5, Window: time.Minute},
		"POST /users/login": {Requests: 10, Window: time.Minute},
	}
}

type rateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

type RateLimiter struct {
	cache   *gocache.Cache
	configs map[string]RateLimitConfig
	logger  *zap.Logger
	metrics *telemetry.AppMetrics
}

func NewRateLimiter(configs map[string]RateLimitConfig, logger *zap.Logger, metrics *telemetry.AppMetrics) *RateLimiter {
	return &RateLimiter{
		cache:   gocache.New(5*time.Minute, 10*time.Minute),
		configs: configs,
		logger:  logger,
		metrics: metrics,
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.Request.Method + " " + c.FullPath()

		config, limited := rl.configs[route]

		if !limited {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", route, c.ClientIP())
		now := time.Now()

		entry := rateLimitEntry{Count: 0, ResetTime: now.Add(config.Window)}

		if cached, found := rl.cache.Get(key); found {
			entry = cached.(rateLimitEntry)

			if now.After(entry.ResetTime) {
				entry = rateLimitEntry{Count: 0, ResetTime: now.Add(config.Window)}
			}
		}

		entry.Count++
		rl.cache.Set(key, entry, time.Until(entry.ResetTime))

		remaining := max(config.Requests-entry.Count, 0)

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(entry.ResetTime.Unix(), 10))

		if entry.Count > config.Requests {
			if rl.logger != nil {
				rl.logger.Warn("rate limit exceeded",
					zap.String("route", route),
					zap.String("client_ip", c.ClientIP()),
				)
			}

			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(route)
			}

			helper.SendTooManyRequests(c, "Too many requests, slow down")
			c.Abort()
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(route)
		}

		c.Next()
	}
}
