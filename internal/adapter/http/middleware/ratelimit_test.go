package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"taskapp/internal/adapter/http/middleware"
	"taskapp/internal/telemetry"
)

func limitedRouter(limits map[string]middleware.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	rl := middleware.NewRateLimiter(
		limits,
		zap.NewNop(),
		telemetry.NewAppMetrics(prometheus.NewRegistry()),
	)

	router := gin.New()
	router.Use(rl.Middleware())

	router.POST("/users", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/tasks", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	RegisterTestingT(t)

	router := limitedRouter(map[string]middleware.RateLimitConfig{
		"POST /users": {Requests: 3, Window: time.Minute},
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/users", nil)
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(200))
		Expect(w.Header().Get("X-RateLimit-Limit")).To(Equal("3"))
		Expect(w.Header().Get("X-RateLimit-Remaining")).ToNot(BeEmpty())
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	RegisterTestingT(t)

	router := limitedRouter(map[string]middleware.RateLimitConfig{
		"POST /users": {Requests: 2, Window: time.Minute},
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/users", nil)
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(200))
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users", nil)
	router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusTooManyRequests))
	Expect(w.Header().Get("X-RateLimit-Remaining")).To(Equal("0"))
}

func TestRateLimiterIgnoresUnlistedRoutes(t *testing.T) {
	RegisterTestingT(t)

	router := limitedRouter(map[string]middleware.RateLimitConfig{
		"POST /users": {Requests: 1, Window: time.Minute},
	})

	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/tasks", nil)
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(200))
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	RegisterTestingT(t)

	router := limitedRouter(map[string]middleware.RateLimitConfig{
		"POST /users": {Requests: 1, Window: 20 * time.Millisecond},
	})

	first := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users", nil)
	router.ServeHTTP(first, req)
	Expect(first.Code).To(Equal(200))

	blocked := httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/users", nil)
	router.ServeHTTP(blocked, req)
	Expect(blocked.Code).To(Equal(http.StatusTooManyRequests))

	time.Sleep(30 * time.Millisecond)

	again := httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/users", nil)
	router.ServeHTTP(again, req)
	Expect(again.Code).To(Equal(200))
}
