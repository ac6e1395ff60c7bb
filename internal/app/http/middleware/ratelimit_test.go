package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func rateLimitedRouter(limit rate.Limit, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ping", RateLimit(limit, burst), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	r := rateLimitedRouter(rate.Every(0), 3)

	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitRejectsAfterBurst(t *testing.T) {
	// refill is effectively never, so only the burst passes
	r := rateLimitedRouter(rate.Limit(1e-9), 2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
