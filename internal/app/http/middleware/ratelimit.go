package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type rateClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns a per-client-IP token bucket limiter. Stale client
// entries are dropped after an hour so the map cannot grow forever.
func RateLimit(limit rate.Limit, burst int) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		clients = make(map[string]*rateClient)
	)

	cleanup := func(now time.Time) {
		for ip, cl := range clients {
			if now.Sub(cl.lastSeen) > time.Hour {
				delete(clients, ip)
			}
		}
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		cl, ok := clients[ip]
		if !ok {
			cl = &rateClient{limiter: rate.NewLimiter(limit, burst)}
			clients[ip] = cl
			cleanup(now)
		}
		cl.lastSeen = now
		allowed := cl.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, slow down"})
			return
		}

		c.Next()
	}
}
