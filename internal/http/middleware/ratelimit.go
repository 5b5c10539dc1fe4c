package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

// MemoryLimiter is a fixed-window per-IP limiter kept in process memory.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	max     int
	window  time.Duration
	now     func() time.Time
}

func NewMemoryLimiter(maxRequests int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		clients: make(map[string]*clientInfo),
		max:     maxRequests,
		window:  window,
		now:     time.Now,
	}
}

// Allow counts one request for ident and reports whether it fits the window.
func (l *MemoryLimiter) Allow(ident string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	ci, ok := l.clients[ident]
	if !ok || now.Sub(ci.last) > l.window {
		l.clients[ident] = &clientInfo{last: now, count: 1}
		return 1 <= l.max
	}

	ci.count++
	return ci.count <= l.max
}

// SimpleRateLimit blocks clients that send more than maxRequests per window
func (l *MemoryLimiter) SimpleRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
