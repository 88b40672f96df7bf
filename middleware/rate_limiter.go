package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	requestsPerMinute = 200
	limiterIdleTTL    = 10 * time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	ipLimiters   = make(map[string]*ipLimiter)
	ipLimitersMu sync.Mutex
	pruneOnce    sync.Once
)

func limiterFor(ip string) *rate.Limiter {
	ipLimitersMu.Lock()
	defer ipLimitersMu.Unlock()

	entry, ok := ipLimiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(rate.Every(time.Minute/requestsPerMinute), requestsPerMinute)}
		ipLimiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// pruneIdleLimiters drops limiter entries for IPs that have gone quiet so the
// map does not grow without bound.
func pruneIdleLimiters() {
	for range time.Tick(limiterIdleTTL) {
		cutoff := time.Now().Add(-limiterIdleTTL)
		ipLimitersMu.Lock()
		for ip, entry := range ipLimiters {
			if entry.lastSeen.Before(cutoff) {
				delete(ipLimiters, ip)
			}
		}
		ipLimitersMu.Unlock()
	}
}

// RateLimitMiddleware throttles each client IP to requestsPerMinute.
func RateLimitMiddleware() gin.HandlerFunc {
	pruneOnce.Do(func() { go pruneIdleLimiters() })

	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !limiterFor(ip).Allow() {
			zap.L().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
