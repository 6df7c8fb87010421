package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/router"
	"golang.org/x/time/rate"
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit allows r requests per second with bursts of b for each client ip. Limiters idle for
// ten minutes are dropped.
func RateLimit(r rate.Limit, b int) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := map[string]*ipLimiter{}
	lastCleanup := time.Now()

	allow := func(ip string) bool {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		if now.Sub(lastCleanup) > 5*time.Minute {
			for k, v := range limiters {
				if now.Sub(v.lastSeen) > 10*time.Minute {
					delete(limiters, k)
				}
			}
			lastCleanup = now
		}

		l, ok := limiters[ip]
		if !ok {
			l = &ipLimiter{limiter: rate.NewLimiter(r, b)}
			limiters[ip] = l
		}
		l.lastSeen = now

		return l.limiter.Allow()
	}

	return func(c *gin.Context) {
		if !allow(c.ClientIP()) {
			router.WriteError(c, http.StatusTooManyRequests,
				errorx.New(errorx.TooManyRequests, "Too many requests"))
			c.Abort()
			return
		}

		c.Next()
	}
}
