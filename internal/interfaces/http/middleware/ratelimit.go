package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Shallyquinn/Chatbot/pkg/errors"
)

// RateLimitConfig holds per-client token-bucket settings.
type RateLimitConfig struct {
	RatePerSecond float64
	Burst         int

	// ClientTTL controls how long an idle client's bucket is retained.
	ClientTTL time.Duration
}

// DefaultRateLimitConfig returns the standard limits.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RatePerSecond: 10,
		Burst:         20,
		ClientTTL:     10 * time.Minute,
	}
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-client-IP token bucket.  Rejected requests get
// a 429 with Retry-After; every response carries X-RateLimit headers.
type RateLimiter struct {
	cfg     RateLimitConfig
	mu      sync.Mutex
	clients map[string]*clientBucket
	now     func() time.Time
}

// NewRateLimiter builds a RateLimiter from cfg.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = DefaultRateLimitConfig().RatePerSecond
	}
	if cfg.Burst < 1 {
		cfg.Burst = DefaultRateLimitConfig().Burst
	}
	if cfg.ClientTTL <= 0 {
		cfg.ClientTTL = DefaultRateLimitConfig().ClientTTL
	}
	return &RateLimiter{
		cfg:     cfg,
		clients: make(map[string]*clientBucket),
		now:     time.Now,
	}
}

func (rl *RateLimiter) limiterFor(clientIP string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.clients[clientIP]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RatePerSecond), rl.cfg.Burst)}
		rl.clients[clientIP] = b
	}
	b.lastSeen = now

	// Evict idle buckets opportunistically.
	if len(rl.clients) > 1024 {
		for ip, bucket := range rl.clients {
			if now.Sub(bucket.lastSeen) > rl.cfg.ClientTTL {
				delete(rl.clients, ip)
			}
		}
	}
	return b.limiter
}

// Handler returns the gin middleware.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	limitHeader := strconv.Itoa(rl.cfg.Burst)

	return func(c *gin.Context) {
		limiter := rl.limiterFor(c.ClientIP())

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", limitHeader)

		if !limiter.Allow() {
			h.Set("X-RateLimit-Remaining", "0")
			h.Set("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    string(errors.ErrCodeTooManyRequests),
				"message": errors.DefaultMessageForCode(errors.ErrCodeTooManyRequests),
			})
			return
		}

		h.Set("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		c.Next()
	}
}
