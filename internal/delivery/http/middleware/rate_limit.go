package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"meal-planner-backend/internal/delivery/http/response"
	"meal-planner-backend/pkg/apperror"
	"meal-planner-backend/pkg/logger"
	"meal-planner-backend/pkg/redis"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig is a fixed-window limit keyed by client IP.
type RateLimitConfig struct {
	Limit     int
	Window    time.Duration
	KeyPrefix string
	// FailClosed rejects requests when the Redis backend errors; the
	// login endpoint fails closed, everything else fails open.
	FailClosed bool
}

// GlobalRateLimitConfig covers all API traffic.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
	}
}

// LoginRateLimitConfig is the strict limit for credential endpoints.
func LoginRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:login:",
		FailClosed: true,
	}
}

// Atomic increment with TTL set on the first hit of each window.
const rateLimitScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

type windowEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

var (
	memoryWindows sync.Map
	cleanupOnce   sync.Once
)

// RateLimit enforces cfg using Redis when available, falling back to an
// in-process fixed window otherwise.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	cleanupOnce.Do(startMemoryCleanup)

	return func(c *gin.Context) {
		key := cfg.KeyPrefix + c.ClientIP()

		count, err := incrementWindow(c, key, cfg)
		if err != nil {
			if cfg.FailClosed {
				logger.Log.Warn("rate limiter unavailable, failing closed", "error", err)
				response.Error(c, http.StatusServiceUnavailable, apperror.KindInternal,
					"Service temporarily unavailable")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		if remaining := cfg.Limit - count; remaining > 0 {
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		} else {
			c.Header("X-RateLimit-Remaining", "0")
		}

		if count > cfg.Limit {
			response.Error(c, http.StatusTooManyRequests, "rate_limited",
				"Too many requests, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}

func incrementWindow(c *gin.Context, key string, cfg RateLimitConfig) (int, error) {
	if client := redis.Client(); client != nil {
		seconds := int(cfg.Window.Seconds())
		result, err := client.Eval(c.Request.Context(), rateLimitScript, []string{key}, seconds).Int()
		if err != nil {
			return 0, fmt.Errorf("rate limit eval: %w", err)
		}
		return result, nil
	}
	return memoryIncrement(key, cfg.Window), nil
}

func memoryIncrement(key string, window time.Duration) int {
	now := time.Now()
	v, _ := memoryWindows.LoadOrStore(key, &windowEntry{resetAt: now.Add(window)})
	entry := v.(*windowEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(window)
	}
	entry.count++
	return entry.count
}

func startMemoryCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			now := time.Now()
			memoryWindows.Range(func(key, value interface{}) bool {
				entry := value.(*windowEntry)
				entry.mu.Lock()
				expired := now.After(entry.resetAt)
				entry.mu.Unlock()
				if expired {
					memoryWindows.Delete(key)
				}
				return true
			})
		}
	}()
}
