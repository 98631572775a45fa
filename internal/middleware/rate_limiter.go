package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MartinOstios/backend-posco/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Limiter counts hits per key in fixed windows.
type Limiter interface {
	// Allow records one hit and reports whether key is still under its limit,
	// plus the time left in the current window.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// ── Redis limiter ─────────────────────────────────────────────────────────────

// RedisLimiter shares counters across instances with INCR + EXPIRE.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: int64(limit), window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := "ratelimit:" + key
	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return true, 0, fmt.Errorf("rate limit %s: %w", key, err)
	}
	ttl, err := l.rdb.PTTL(ctx, k).Result()
	if err != nil {
		return true, 0, fmt.Errorf("rate limit %s: %w", key, err)
	}
	// first hit of a window, or a key left without expiry
	if n == 1 || ttl < 0 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return true, 0, fmt.Errorf("rate limit %s: %w", key, err)
		}
		ttl = l.window
	}
	return n <= l.limit, ttl, nil
}

// ── In-process limiter ────────────────────────────────────────────────────────

type windowEntry struct {
	count     int
	windowEnd time.Time
}

// MemoryLimiter is the single-instance fallback when Redis is not configured.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.After(e.windowEnd) {
		e = &windowEntry{windowEnd: now.Add(l.window)}
		l.entries[key] = e
	}
	e.count++
	return e.count <= l.limit, e.windowEnd.Sub(now), nil
}

// Purge drops expired windows so IPs that never return do not accumulate.
func (l *MemoryLimiter) Purge() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	purged := 0
	for key, e := range l.entries {
		if now.After(e.windowEnd) {
			delete(l.entries, key)
			purged++
		}
	}
	return purged
}

// RunPurge calls Purge every interval until ctx is done.
func (l *MemoryLimiter) RunPurge(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Purge(); n > 0 {
				log.Debug().Int("entries_purged", n).Msg("rate limiter purged")
			}
		}
	}
}

// RateLimit rejects a client IP with 429 once it exceeds the limiter's budget
// for scope. Limiter failures let the request through.
func RateLimit(l Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retry, err := l.Allow(c.Request.Context(), scope+":"+c.ClientIP())
		if err != nil {
			log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Too many requests, try again later"))
			return
		}
		c.Next()
	}
}
