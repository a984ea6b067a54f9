package middleware

import (
	"sync"
	"time"

	"vitrin/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LoginLimiter enforces a fixed window of at most Max requests per client
// address. State is in-process only: limits reset on restart and are not
// shared across horizontally scaled instances, which is acceptable for the
// single login endpoint it protects.
type LoginLimiter struct {
	Window time.Duration
	Max    int

	mu   sync.Mutex
	hits map[string]*window

	now func() time.Time // overridable in tests
}

type window struct {
	count   int
	resetAt time.Time
}

// NewLoginLimiter returns a limiter allowing max requests per window.
func NewLoginLimiter(windowDur time.Duration, max int) *LoginLimiter {
	return &LoginLimiter{
		Window: windowDur,
		Max:    max,
		hits:   make(map[string]*window),
		now:    time.Now,
	}
}

// Allow records a hit for key and reports whether the request may proceed.
// Once the window is exhausted further calls are rejected without side
// effects until the window expires.
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	current, ok := l.hits[key]
	if !ok || now.After(current.resetAt) {
		l.hits[key] = &window{count: 1, resetAt: now.Add(l.Window)}
		return true
	}

	if current.count >= l.Max {
		return false
	}

	current.count++
	return true
}

// Reset clears all recorded windows. Intended for tests.
func (l *LoginLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hits = make(map[string]*window)
}

// Handler returns a Fiber middleware that rejects over-limit clients with 429.
func (l *LoginLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP()
		if key == "" {
			key = "unknown"
		}

		if !l.Allow(key) {
			RateLimitRejections.WithLabelValues(c.Path()).Inc()
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				models.NewRateLimitError())
		}
		return c.Next()
	}
}
