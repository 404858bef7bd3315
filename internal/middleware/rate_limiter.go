package middleware

import (
	"sync"
	"time"

	"financial-tracking/internal/errors"
	"financial-tracking/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	defaultRequestsPerSecond = 5
	defaultBurst             = 10

	clientMaxIdle  = 3 * time.Minute
	evictionPeriod = time.Minute
)

type clientLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// limiterRegistry holds one token bucket per client IP. Idle clients are
// evicted by a janitor goroutine so the map does not grow unbounded.
type limiterRegistry struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
}

func newLimiterRegistry(rps rate.Limit, burst int) *limiterRegistry {
	return &limiterRegistry{
		clients: make(map[string]*clientLimiter),
		rps:     rps,
		burst:   burst,
	}
}

func (r *limiterRegistry) allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	client, ok := r.clients[ip]
	if !ok {
		client = &clientLimiter{lim: rate.NewLimiter(r.rps, r.burst)}
		r.clients[ip] = client
	}
	client.lastSeen = time.Now()
	return client.lim.Allow()
}

func (r *limiterRegistry) evictStale() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ip, client := range r.clients {
		if time.Since(client.lastSeen) > clientMaxIdle {
			delete(r.clients, ip)
		}
	}
}

func (r *limiterRegistry) janitor() {
	for {
		time.Sleep(evictionPeriod)
		r.evictStale()
	}
}

// RateLimiter limits requests per client IP with the default budget.
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterWithConfig(defaultRequestsPerSecond, defaultBurst)
}

// RateLimiterWithConfig limits requests per client IP to rps sustained with
// the given burst. Each call owns its own registry, so distinct route groups
// can carry distinct budgets.
func RateLimiterWithConfig(rps int, burst int) echo.MiddlewareFunc {
	registry := newLimiterRegistry(rate.Limit(rps), burst)
	go registry.janitor()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !registry.allow(clientIP(c)) {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}

func clientIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Request().Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.RealIP()
}
