package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// RateLimiterTestSuite defines the test suite for the rate limiter middleware
type RateLimiterTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

// SetupTest runs before each test
func (s *RateLimiterTestSuite) SetupTest() {
	s.echo = echo.New()
}

// TestRateLimiterTestSuite runs the test suite
func TestRateLimiterTestSuite(t *testing.T) {
	suite.Run(t, new(RateLimiterTestSuite))
}

func (s *RateLimiterTestSuite) doRequest(handler echo.HandlerFunc, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", ip)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	_ = handler(c)
	return rec
}

func (s *RateLimiterTestSuite) TestRateLimiter_AllowsWithinLimit() {
	handler := RateLimiterWithConfig(100, 100)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 10; i++ {
		rec := s.doRequest(handler, "10.0.0.1")
		s.Equal(http.StatusOK, rec.Code)
	}
}

func (s *RateLimiterTestSuite) TestRateLimiter_BlocksBeyondBurst() {
	handler := RateLimiterWithConfig(1, 2)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	s.Equal(http.StatusOK, s.doRequest(handler, "10.0.0.2").Code)
	s.Equal(http.StatusOK, s.doRequest(handler, "10.0.0.2").Code)
	s.Equal(http.StatusTooManyRequests, s.doRequest(handler, "10.0.0.2").Code)
}

func (s *RateLimiterTestSuite) TestRateLimiter_LimitsPerIP() {
	handler := RateLimiterWithConfig(1, 1)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	s.Equal(http.StatusOK, s.doRequest(handler, "10.0.0.3").Code)
	s.Equal(http.StatusTooManyRequests, s.doRequest(handler, "10.0.0.3").Code)

	// A different client gets its own budget.
	s.Equal(http.StatusOK, s.doRequest(handler, "10.0.0.4").Code)
}

func (s *RateLimiterTestSuite) TestRegistry_EvictsIdleClients() {
	registry := newLimiterRegistry(1, 1)
	registry.allow("10.0.0.5")
	registry.allow("10.0.0.6")

	registry.mu.Lock()
	registry.clients["10.0.0.5"].lastSeen = time.Now().Add(-10 * time.Minute)
	registry.mu.Unlock()

	registry.evictStale()

	registry.mu.Lock()
	defer registry.mu.Unlock()
	s.NotContains(registry.clients, "10.0.0.5")
	s.Contains(registry.clients, "10.0.0.6")
}
