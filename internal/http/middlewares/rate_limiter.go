package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimiter allows limit requests per client IP in each fixed window.
// A non-positive limit disables it.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	return rateLimiter(limit, window, time.Now)
}

func rateLimiter(limit int, window time.Duration, now func() time.Time) echo.MiddlewareFunc {
	type bucket struct {
		count int
		start time.Time
	}

	var (
		mu        sync.Mutex
		buckets   = make(map[string]*bucket)
		lastSweep time.Time
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limit <= 0 {
			return next
		}

		return func(c echo.Context) error {
			ts := now()
			key := c.RealIP()

			mu.Lock()
			if ts.Sub(lastSweep) > window {
				for ip, b := range buckets {
					if ts.Sub(b.start) > window {
						delete(buckets, ip)
					}
				}
				lastSweep = ts
			}

			b, ok := buckets[key]
			if !ok || ts.Sub(b.start) > window {
				b = &bucket{start: ts}
				buckets[key] = b
			}

			if b.count >= limit {
				retry := window - ts.Sub(b.start)
				mu.Unlock()
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			b.count++
			mu.Unlock()

			return next(c)
		}
	}
}
