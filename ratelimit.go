package caelum

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"golang.org/x/time/rate"
)

// RateLimitConfig configures the RateLimit middleware.
type RateLimitConfig struct {
	Rate            float64                           // requests per second
	Burst           int                               // max burst
	KeyFunc         func(req *Request) string         // default: remote IP
	OnLimit         func(req *Request, res *Response) // default: 429 response
	CleanupInterval time.Duration                     // how often to prune idle limiters (default: 1m)
	MaxIdle         time.Duration                     // remove limiters idle longer than this (default: 5m)
	Clock           clock.Clock                       // time source (default: wall clock)
}

// RateLimit returns middleware that applies per-key rate limiting.
func RateLimit(cfg RateLimitConfig) Middleware {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(req *Request) string {
			host, _, err := net.SplitHostPort(req.RemoteAddr)
			if err != nil {
				return req.RemoteAddr
			}
			return host
		}
	}
	if cfg.OnLimit == nil {
		cfg.OnLimit = func(_ *Request, res *Response) {
			res.Error(http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
		}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	cleanupInterval := cfg.CleanupInterval
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	maxIdle := cfg.MaxIdle
	if maxIdle <= 0 {
		maxIdle = 5 * time.Minute
	}

	var (
		mu          sync.Mutex
		limiters    = make(map[string]*limiterEntry)
		lastCleanup time.Time
	)

	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request, res *Response) {
			key := cfg.KeyFunc(req)

			mu.Lock()
			now := cfg.Clock.Now()

			// Lazy cleanup of expired limiters.
			if now.Sub(lastCleanup) >= cleanupInterval {
				for k, e := range limiters {
					if now.Sub(e.lastSeen) > maxIdle {
						delete(limiters, k)
					}
				}
				lastCleanup = now
			}

			entry, ok := limiters[key]
			if !ok {
				entry = &limiterEntry{
					limiter: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
				}
				limiters[key] = entry
			}
			entry.lastSeen = now
			mu.Unlock()

			if !entry.limiter.Allow() {
				retryAfter := strconv.FormatFloat(1/cfg.Rate, 'f', 0, 64)
				res.header().Set("Retry-After", retryAfter)
				cfg.OnLimit(req, res)
				return
			}

			next(ctx, req, res)
		}
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}
