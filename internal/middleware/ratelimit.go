package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	errs "github.com/chybatronik/driftiAPI/internal/errors"
	"github.com/chybatronik/driftiAPI/internal/logging"
)

const (
	visitorCleanupInterval = 5 * time.Minute
	visitorIdleTTL         = 10 * time.Minute
)

// RateLimiter implements IP-based rate limiting
type RateLimiter struct {
	visitors   map[string]*Visitor
	mu         sync.Mutex
	rate       rate.Limit
	burst      int
	retryAfter time.Duration
	logger     *logging.Logger
}

// Visitor tracks rate limiting state for a single IP
type Visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing requestsPerSecond per client IP
// with the given burst. A zero rate disables limiting.
func NewRateLimiter(requestsPerSecond float64, burst int, retryAfter time.Duration, logger *logging.Logger) *RateLimiter {
	return &RateLimiter{
		visitors:   make(map[string]*Visitor),
		rate:       rate.Limit(requestsPerSecond),
		burst:      burst,
		retryAfter: retryAfter,
		logger:     logger,
	}
}

// Handler returns the rate limiting middleware
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	retryAfter := strconv.Itoa(int(rl.retryAfter.Seconds()))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)
		if ip == "" {
			rl.logger.Warn("rate limiting skipped: unable to extract client IP", "remote_addr", r.RemoteAddr)
			next.ServeHTTP(w, r)
			return
		}

		if !rl.Allow(ip) {
			rl.logger.Warn("rate limit exceeded", "ip", ip, logging.FieldHTTPPath, r.URL.Path)
			errs.WriteRateLimitError(w, retryAfter)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Allow checks if an IP is allowed to make a request
func (rl *RateLimiter) Allow(ip string) bool {
	if rl.rate == 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	visitor, exists := rl.visitors[ip]
	if !exists {
		visitor = &Visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[ip] = visitor
	}
	visitor.lastSeen = time.Now()
	return visitor.limiter.Allow()
}

// RunCleanup evicts idle visitors until ctx is cancelled
func (rl *RateLimiter) RunCleanup(ctx context.Context) error {
	ticker := time.NewTicker(visitorCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			rl.evictIdle(now)
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	evicted := 0
	for ip, visitor := range rl.visitors {
		if now.Sub(visitor.lastSeen) > visitorIdleTTL {
			delete(rl.visitors, ip)
			evicted++
		}
	}
	return evicted
}

// extractIP returns the client IP from RemoteAddr. Forwarding headers are only
// honoured when the router installs the real IP middleware (TRUST_PROXY).
func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// chi RealIP rewrites RemoteAddr without a port
		host = r.RemoteAddr
	}

	if net.ParseIP(host) == nil {
		return ""
	}
	return host
}
