package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// RateLimitMiddleware caps requests per client IP over a sliding window.
type RateLimitMiddleware struct {
	maxRequests int
	window      time.Duration
	now         func() time.Time

	mu       sync.Mutex
	requests map[string][]time.Time
}

// NewRateLimitMiddleware allows maxRequests per client within window.
func NewRateLimitMiddleware(maxRequests int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		requests:    make(map[string][]time.Time),
	}
}

// allow records a request from client and reports whether it fits the window.
func (m *RateLimitMiddleware) allow(client string) bool {
	now := m.now()
	windowStart := now.Add(-m.window)

	m.mu.Lock()
	defer m.mu.Unlock()

	recent := m.requests[client][:0]
	for _, ts := range m.requests[client] {
		if ts.After(windowStart) {
			recent = append(recent, ts)
		}
	}
	if len(recent) >= m.maxRequests {
		m.requests[client] = recent
		return false
	}
	m.requests[client] = append(recent, now)
	return true
}

// RateLimit rejects requests over the limit with 429.
func (m *RateLimitMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.maxRequests <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		clientIP := getClientIP(r)
		if !m.allow(clientIP) {
			log.WithFields(log.Fields{"client": clientIP, "path": r.URL.Path}).Warn("Rate limit exceeded")
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	ip := r.RemoteAddr
	if colonIndex := strings.LastIndex(ip, ":"); colonIndex != -1 {
		ip = ip[:colonIndex]
	}
	return ip
}
