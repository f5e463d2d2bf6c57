package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"go-file-manager/internal/metrics"
	"go-file-manager/pkg/apierror"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware keeps one token bucket per client IP. A non-positive
// rpm disables limiting.
type RateLimitMiddleware struct {
	rpm     int
	exempt  []string
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// NewRateLimitMiddleware limits every path except those starting with one of
// the exempt prefixes.
func NewRateLimitMiddleware(rpm int, exempt ...string) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		rpm:     rpm,
		exempt:  exempt,
		clients: map[string]*clientLimiter{},
	}
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.rpm <= 0 || m.isExempt(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		if !m.getLimiter(extractClientIP(r)).Allow() {
			metrics.RecordRateLimitHit()
			w.Header().Set("Retry-After", "60")
			writeFailure(w, http.StatusTooManyRequests, apierror.CodeRateLimited, "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) isExempt(path string) bool {
	lowered := strings.ToLower(path)
	for _, prefix := range m.exempt {
		if strings.HasPrefix(lowered, prefix) {
			return true
		}
	}
	return false
}

func (m *RateLimitMiddleware) getLimiter(clientIP string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if client, exists := m.clients[clientIP]; exists {
		client.lastSeen = time.Now()
		m.gcLocked()
		return client.limiter
	}

	created := &clientLimiter{
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.rpm)), m.rpm),
		lastSeen: time.Now(),
	}
	m.clients[clientIP] = created
	m.gcLocked()

	return created.limiter
}

func (m *RateLimitMiddleware) gcLocked() {
	if len(m.clients) < 1000 {
		return
	}

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range m.clients {
		if client.lastSeen.Before(cutoff) {
			delete(m.clients, ip)
		}
	}
}

func extractClientIP(r *http.Request) string {
	forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	realIP := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}

	if strings.TrimSpace(r.RemoteAddr) == "" {
		return "unknown"
	}

	return r.RemoteAddr
}
