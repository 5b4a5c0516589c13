package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultGeneralRPM = 300
	defaultAuthRPM    = 10

	limiterMapHighWater = 1000
	limiterIdleCutoff   = 10 * time.Minute
)

// Credential submissions get a much smaller bucket than browsing to slow
// down stuffing attempts. Only the POSTs count; rendering the forms is
// ordinary traffic.
var authLimitedPaths = []string{
	"/account/login",
	"/account/register",
}

type clientLimiter struct {
	general  *rate.Limiter
	auth     *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware keeps a token bucket pair per client IP. The map is
// pruned of idle clients whenever it grows past the high-water mark.
type RateLimitMiddleware struct {
	generalRPM int
	authRPM    int
	mu         sync.Mutex
	clients    map[string]*clientLimiter
}

func NewRateLimitMiddleware(generalRPM int, authRPM int) *RateLimitMiddleware {
	if generalRPM <= 0 {
		generalRPM = defaultGeneralRPM
	}
	if authRPM <= 0 {
		authRPM = defaultAuthRPM
	}

	return &RateLimitMiddleware{
		generalRPM: generalRPM,
		authRPM:    authRPM,
		clients:    map[string]*clientLimiter{},
	}
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := m.limiterFor(clientIP(r))

		bucket := limiter.general
		if r.Method == http.MethodPost && isAuthPath(r.URL.Path) {
			bucket = limiter.auth
		}

		if !bucket.Allow() {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Too many requests. Please slow down and try again.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isAuthPath(path string) bool {
	lowered := strings.ToLower(path)
	for _, p := range authLimitedPaths {
		if lowered == p {
			return true
		}
	}
	return false
}

func (m *RateLimitMiddleware) limiterFor(ip string) *clientLimiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, ok := m.clients[ip]
	if !ok {
		limiter = &clientLimiter{
			general: rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.generalRPM)), m.generalRPM),
			auth:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.authRPM)), m.authRPM),
		}
		m.clients[ip] = limiter
	}
	limiter.lastSeen = time.Now()

	if len(m.clients) >= limiterMapHighWater {
		m.pruneLocked()
	}

	return limiter
}

func (m *RateLimitMiddleware) pruneLocked() {
	cutoff := time.Now().Add(-limiterIdleCutoff)
	for ip, limiter := range m.clients {
		if limiter.lastSeen.Before(cutoff) {
			delete(m.clients, ip)
		}
	}
}

// clientIP prefers proxy headers so limits follow the real client when the
// server sits behind a reverse proxy.
func clientIP(r *http.Request) string {
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
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
