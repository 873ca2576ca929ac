package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	visitorGCInterval = 5 * time.Minute
	visitorStaleAfter = 10 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	last    time.Time
}

// visitorRegistry holds per-IP limiters for one RateLimit instance.
// Stale entries are swept inline during lookups, so no background
// goroutine is needed.
type visitorRegistry struct {
	mu       sync.Mutex
	visitors map[string]*limiterEntry
	lastGC   time.Time
	rps      rate.Limit
	burst    int
}

func (g *visitorRegistry) allow(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if now.Sub(g.lastGC) > visitorGCInterval {
		for k, v := range g.visitors {
			if now.Sub(v.last) > visitorStaleAfter {
				delete(g.visitors, k)
			}
		}
		g.lastGC = now
	}

	le, ok := g.visitors[ip]
	if !ok {
		le = &limiterEntry{limiter: rate.NewLimiter(g.rps, g.burst)}
		g.visitors[ip] = le
	}
	le.last = now
	return le.limiter.Allow()
}

func getIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit applies a simple IP-based token bucket limiter. Each call
// owns its limiter state, so separate routers never share buckets.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	reg := &visitorRegistry{
		visitors: map[string]*limiterEntry{},
		lastGC:   time.Now(),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !reg.allow(getIP(r)) {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
