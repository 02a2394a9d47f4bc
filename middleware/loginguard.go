package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// LoginGuard applies per-IP rate limiting to the login route, on top of
// the per-account lockout tracked on the user record.
type LoginGuard struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewLoginGuard allows roughly rps login attempts per second per IP with
// the given burst. Zero values fall back to one attempt per 2s, burst 5.
func NewLoginGuard(rps float64, burst int) *LoginGuard {
	if rps <= 0 {
		rps = 0.5
	}
	if burst <= 0 {
		burst = 5
	}
	return &LoginGuard{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (g *LoginGuard) limiter(ip string) *rate.Limiter {
	g.mu.Lock()
	defer g.mu.Unlock()
	// Bound the map; a reset after a flood is acceptable for a login guard.
	if len(g.limiters) > 10000 {
		g.limiters = make(map[string]*rate.Limiter)
	}
	l, ok := g.limiters[ip]
	if !ok {
		l = rate.NewLimiter(g.rps, g.burst)
		g.limiters[ip] = l
	}
	return l
}

// Allow reports whether a login attempt from ip is within the limit.
func (g *LoginGuard) Allow(ip string) bool {
	return g.limiter(ip).Allow()
}

// Middleware rate-limits POSTs by client IP. Run it behind chi's RealIP so
// RemoteAddr reflects the forwarded client address.
func (g *LoginGuard) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			if !g.Allow(r.RemoteAddr) {
				fail(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "too many login attempts, slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
