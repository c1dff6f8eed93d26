package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"animal-reservations/internal/platform/apperr"
	"animal-reservations/internal/platform/httpx"
	"animal-reservations/internal/platform/logger"

	"golang.org/x/time/rate"
)

var ErrTooManyRequests = apperr.New(apperr.KindValidation, "TooManyRequestsError", "too many attempts, try again later")

// RateLimiter limita por IP del cliente. Pensado para login/signup.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	rate      rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
	log       logger.Logger
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(perSecond float64, burst int, log logger.Logger) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: map[string]*clientLimiter{},
		rate:     rate.Limit(perSecond),
		burst:    burst,
		idle:     10 * time.Minute,
		now:      time.Now,
		log:      log,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > rl.idle {
		rl.sweepLocked(now)
	}

	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// sweepLocked descarta limiters sin uso reciente. Requiere rl.mu tomado.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	cutoff := now.Add(-rl.idle)
	for k, cl := range rl.limiters {
		if cl.lastSeen.Before(cutoff) {
			delete(rl.limiters, k)
		}
	}
	rl.lastSweep = now
}

// Handler devuelve 429 con body {name, message} cuando se agota el burst.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if !rl.limiter(key).Allow() {
			rl.log.Warn("rate limit exceeded", map[string]any{"client": key, "path": r.URL.Path})
			w.Header().Set("Retry-After", "1")
			httpx.WriteJSON(w, http.StatusTooManyRequests, httpx.ErrorBody{
				Name:    ErrTooManyRequests.Name,
				Message: ErrTooManyRequests.Message,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP: RealIP de chi ya reescribió RemoteAddr si hay proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
