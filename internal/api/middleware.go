package api

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/targets-navigator/internal/inflight"
)

const (
	// viewSessionHeader opts a request into latest-wins tracking. Its value
	// names the client view session.
	viewSessionHeader = "X-View-Session"
	// clientHeader names the client whose preferences are read or written.
	clientHeader = "X-Client-ID"
)

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// ipRateLimiter keeps one token bucket per client address.
type ipRateLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*client
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const limiterIdle = 10 * time.Minute

func newIPRateLimiter(rps float64, burst int) *ipRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ipRateLimiter{limit: rate.Limit(rps), burst: burst, clients: make(map[string]*client)}
}

func (l *ipRateLimiter) allow(addr string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[addr]
	if !ok {
		if len(l.clients) >= 1024 {
			for k, v := range l.clients {
				if now.Sub(v.lastSeen) > limiterIdle {
					delete(l.clients, k)
				}
			}
		}
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[addr] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Handler rejects requests over the per-address rate with 429.
func (l *ipRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr := r.RemoteAddr
		if host, _, err := net.SplitHostPort(addr); err == nil {
			addr = host
		}
		if !l.allow(addr, time.Now()) {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// track starts latest-wins tracking for view when the request carries a
// view session. finish reports inflight.ErrSuperseded when a newer request
// for the same view took over, in which case the result must be dropped.
func (s *Server) track(r *http.Request, view, params string) (ctx context.Context, finish func() error) {
	session := r.Header.Get(viewSessionHeader)
	if s.tracker == nil || session == "" {
		return r.Context(), func() error { return nil }
	}
	ctx, tk := s.tracker.Begin(r.Context(), session+"/"+view, params)
	return ctx, func() error { return s.tracker.Finish(tk) }
}

// superseded writes the 409 answer for a discarded result.
func superseded(w http.ResponseWriter, err error) {
	zap.L().Debug("api: dropping superseded result", zap.Error(err))
	writeJSON(w, http.StatusConflict, envelope{Error: inflight.ErrSuperseded.Error()})
}
