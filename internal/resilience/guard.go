package resilience

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// GuardConfig bundles the per-read protections.
type GuardConfig struct {
	// Timeout bounds each attempt. Zero disables it.
	Timeout time.Duration
	Retry   RetryConfig
	Circuit CircuitBreakerConfig
}

// Guard wraps backend reads: each named read gets its own breaker, every
// attempt gets its own deadline, and transient failures are retried.
type Guard struct {
	cfg      GuardConfig
	breakers *Breakers
}

// NewGuard builds a Guard from cfg.
func NewGuard(cfg GuardConfig) *Guard {
	return &Guard{cfg: cfg, breakers: NewBreakers(cfg.Circuit)}
}

// Breakers exposes the guard's breaker registry.
func (g *Guard) Breakers() *Breakers {
	return g.breakers
}

// Call runs fn under g for the read called name. The breaker sees the
// outcome of the whole retried call, not of each attempt.
func Call[T any](ctx context.Context, g *Guard, name string, fn func(ctx context.Context) (T, error)) (T, error) {
	retry := g.cfg.Retry
	if retry.OnRetry == nil {
		retry.OnRetry = RetryLogger(name)
	}

	attempt := func(ctx context.Context) (T, error) {
		if g.cfg.Timeout <= 0 {
			return fn(ctx)
		}
		actx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
		return fn(actx)
	}

	val, err := ExecuteVal(ctx, g.breakers.Get(name), func(ctx context.Context) (T, error) {
		return DoVal(ctx, retry, attempt)
	})
	if err != nil {
		zap.L().Debug("guarded read failed",
			zap.String("read", name),
			zap.String("class", Classify(err)),
			zap.Error(err),
		)
	}
	return val, err
}
