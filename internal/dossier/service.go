// Package dossier assembles the read model served to the dashboard: the
// ordered company list, per-company dossiers and batch pillar scores.
package dossier

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/pillar"
	"github.com/sells-group/targets-navigator/internal/ranking"
	"github.com/sells-group/targets-navigator/internal/resilience"
	"github.com/sells-group/targets-navigator/internal/store"
)

// Config tunes the service.
type Config struct {
	// MaxRows caps how many overview rows a list reads before the
	// in-memory filter, sort and window.
	MaxRows      int
	DefaultLimit int

	Sentinel float64
	Locale   language.Tag
	Bands    ranking.Bands
}

// DefaultConfig mirrors the configuration defaults.
func DefaultConfig() Config {
	return Config{
		MaxRows:      1000,
		DefaultLimit: 50,
		Sentinel:     pillar.OverviewSentinel,
		Locale:       language.English,
		Bands:        ranking.DefaultBands(),
	}
}

// Service reads through a guarded store.
type Service struct {
	store store.Store
	guard *resilience.Guard
	cfg   Config
	now   func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService builds a Service. A nil guard reads without timeouts,
// retries or breakers.
func NewService(st store.Store, guard *resilience.Guard, cfg Config, opts ...Option) *Service {
	def := DefaultConfig()
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = def.MaxRows
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.Bands == nil {
		cfg.Bands = def.Bands
	}
	if cfg.Locale == language.Und {
		cfg.Locale = def.Locale
	}
	if guard == nil {
		guard = resilience.NewGuard(resilience.GuardConfig{
			Retry:   resilience.RetryConfig{MaxAttempts: 1},
			Circuit: resilience.CircuitBreakerConfig{ShouldTrip: func(error) bool { return false }},
		})
	}

	s := &Service{store: st, guard: guard, cfg: cfg, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Bands returns the configured revenue bands.
func (s *Service) Bands() ranking.Bands {
	return s.cfg.Bands
}

// Ping checks the backend.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) company(ctx context.Context, key string) (model.Company, error) {
	return resilience.Call(ctx, s.guard, "company", func(ctx context.Context) (model.Company, error) {
		return s.store.GetCompany(ctx, key)
	})
}

func (s *Service) pillarRecord(ctx context.Context, pt model.PillarType, key string) (pillar.Record, error) {
	return resilience.Call(ctx, s.guard, string(pt), func(ctx context.Context) (pillar.Record, error) {
		return s.store.GetPillarRecord(ctx, pt, key)
	})
}

func (s *Service) pillarRecords(ctx context.Context, pt model.PillarType, keys []string) ([]pillar.Record, error) {
	return resilience.Call(ctx, s.guard, string(pt), func(ctx context.Context) ([]pillar.Record, error) {
		return s.store.GetPillarRecords(ctx, pt, keys)
	})
}

func logPillarFailure(key string, f model.PillarFailure, err error) {
	zap.L().Warn("pillar read failed",
		zap.String("company", key),
		zap.String("pillar", string(f.Pillar)),
		zap.String("class", resilience.Classify(err)),
		zap.Error(err),
	)
}
