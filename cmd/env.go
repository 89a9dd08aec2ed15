package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/targets-navigator/internal/config"
	"github.com/sells-group/targets-navigator/internal/db"
	"github.com/sells-group/targets-navigator/internal/dossier"
	"github.com/sells-group/targets-navigator/internal/report"
	"github.com/sells-group/targets-navigator/internal/resilience"
	"github.com/sells-group/targets-navigator/internal/store"
)

// appEnv holds the store and the services built on it, shared by the
// serve, companies, dossier and export commands.
type appEnv struct {
	Store   store.Store
	Service *dossier.Service
	Reports *report.Generator
	Guard   *resilience.Guard
}

// Close releases the store.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

func storeOptions(c *config.Config) store.Options {
	return store.Options{
		Driver:      c.Store.Driver,
		DatabaseURL: c.Store.DatabaseURL,
		Pool:        db.PoolConfig{MaxConns: c.Store.MaxConns, MinConns: c.Store.MinConns},
	}
}

// guardConfig maps the fetch settings onto timeout, retry and breaker.
func guardConfig(c *config.Config) resilience.GuardConfig {
	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = c.Fetch.MaxAttempts
	if b := c.Fetch.InitialBackoff(); b > 0 {
		retry.InitialBackoff = b
	}
	retry.OnRetry = resilience.RetryLogger("backend read", zap.String("driver", c.Store.Driver))

	return resilience.GuardConfig{
		Timeout: c.Fetch.Timeout(),
		Retry:   retry,
		Circuit: resilience.CircuitBreakerConfig{
			FailureThreshold: c.Fetch.CircuitFailureThreshold,
			ResetTimeout:     c.Fetch.CircuitReset(),
		},
	}
}

func serviceConfig(c *config.Config) (dossier.Config, error) {
	tag, err := c.Sort.Tag()
	if err != nil {
		return dossier.Config{}, err
	}
	return dossier.Config{
		MaxRows:      c.List.MaxRows,
		DefaultLimit: c.List.DefaultLimit,
		Sentinel:     c.Chart.OverviewSentinel,
		Locale:       tag,
		Bands:        c.Filters.Bands(),
	}, nil
}

// initEnv validates the configuration for mode, opens the store and builds
// the services. Callers should defer env.Close().
func initEnv(ctx context.Context, mode string) (*appEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}
	svcCfg, err := serviceConfig(cfg)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, storeOptions(cfg))
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}

	guard := resilience.NewGuard(guardConfig(cfg))
	zap.L().Debug("store opened", zap.String("driver", cfg.Store.Driver))

	return &appEnv{
		Store:   st,
		Service: dossier.NewService(st, guard, svcCfg),
		Reports: report.NewGenerator(cfg.Report.Brand, nil),
		Guard:   guard,
	}, nil
}
