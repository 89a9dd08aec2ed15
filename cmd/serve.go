package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/targets-navigator/internal/api"
	"github.com/sells-group/targets-navigator/internal/config"
	"github.com/sells-group/targets-navigator/internal/inflight"
	"github.com/sells-group/targets-navigator/internal/prefs"
)

var servePort int

// initPrefs opens the preference store: file-backed when prefs.dir is
// set, in memory otherwise.
func initPrefs(c config.PrefsConfig) (*prefs.Store, error) {
	var storage prefs.Storage = prefs.NewMemoryStorage()
	if c.Dir != "" {
		fs, err := prefs.NewFileStorage(c.Dir)
		if err != nil {
			return nil, err
		}
		storage = fs
	}
	return prefs.New(storage, prefs.WithTTL(c.TTL())), nil
}

func apiConfig(c *config.Config) api.Config {
	return api.Config{
		AllowedOrigins: c.Server.AllowedOrigins,
		RateLimitRPS:   c.Server.RateLimitRPS,
		RateLimitBurst: c.Server.RateLimitBurst,
		MinBubble:      c.Chart.MinBubble,
		MaxBubble:      c.Chart.MaxBubble,
		RequestTimeout: c.RequestTimeout(),
	}
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx, "serve")
		if err != nil {
			return err
		}
		defer env.Close()

		ps, err := initPrefs(cfg.Prefs)
		if err != nil {
			return err
		}

		srv := api.New(env.Service, ps, env.Reports, inflight.NewTracker(), apiConfig(cfg))

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           srv.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server", zap.Any("breakers", env.Guard.Breakers().States()))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port), zap.String("driver", cfg.Store.Driver))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
