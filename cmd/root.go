package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sells-group/targets-navigator/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "targets-navigator",
	Short: "Company research dashboard backend",
	Long:  "Serves evaluated target companies, their pillar scores, chart series and comparison reports over HTTP, and exposes the same read model on the command line.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// loadConfig reads the --config file (or ./config.yaml) and applies the
// logging flag overrides on top of file and environment values.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		c.Log.Level = f.Value.String()
	}
	if f := cmd.Flags().Lookup("log-format"); f != nil && f.Changed {
		c.Log.Format = f.Value.String()
	}
	return c, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addRootFlags registers the flags read by loadConfig.
func addRootFlags(pf *pflag.FlagSet) {
	pf.String("config", "", "config file (default ./config.yaml)")
	pf.String("log-level", "", "override log.level (debug, info, warn, error)")
	pf.String("log-format", "", "override log.format (json or console)")
}

func init() {
	addRootFlags(rootCmd.PersistentFlags())
}
