package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/targets-navigator/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed <fixture.yaml>",
	Short: "Create the schema and load a YAML fixture into the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if driver, _ := cmd.Flags().GetString("driver"); driver != "" {
			cfg.Store.Driver = driver
		}
		if err := cfg.Validate("seed"); err != nil {
			return err
		}

		n, err := runSeed(cmd.Context(), storeOptions(cfg), args[0])
		if err != nil {
			return err
		}
		zap.L().Info("seed complete",
			zap.String("driver", cfg.Store.Driver),
			zap.String("fixture", args[0]),
			zap.Int64("rows", n),
		)
		return nil
	},
}

// runSeed migrates the store selected by opts and loads the fixture at path.
func runSeed(ctx context.Context, opts store.Options, path string) (int64, error) {
	fx, err := store.LoadFixture(path)
	if err != nil {
		return 0, err
	}

	st, err := store.Open(ctx, opts)
	if err != nil {
		return 0, eris.Wrap(err, "seed: open store")
	}
	defer st.Close() //nolint:errcheck

	seeder, ok := st.(store.Seeder)
	if !ok {
		return 0, eris.Errorf("seed: driver %q cannot be seeded", opts.Driver)
	}
	if err := seeder.Migrate(ctx); err != nil {
		return 0, eris.Wrap(err, "seed: migrate")
	}
	n, err := seeder.Seed(ctx, fx)
	if err != nil {
		return 0, eris.Wrap(err, "seed: load fixture")
	}
	return n, nil
}

func init() {
	seedCmd.Flags().String("driver", "", "override store.driver (postgres or sqlite)")
	rootCmd.AddCommand(seedCmd)
}
