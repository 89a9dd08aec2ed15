package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/targets-navigator/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render company, dossier and comparison reports to files",
}

var exportCompanyCmd = &cobra.Command{
	Use:   "company <key>",
	Short: "Write a one-company PDF report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), func(env *appEnv) (report.Result, error) {
			res := env.Service.GetCompanyDossier(cmd.Context(), args[0])
			if res.Failed() {
				return report.Result{}, res.Err
			}
			return env.Reports.Company(res.Data.Company, res.Data.Pillars), nil
		})
	},
}

var exportDossierCmd = &cobra.Command{
	Use:   "dossier <key>",
	Short: "Write a full dossier PDF with pillar sub-scores",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), func(env *appEnv) (report.Result, error) {
			res := env.Service.GetCompanyDossier(cmd.Context(), args[0])
			if res.Failed() {
				return report.Result{}, res.Err
			}
			return env.Reports.Dossier(res.Data), nil
		})
	},
}

var exportCompareCmd = &cobra.Command{
	Use:   "compare <key>...",
	Short: "Write a side-by-side comparison of up to five companies",
	Args:  cobra.RangeArgs(1, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		asWorkbook, _ := cmd.Flags().GetBool("xlsx")
		return runExport(cmd.Context(), func(env *appEnv) (report.Result, error) {
			res := env.Service.Compare(cmd.Context(), args)
			if res.Failed() {
				return report.Result{}, res.Err
			}
			if asWorkbook {
				return env.Reports.CompareWorkbook(res.Data.Records), nil
			}
			return env.Reports.Compare(res.Data.Records), nil
		})
	},
}

// runExport opens the environment, renders one report and writes it into
// the configured output directory.
func runExport(ctx context.Context, render func(*appEnv) (report.Result, error)) error {
	env, err := initEnv(ctx, "cli")
	if err != nil {
		return err
	}
	defer env.Close()

	res, err := render(env)
	if err != nil {
		return eris.Wrap(err, "export")
	}

	path, err := writeReport(cfg.Report.OutputDir, res)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// writeReport saves a successful report under dir and returns its path.
func writeReport(dir string, res report.Result) (string, error) {
	if !res.Success {
		return "", eris.Errorf("export: %s", res.Error)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "export: create %s", dir)
	}

	path := filepath.Join(dir, res.Filename)
	if err := os.WriteFile(path, res.Data, 0o644); err != nil { //nolint:gosec
		return "", eris.Wrapf(err, "export: write %s", path)
	}

	zap.L().Info("report written",
		zap.String("path", path),
		zap.Int("bytes", len(res.Data)),
	)
	return path, nil
}

func init() {
	exportCompareCmd.Flags().Bool("xlsx", false, "write an XLSX workbook instead of a PDF")
	exportCmd.AddCommand(exportCompanyCmd, exportDossierCmd, exportCompareCmd)
	rootCmd.AddCommand(exportCmd)
}
