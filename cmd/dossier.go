package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/targets-navigator/internal/model"
)

var dossierCmd = &cobra.Command{
	Use:   "dossier <key>",
	Short: "Print a company dossier as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		res := env.Service.GetCompanyDossier(ctx, args[0])
		if res.Failed() {
			return eris.Wrap(res.Err, "dossier")
		}

		reportUnavailable(os.Stderr, res.Data)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Data)
	},
}

// reportUnavailable lists pillars that failed to load.
func reportUnavailable(w io.Writer, d *model.Dossier) {
	for _, f := range d.Failures {
		fmt.Fprintf(w, "warning: %s pillar unavailable: %s\n", f.Pillar.Title(), f.Reason)
	}
}

func init() {
	rootCmd.AddCommand(dossierCmd)
}
