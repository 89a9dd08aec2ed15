package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sells-group/targets-navigator/internal/dossier"
	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/ranking"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List companies in ranked order",
	Long:  "Prints the filtered company list ordered by the chosen score, with the configured tie-break chain.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		q, err := listQueryFromFlags(cmd)
		if err != nil {
			return err
		}

		env, err := initEnv(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		res := env.Service.ListCompanies(ctx, q)
		if res.Failed() {
			return eris.Wrap(res.Err, "companies")
		}
		if len(res.Data.Companies) == 0 {
			fmt.Fprintln(os.Stderr, "No companies found.")
			return nil
		}

		formatCompanies(os.Stdout, res.Data)
		return nil
	},
}

// listQueryFromFlags maps the filter and sort flags onto a ListQuery.
func listQueryFromFlags(cmd *cobra.Command) (dossier.ListQuery, error) {
	var q dossier.ListQuery
	q.Filters.Countries, _ = cmd.Flags().GetStringSlice("country")
	q.Filters.Tiers, _ = cmd.Flags().GetStringSlice("tier")
	q.Filters.RevenueBands, _ = cmd.Flags().GetStringSlice("revenue-band")
	q.Filters.RankingCategories, _ = cmd.Flags().GetStringSlice("category")
	q.Filters.Industries, _ = cmd.Flags().GetStringSlice("industry")
	q.Filters.Tags, _ = cmd.Flags().GetStringSlice("tag")
	q.Limit, _ = cmd.Flags().GetInt("limit")
	q.Offset, _ = cmd.Flags().GetInt("offset")

	sortKey, _ := cmd.Flags().GetString("sort")
	key, err := ranking.ParseSortKey(sortKey)
	if err != nil {
		return q, err
	}
	q.Sort = key

	q.Dir = ranking.Asc
	if desc, _ := cmd.Flags().GetBool("desc"); desc {
		q.Dir = ranking.Desc
	}
	return q, nil
}

func formatScore(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

func formatCompanies(w io.Writer, page dossier.CompanyPage) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKEY\tNAME\tCOUNTRY\tTIER\tOVERALL\tFIT\tEXECUTE\tREVENUE")
	for i, c := range page.Companies {
		revenue := "-"
		if c.Revenue != nil {
			revenue = fmt.Sprintf("$%.0fM", *c.Revenue)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			page.Offset+i+1,
			c.Key,
			truncate(c.Name, 40),
			c.Geography,
			orDash(string(c.Tier)),
			formatScore(c.OverallScore),
			formatScore(c.StrategicFit),
			formatScore(c.AbilityToExecute),
			revenue,
		)
	}
	tw.Flush() //nolint:errcheck

	shown := len(page.Companies)
	fmt.Fprintf(w, "\n%d-%d of %d\n", page.Offset+1, page.Offset+shown, page.Total)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" || s == string(model.TierUnknown) {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// addListFlags registers the filter and sort flags read by listQueryFromFlags.
func addListFlags(f *pflag.FlagSet) {
	f.StringSlice("country", nil, "filter by country (repeatable)")
	f.StringSlice("tier", nil, "filter by tier, e.g. \"Tier 1\" or Unknown")
	f.StringSlice("revenue-band", nil, "filter by revenue band label")
	f.StringSlice("category", nil, "filter by ranking category")
	f.StringSlice("industry", nil, "filter by industry")
	f.StringSlice("tag", nil, "filter by product tag (any of)")
	f.String("sort", string(ranking.SortOverallScore), "sort key: overall_score, strategic_fit, ability_to_execute, name")
	f.Bool("desc", true, "sort descending")
	f.Int("limit", 50, "maximum companies to print")
	f.Int("offset", 0, "companies to skip")
}

func init() {
	addListFlags(companiesCmd.Flags())
	rootCmd.AddCommand(companiesCmd)
}
