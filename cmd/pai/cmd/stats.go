package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alun/pai/config"
	"github.com/alun/pai/fxblue"
	"github.com/alun/pai/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Compute performance statistics over a trade table",
	Long: `Analyze a canonical trade table: headline profit figures, cost of
trading, per-symbol volume and grid-run breakdowns.

The table is a 17-column FxBlue-style CSV: a local file (plain, .gz or
.xz) or an http(s) URL of a published feed. Filters narrow the table
before analysis; unset filters fall back to the config file.

Examples:
  pai stats --data table.csv
  pai stats --data https://www.fxblue.com/users/alun/csv
  pai stats --data table.csv --magic-filter 1412000,1412001 --from 2025-01-01`,
	RunE: runStats,
}

var (
	statsData     string
	statsComment  string
	statsMagic    string
	statsCapital  float64
	statsCurrency string
	statsFrom     string
	statsTo       string
	statsGridGap  string
	statsJSON     bool
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsData, "data", "i", "", "table source: CSV file or http(s) URL (required)")
	statsCmd.MarkFlagRequired("data")
	statsCmd.Flags().StringVar(&statsComment, "comment-filter", "", "keep rows whose comment contains this substring")
	statsCmd.Flags().StringVar(&statsMagic, "magic-filter", "", "comma-separated magic numbers to keep")
	statsCmd.Flags().Float64Var(&statsCapital, "capital", 0, "capital base for percentages; 0 detects it from deposits")
	statsCmd.Flags().StringVar(&statsCurrency, "currency-symbol", "", "currency symbol for money amounts")
	statsCmd.Flags().StringVar(&statsFrom, "from", "", "earliest close time to keep (date or timestamp)")
	statsCmd.Flags().StringVar(&statsTo, "to", "", "latest close time to keep (date or timestamp)")
	statsCmd.Flags().StringVar(&statsGridGap, "grid-gap", "", "close-time gap that still joins a grid run, e.g. 10s")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "emit the report as JSON instead of text")
}

// statsReport is the JSON shape of the stats command output.
type statsReport struct {
	Summary  report.Summary      `json:"summary"`
	Symbols  []report.SymbolStat `json:"symbols"`
	GridRuns []report.GridRun    `json:"grid_runs"`
}

func runStats(cmd *cobra.Command, args []string) error {
	table, err := loadTable(cmd.Context(), statsData)
	if err != nil {
		return err
	}
	logger.Info().Str("data", statsData).Int("rows", len(table.Rows)).Msg("table loaded")

	f, err := statsFilter()
	if err != nil {
		return err
	}
	gap, err := statsGap()
	if err != nil {
		return err
	}

	capital := statsCapital
	if capital <= 0 {
		capital = report.ResolveCapital(table, cfg.Analysis.AssumedCapital, cfg.Analysis.OverrideCapital)
	}
	currency := statsCurrency
	if currency == "" {
		currency = cfg.Analysis.CurrencySymbol
	}

	filtered := f.Apply(table)

	rep := statsReport{
		Summary:  report.Summarize(filtered, capital),
		Symbols:  report.BySymbol(filtered),
		GridRuns: report.GridRuns(filtered, gap),
	}

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	report.PrintSummary(os.Stdout, rep.Summary, currency)
	report.PrintBySymbol(os.Stdout, rep.Symbols)
	report.PrintGridRuns(os.Stdout, rep.GridRuns, currency)
	return nil
}

// loadTable reads the canonical table from a local file or a published
// feed URL.
func loadTable(ctx context.Context, src string) (fxblue.Table, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return fxblue.Fetch(ctx, src)
	}
	return fxblue.ReadFile(src)
}

// statsFilter builds the row filter from flags, falling back to the
// config defaults for unset parts.
func statsFilter() (report.Filter, error) {
	comment := statsComment
	if comment == "" {
		comment = cfg.Analysis.CommentFilter
	}
	magicSpec := statsMagic
	if magicSpec == "" {
		magicSpec = cfg.Analysis.MagicFilter
	}

	magics, err := config.ParseMagics(magicSpec)
	if err != nil {
		return report.Filter{}, err
	}

	f := report.Filter{Comment: comment, Magics: magics}

	if statsFrom != "" {
		t, err := report.ParseCloseBound(statsFrom, false)
		if err != nil {
			return report.Filter{}, fmt.Errorf("--from: %w", err)
		}
		f.CloseFrom = t
	}
	if statsTo != "" {
		t, err := report.ParseCloseBound(statsTo, true)
		if err != nil {
			return report.Filter{}, fmt.Errorf("--to: %w", err)
		}
		f.CloseTo = t
	}
	return f, nil
}

func statsGap() (time.Duration, error) {
	if statsGridGap != "" {
		gap, err := time.ParseDuration(statsGridGap)
		if err != nil {
			return 0, fmt.Errorf("--grid-gap: %w", err)
		}
		return gap, nil
	}
	return cfg.Analysis.ParseGridGap()
}
