package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alun/pai/feed"
	"github.com/alun/pai/fxblue"
	"github.com/alun/pai/ledger"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Replay a broker deal feed into a canonical trade table",
	Long: `Replay a normalized deal feed and reduce it to the canonical trade table.

The feed is a CSV of open, close and deposit deals in account order. It may
be plain, gzip- or xz-compressed, or a zip archive whose CSV parts are
replayed in name order against one shared position ledger.

Every close must match an open position exactly (symbol, side and volume)
and all positions must be closed by the end of the feed, otherwise the
ingest fails.

Examples:
  pai ingest --deals deals.csv --out table.csv
  pai ingest --deals deals-2025.zip --save --label "may statement"`,
	RunE: runIngest,
}

var (
	ingestDeals string
	ingestOut   string
	ingestSave  bool
	ingestLabel string
)

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVarP(&ingestDeals, "deals", "i", "", "deal feed: CSV file, .csv.gz, .csv.xz or a zip of CSV parts (required)")
	ingestCmd.MarkFlagRequired("deals")
	ingestCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "write the table to this file instead of stdout")
	ingestCmd.Flags().BoolVar(&ingestSave, "save", false, "archive the table as a new run")
	ingestCmd.Flags().StringVar(&ingestLabel, "label", "", "label for the archived run")
}

func runIngest(cmd *cobra.Command, args []string) error {
	led := ledger.NewLedger()

	n, err := feed.ReplayFile(led, ingestDeals)
	if err != nil {
		return fmt.Errorf("replay deals: %w", err)
	}

	table, err := fxblue.Export(led)
	if err != nil {
		return fmt.Errorf("export table: %w", err)
	}

	logger.Info().
		Str("deals", ingestDeals).
		Int("count", n).
		Int("rows", len(table.Rows)).
		Msg("feed replayed")

	if ingestOut != "" {
		if err := fxblue.WriteFile(ingestOut, table); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(table.Rows), ingestOut)
	}

	if ingestSave {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		run, err := st.SaveRun(cmd.Context(), ingestDeals, ingestLabel, table)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("Saved run %s (%d rows, %d trades)\n", run.ID, run.Rows, run.Trades)
	}

	if ingestOut == "" && !ingestSave {
		if err := fxblue.WriteCSV(os.Stdout, table); err != nil {
			return err
		}
	}

	return nil
}
