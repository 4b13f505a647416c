package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alun/pai/fxblue"
	"github.com/alun/pai/report"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage archived runs",
	Long: `List, inspect, export and delete runs archived with ingest --save.

Subcommands:
  list    - List archived runs, newest first
  show    - Print one run's details and performance report
  export  - Write a run's table back out as canonical CSV
  rm      - Delete a run and its rows

Examples:
  pai runs list
  pai runs show 01J3ZK2V9RD5X0B3YH8M6TQWEP
  pai runs export 01J3ZK2V9RD5X0B3YH8M6TQWEP -o table.csv
  pai runs rm 01J3ZK2V9RD5X0B3YH8M6TQWEP`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print one run's details and performance report",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsExportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Write a run's table as canonical CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsExport,
}

var runsRmCmd = &cobra.Command{
	Use:   "rm <run-id>",
	Short: "Delete a run and its rows",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsRm,
}

var runsExportOut string

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsRmCmd)

	runsExportCmd.Flags().StringVarP(&runsExportOut, "out", "o", "", "write to this file instead of stdout (.gz and .xz supported)")
}

func runRunsList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context())
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No archived runs.")
		return nil
	}

	fmt.Printf("%-26s  %-20s  %5s  %6s  %10s  %s\n", "ID", "CREATED", "ROWS", "TRADES", "NET", "LABEL")
	for _, r := range runs {
		fmt.Printf("%-26s  %-20s  %5d  %6d  %10.2f  %s\n",
			r.ID, r.Created.Format("2006-01-02 15:04:05"), r.Rows, r.Trades, r.NetProfit, r.Label)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	table, err := st.LoadTable(cmd.Context(), run.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Run:      %s\n", run.ID)
	fmt.Printf("Created:  %s\n", run.Created.Format("2006-01-02 15:04:05"))
	fmt.Printf("Source:   %s\n", run.Source)
	if run.Label != "" {
		fmt.Printf("Label:    %s\n", run.Label)
	}
	fmt.Println()

	capital := report.ResolveCapital(table, cfg.Analysis.AssumedCapital, cfg.Analysis.OverrideCapital)
	gap, err := cfg.Analysis.ParseGridGap()
	if err != nil {
		return err
	}

	currency := cfg.Analysis.CurrencySymbol
	report.PrintSummary(os.Stdout, report.Summarize(table, capital), currency)
	report.PrintBySymbol(os.Stdout, report.BySymbol(table))
	report.PrintGridRuns(os.Stdout, report.GridRuns(table, gap), currency)
	return nil
}

func runRunsExport(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	table, err := st.LoadTable(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if runsExportOut == "" {
		return fxblue.WriteCSV(os.Stdout, table)
	}
	if err := fxblue.WriteFile(runsExportOut, table); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(table.Rows), runsExportOut)
	return nil
}

func runRunsRm(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteRun(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted run %s\n", args[0])
	return nil
}
