package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// PrintSummary renders the summary as a fixed-width text block. currency
// is appended to money amounts.
func PrintSummary(w io.Writer, s Summary, currency string) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Account Performance")
	fmt.Fprintln(w, "==================================================")

	if !s.FirstOpen.IsZero() {
		fmt.Fprintf(w, "Began trading:  %s\n", s.FirstOpen.Format(time.RFC3339))
		fmt.Fprintf(w, "Last close:     %s\n", s.LastClose.Format(time.RFC3339))
		fmt.Fprintf(w, "Days running:   %d\n", s.DaysRunning)
	}
	fmt.Fprintf(w, "Capital:        %.2f%s\n", s.Capital, currency)
	fmt.Fprintf(w, "Closed trades:  %d\n", s.Trades)
	fmt.Fprintf(w, "Closed P/L:     %.2f%s (%.2f%%)\n", s.ClosedProfit, currency, s.ClosedProfitPct)
	fmt.Fprintf(w, "Open P/L:       %.2f%s (%.2f%%)\n", s.OpenProfit, currency, s.OpenProfitPct)
	fmt.Fprintf(w, "Traded lots:    %.2f\n", s.TradedLots)
	fmt.Fprintf(w, "P/L per 0.01:   %.2f%s\n", s.ProfitPerLot, currency)
	fmt.Fprintf(w, "Profit factor:  %.2f\n", s.ProfitFactor)
	fmt.Fprintf(w, "Approx gain:    %.2f%%\n", s.ApproxGainPct)
	fmt.Fprintf(w, "Annual gain:    %.2f%%\n", s.AnnualGainPct)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cost of Trading")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Fees:           %.2f%s\n", -s.Fees, currency)
	fmt.Fprintf(w, "Swaps:          %.2f%s\n", -s.Swaps, currency)
	fmt.Fprintf(w, "Commissions:    %.2f%s\n", -s.Commissions, currency)
	if s.FeesPctOfGross >= 0 {
		fmt.Fprintf(w, "%% of profit:    %.2f%%\n", s.FeesPctOfGross)
	}
}

// PrintBySymbol renders per-symbol traded volume.
func PrintBySymbol(w io.Writer, stats []SymbolStat) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "By Symbol")
	fmt.Fprintln(w, "--------------------------------------------------")
	for _, s := range stats {
		fmt.Fprintf(w, "%-12s lots %8.2f   trades %4d\n", s.Symbol, s.Lots, s.Count)
	}
}

// PrintGridRuns renders grid runs newest first, with the depth histogram
// underneath.
func PrintGridRuns(w io.Writer, runs []GridRun, currency string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Grid Runs")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Total runs:     %d\n", len(runs))

	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		fmt.Fprintf(w, "%s  %-10s %s  trades %2d  lots %6.2f  net %8.2f%s  per0.01 %6.2f%s  fees %6.2f%s",
			r.Time.Format(time.RFC3339), r.Symbol, strings.Join(r.Directions, "/"),
			r.Trades, r.Lots, r.NetProfit, currency, r.PerLot, currency, r.Fees, currency)
		if len(r.Gaps) > 0 {
			fmt.Fprintf(w, "  gaps")
			for _, g := range r.Gaps {
				fmt.Fprintf(w, " %.5g", g)
			}
		}
		fmt.Fprintln(w)
	}

	counts := GridLevelCounts(runs)
	if len(counts) == 0 {
		return
	}

	depths := make([]int, 0, len(counts))
	for d := range counts {
		depths = append(depths, d)
	}
	sort.Ints(depths)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Grid depth frequency (0 = initial trade only)")
	for _, d := range depths {
		fmt.Fprintf(w, "%3d: %d\n", d, counts[d])
	}
}
