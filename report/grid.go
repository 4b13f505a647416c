package report

import (
	"sort"
	"time"

	"github.com/alun/pai/fxblue"
)

// DefaultGridGap separates grid runs: closes further apart than this start
// a new run.
const DefaultGridGap = 10 * time.Second

// GridRun is one basket of closed positions settled together. Grid
// strategies close a whole ladder of positions at once, so clustering
// closed rows by close-time proximity per symbol recovers the baskets.
// Trades counts the grid legs beyond the initial position, so 0 means the
// initial trade closed without the grid kicking in.
type GridRun struct {
	Time       time.Time `json:"time"`
	Symbol     string    `json:"symbol"`
	Trades     int       `json:"trades"`
	Lots       float64   `json:"lots"`
	NetProfit  float64   `json:"net_profit"`
	PerLot     float64   `json:"per_lot"`
	Fees       float64   `json:"fees"`
	Directions []string  `json:"directions"`

	// Gaps are the open-price steps between consecutive legs.
	Gaps []float64 `json:"gaps,omitempty"`
}

// GridRuns clusters closed positions into runs. Rows are taken in table
// order; a close more than gap after the previous one starts a new
// cluster, and clusters split per symbol. Pass gap <= 0 for the default.
func GridRuns(t fxblue.Table, gap time.Duration) []GridRun {
	if gap <= 0 {
		gap = DefaultGridGap
	}

	closed := t.Closed()
	if len(closed) == 0 {
		return nil
	}

	groups := make([]int, len(closed))
	for i := 1; i < len(closed); i++ {
		groups[i] = groups[i-1]
		if closed[i].CloseTime.Sub(closed[i-1].CloseTime) > gap {
			groups[i]++
		}
	}

	var out []GridRun
	for start := 0; start < len(closed); {
		end := start + 1
		for end < len(closed) && groups[end] == groups[start] {
			end++
		}
		out = append(out, splitBySymbol(closed[start:end])...)
		start = end
	}
	return out
}

func splitBySymbol(rows []fxblue.Row) []GridRun {
	bySym := map[string][]fxblue.Row{}
	var symbols []string
	for _, r := range rows {
		if _, ok := bySym[r.Symbol]; !ok {
			symbols = append(symbols, r.Symbol)
		}
		bySym[r.Symbol] = append(bySym[r.Symbol], r)
	}
	sort.Strings(symbols)

	out := make([]GridRun, 0, len(symbols))
	for _, sym := range symbols {
		out = append(out, newGridRun(sym, bySym[sym]))
	}
	return out
}

func newGridRun(symbol string, rows []fxblue.Row) GridRun {
	run := GridRun{
		Symbol: symbol,
		Trades: len(rows) - 1,
	}

	seen := map[string]bool{}
	for i, r := range rows {
		if r.CloseTime.After(run.Time) {
			run.Time = r.CloseTime
		}
		run.Lots += r.Lots
		run.NetProfit += r.NetProfit
		run.Fees += r.Commission + r.Swap

		if !seen[r.Side] {
			seen[r.Side] = true
			run.Directions = append(run.Directions, r.Side)
		}
		if i > 0 {
			run.Gaps = append(run.Gaps, r.OpenPrice-rows[i-1].OpenPrice)
		}
	}

	if run.Lots > 0 {
		run.PerLot = run.NetProfit / (100 * run.Lots)
	}
	return run
}

// GridLevelCounts histograms runs by grid depth: how many runs closed with
// 0, 1, 2... grid trades beyond the initial one.
func GridLevelCounts(runs []GridRun) map[int]int {
	out := map[int]int{}
	for _, r := range runs {
		out[r.Trades]++
	}
	return out
}
