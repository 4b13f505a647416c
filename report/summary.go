package report

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/alun/pai/fxblue"
)

// ProfitFactor is won net profit over lost net profit. With no losing
// trades it is +Inf, which JSON number syntax cannot carry, so it
// marshals as null in that case.
type ProfitFactor float64

func (p ProfitFactor) MarshalJSON() ([]byte, error) {
	if f := float64(p); math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}

// Summary is the headline statistics block over a filtered table. All
// profit figures are net (profit + swap + commission) unless named
// otherwise.
type Summary struct {
	FirstOpen   time.Time `json:"first_open"`
	LastClose   time.Time `json:"last_close"`
	DaysRunning int       `json:"days_running"`
	Trades      int       `json:"trades"`

	Capital         float64 `json:"capital"`
	ClosedProfit    float64 `json:"closed_profit"`
	ClosedProfitPct float64 `json:"closed_profit_pct"`
	OpenProfit      float64 `json:"open_profit"`
	OpenProfitPct   float64 `json:"open_profit_pct"`

	TradedLots    float64      `json:"traded_lots"`
	ProfitPerLot  float64      `json:"profit_per_lot"`
	ProfitFactor  ProfitFactor `json:"profit_factor"`
	ApproxGainPct float64      `json:"approx_gain_pct"`
	AnnualGainPct float64      `json:"annual_gain_pct"`

	GrossProfit    float64 `json:"gross_profit"`
	Swaps          float64 `json:"swaps"`
	Commissions    float64 `json:"commissions"`
	Fees           float64 `json:"fees"`
	FeesPctOfGross float64 `json:"fees_pct_of_gross"`
}

// SymbolStat is the traded volume and trade count for one symbol.
type SymbolStat struct {
	Symbol string  `json:"symbol"`
	Lots   float64 `json:"lots"`
	Count  int     `json:"count"`
}

// Summarize computes the summary over t against a capital base. Pass the
// deposit total (see DepositTotal) or an assumed amount.
func Summarize(t fxblue.Table, capital float64) Summary {
	s := Summary{Capital: capital}

	closed := t.Closed()
	s.Trades = len(closed)

	for _, r := range t.Rows {
		s.TradedLots += r.Lots
	}

	var won, lost float64
	for _, r := range closed {
		s.ClosedProfit += r.NetProfit
		s.GrossProfit += r.Profit
		s.Swaps += r.Swap
		s.Commissions += r.Commission

		if r.NetProfit < 0 {
			lost -= r.NetProfit
		} else {
			won += r.NetProfit
		}

		if s.FirstOpen.IsZero() || r.OpenTime.Before(s.FirstOpen) {
			s.FirstOpen = r.OpenTime
		}
		if r.CloseTime.After(s.LastClose) {
			s.LastClose = r.CloseTime
		}
	}

	for _, r := range t.Open() {
		s.OpenProfit += r.NetProfit
	}

	if !s.FirstOpen.IsZero() {
		s.DaysRunning = int(s.LastClose.Sub(s.FirstOpen) / (24 * time.Hour))
	}

	if capital > 0 {
		s.ClosedProfitPct = 100 * s.ClosedProfit / capital
		s.ApproxGainPct = 100 * s.ClosedProfit / capital
	}
	if base := capital + s.ClosedProfit; base > 0 {
		s.OpenProfitPct = 100 * s.OpenProfit / base
	}
	if s.TradedLots > 0 {
		s.ProfitPerLot = s.ClosedProfit / (s.TradedLots / 0.01)
	}

	switch {
	case lost > 0:
		s.ProfitFactor = ProfitFactor(won / lost)
	case won > 0:
		s.ProfitFactor = ProfitFactor(math.Inf(1))
	}

	if capital > 0 && s.DaysRunning > 0 {
		if growth := 1 + s.ClosedProfit/capital; growth > 0 {
			s.AnnualGainPct = 100 * (math.Pow(growth, 365/float64(s.DaysRunning)) - 1)
		}
	}

	s.Fees = s.Swaps + s.Commissions
	if s.GrossProfit != 0 {
		s.FeesPctOfGross = -100 * s.Fees / s.GrossProfit
	}

	return s
}

// ResolveCapital picks the capital base for a table: the detected deposit
// total, or assumed when override is set or the table holds no usable
// deposits. Call it with the unfiltered table.
func ResolveCapital(t fxblue.Table, assumed float64, override bool) float64 {
	if override {
		return assumed
	}
	if d := DepositTotal(t); d > 0 {
		return d
	}
	return assumed
}

// DepositTotal sums deposit rows, skipping dividend and balance-adjustment
// entries so the result reflects actual funding. Compute it on the
// unfiltered table: comment filters would drop the deposit rows.
func DepositTotal(t fxblue.Table) float64 {
	var sum float64
	for _, r := range t.Deposits() {
		if strings.Contains(r.Comment, "dividend") || strings.Contains(r.Comment, "adjustment") {
			continue
		}
		sum += r.Profit
	}
	return sum
}

// BySymbol groups closed positions by symbol, sorted by symbol name.
func BySymbol(t fxblue.Table) []SymbolStat {
	idx := map[string]int{}
	var out []SymbolStat

	for _, r := range t.Closed() {
		i, ok := idx[r.Symbol]
		if !ok {
			i = len(out)
			idx[r.Symbol] = i
			out = append(out, SymbolStat{Symbol: r.Symbol})
		}
		out[i].Lots += r.Lots
		out[i].Count++
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// CumulativeProfit is the running net profit over closed positions in
// table order, one point per trade.
func CumulativeProfit(t fxblue.Table) []float64 {
	closed := t.Closed()
	if len(closed) == 0 {
		return nil
	}

	out := make([]float64, len(closed))
	sum := 0.0
	for i, r := range closed {
		sum += r.NetProfit
		out[i] = sum
	}
	return out
}
