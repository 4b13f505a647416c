package report

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alun/pai/fxblue"
)

func closedRow(ticket int64, symbol, side string, lots float64, open, closeT time.Time, profit, swap, commission float64) fxblue.Row {
	return fxblue.Row{
		Type:       fxblue.TypeClosed,
		Ticket:     ticket,
		Symbol:     symbol,
		Side:       side,
		Lots:       lots,
		OpenTime:   open,
		CloseTime:  closeT,
		Profit:     profit,
		Swap:       swap,
		Commission: commission,
		NetProfit:  profit + swap + commission,
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	open1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	close2 := open1.AddDate(0, 0, 73) // 73 days, so the gain annualizes by power 5

	table := fxblue.Table{Rows: []fxblue.Row{
		{Type: fxblue.TypeDeposit, Ticket: 1, Profit: 1000, NetProfit: 1000, Comment: "Deposit"},
		closedRow(2, "EURUSD", "Buy", 0.1, open1, open1.AddDate(0, 0, 10), 100, -5, -5),
		closedRow(3, "EURUSD", "Sell", 0.2, open1.AddDate(0, 0, 1), close2, -40, -5, -5),
		{Type: fxblue.TypeOpen, Ticket: 4, Symbol: "GBPUSD", Side: "Buy", Lots: 0.3, OpenTime: close2, NetProfit: 30},
	}}

	s := Summarize(table, 1000)

	assert.True(t, s.FirstOpen.Equal(open1))
	assert.True(t, s.LastClose.Equal(close2))
	assert.Equal(t, 73, s.DaysRunning)
	assert.Equal(t, 2, s.Trades)

	assert.InDelta(t, 40, s.ClosedProfit, 1e-9)        // 90 - 50
	assert.InDelta(t, 4, s.ClosedProfitPct, 1e-9)      // 40 of 1000
	assert.InDelta(t, 30, s.OpenProfit, 1e-9)
	assert.InDelta(t, 100*30.0/1040, s.OpenProfitPct, 1e-9)

	assert.InDelta(t, 0.6, s.TradedLots, 1e-9) // open position lots count too
	assert.InDelta(t, 40/(0.6/0.01), s.ProfitPerLot, 1e-9)
	assert.InDelta(t, 90.0/50, float64(s.ProfitFactor), 1e-9)
	assert.InDelta(t, 4, s.ApproxGainPct, 1e-9)
	assert.InDelta(t, 100*(math.Pow(1.04, 5)-1), s.AnnualGainPct, 1e-9)

	assert.InDelta(t, 60, s.GrossProfit, 1e-9)
	assert.InDelta(t, -10, s.Swaps, 1e-9)
	assert.InDelta(t, -10, s.Commissions, 1e-9)
	assert.InDelta(t, -20, s.Fees, 1e-9)
	assert.InDelta(t, 100.0/3, s.FeesPctOfGross, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	s := Summarize(fxblue.Table{}, 1000)

	assert.True(t, s.FirstOpen.IsZero())
	assert.Zero(t, s.Trades)
	assert.Zero(t, s.DaysRunning)
	assert.Zero(t, s.ClosedProfit)
	assert.Zero(t, s.ProfitFactor)
	assert.Zero(t, s.AnnualGainPct)
}

func TestSummarizeAllWinners(t *testing.T) {
	t.Parallel()

	open := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	table := fxblue.Table{Rows: []fxblue.Row{
		closedRow(1, "EURUSD", "Buy", 0.1, open, open.Add(time.Hour), 50, 0, 0),
	}}

	s := Summarize(table, 1000)
	assert.True(t, math.IsInf(float64(s.ProfitFactor), 1))
}

func TestProfitFactorJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(ProfitFactor(1.8))
	require.NoError(t, err)
	assert.Equal(t, "1.8", string(data))

	data, err = json.Marshal(ProfitFactor(math.Inf(1)))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestDepositTotal(t *testing.T) {
	t.Parallel()

	table := fxblue.Table{Rows: []fxblue.Row{
		{Type: fxblue.TypeDeposit, Ticket: 1, Profit: 1000, Comment: "Deposit"},
		{Type: fxblue.TypeDeposit, Ticket: 2, Profit: 50, Comment: "dividend payment"},
		{Type: fxblue.TypeDeposit, Ticket: 3, Profit: -20, Comment: "balance adjustment"},
		{Type: fxblue.TypeDeposit, Ticket: 4, Profit: 500, Comment: "Deposit"},
		closedRow(5, "EURUSD", "Buy", 0.1, time.Now(), time.Now(), 99, 0, 0),
	}}

	assert.InDelta(t, 1500, DepositTotal(table), 1e-9)
}

func TestResolveCapital(t *testing.T) {
	t.Parallel()

	table := fxblue.Table{Rows: []fxblue.Row{
		{Type: fxblue.TypeDeposit, Ticket: 1, Profit: 2500, Comment: "Deposit"},
	}}

	assert.InDelta(t, 2500, ResolveCapital(table, 1000, false), 1e-9)
	assert.InDelta(t, 1000, ResolveCapital(table, 1000, true), 1e-9)
	assert.InDelta(t, 1000, ResolveCapital(fxblue.Table{}, 1000, false), 1e-9)
}

func TestBySymbol(t *testing.T) {
	t.Parallel()

	open := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	table := fxblue.Table{Rows: []fxblue.Row{
		closedRow(1, "GBPUSD", "Buy", 0.2, open, open.Add(time.Hour), 10, 0, 0),
		closedRow(2, "EURUSD", "Buy", 0.1, open, open.Add(time.Hour), 10, 0, 0),
		closedRow(3, "GBPUSD", "Sell", 0.3, open, open.Add(time.Hour), -5, 0, 0),
		{Type: fxblue.TypeDeposit, Ticket: 4, Profit: 100},
	}}

	stats := BySymbol(table)
	require.Len(t, stats, 2)

	assert.Equal(t, "EURUSD", stats[0].Symbol)
	assert.InDelta(t, 0.1, stats[0].Lots, 1e-9)
	assert.Equal(t, 1, stats[0].Count)

	assert.Equal(t, "GBPUSD", stats[1].Symbol)
	assert.InDelta(t, 0.5, stats[1].Lots, 1e-9)
	assert.Equal(t, 2, stats[1].Count)
}

func TestCumulativeProfit(t *testing.T) {
	t.Parallel()

	open := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	table := fxblue.Table{Rows: []fxblue.Row{
		{Type: fxblue.TypeDeposit, Ticket: 1, Profit: 1000},
		closedRow(2, "EURUSD", "Buy", 0.1, open, open.Add(time.Hour), 100, 0, 0),
		closedRow(3, "EURUSD", "Buy", 0.1, open, open.Add(2*time.Hour), -30, 0, 0),
		closedRow(4, "EURUSD", "Buy", 0.1, open, open.Add(3*time.Hour), 10, 0, 0),
	}}

	got := CumulativeProfit(table)
	require.Len(t, got, 3)
	assert.InDelta(t, 100, got[0], 1e-9)
	assert.InDelta(t, 70, got[1], 1e-9)
	assert.InDelta(t, 80, got[2], 1e-9)

	assert.Nil(t, CumulativeProfit(fxblue.Table{}))
}
