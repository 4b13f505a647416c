package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alun/pai/fxblue"
)

func filterTable() fxblue.Table {
	open := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	return fxblue.Table{Rows: []fxblue.Row{
		{Type: fxblue.TypeDeposit, Ticket: 1, Profit: 1000, Comment: "Deposit"},
		{
			Type: fxblue.TypeClosed, Ticket: 2, Symbol: "EURUSD", Side: "Buy", Lots: 0.1,
			OpenTime: open, CloseTime: open.AddDate(0, 0, 1),
			NetProfit: 50, Magic: 101, Comment: "Perceptrader A",
		},
		{
			Type: fxblue.TypeClosed, Ticket: 3, Symbol: "GBPUSD", Side: "Sell", Lots: 0.2,
			OpenTime: open, CloseTime: open.AddDate(0, 0, 5),
			NetProfit: -20, Magic: 202, Comment: "manual",
		},
		{
			Type: fxblue.TypeClosed, Ticket: 4, Symbol: "EURUSD", Side: "Buy", Lots: 0.1,
			OpenTime: open, CloseTime: open.AddDate(0, 0, 9),
			NetProfit: 30, Magic: 101, Comment: "",
		},
	}}
}

func tickets(t fxblue.Table) []int64 {
	out := make([]int64, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, r.Ticket)
	}
	return out
}

func TestFilterZeroKeepsEverything(t *testing.T) {
	t.Parallel()

	table := filterTable()
	got := Filter{}.Apply(table)
	assert.Equal(t, table, got)
	assert.True(t, Filter{}.IsZero())
}

func TestFilterComment(t *testing.T) {
	t.Parallel()

	got := Filter{Comment: "Perceptrader"}.Apply(filterTable())
	assert.Equal(t, []int64{2}, tickets(got))

	// Rows with empty comments only pass an empty filter.
	got = Filter{Comment: "manual"}.Apply(filterTable())
	assert.Equal(t, []int64{3}, tickets(got))
}

func TestFilterMagics(t *testing.T) {
	t.Parallel()

	got := Filter{Magics: []int64{101}}.Apply(filterTable())
	assert.Equal(t, []int64{2, 4}, tickets(got))

	got = Filter{Magics: []int64{999}}.Apply(filterTable())
	assert.Empty(t, got.Rows)
}

func TestFilterCloseWindow(t *testing.T) {
	t.Parallel()

	open := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	f := Filter{
		CloseFrom: open.AddDate(0, 0, 1),
		CloseTo:   open.AddDate(0, 0, 5),
	}
	got := f.Apply(filterTable())

	// Bounds are inclusive and deposits stay regardless.
	assert.Equal(t, []int64{1, 2, 3}, tickets(got))
}

func TestFilterCombined(t *testing.T) {
	t.Parallel()

	f := Filter{
		Magics:  []int64{101},
		CloseTo: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
	}
	got := f.Apply(filterTable())
	require.Len(t, got.Rows, 1)
	assert.Equal(t, int64(2), got.Rows[0].Ticket)
}

func TestParseCloseBound(t *testing.T) {
	t.Parallel()

	got, err := ParseCloseBound("2024-02-02T09:00:00Z", false)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 2, 2, 9, 0, 0, 0, time.UTC)))

	got, err = ParseCloseBound("2024-02-02 09:30:00", false)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 2, 2, 9, 30, 0, 0, time.UTC)))

	// Bare dates stretch to the end of the day when used as the upper bound.
	got, err = ParseCloseBound("2024-02-02", true)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 2, 2, 23, 59, 59, 0, time.UTC)))

	got, err = ParseCloseBound("2024-02-02", false)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)))

	_, err = ParseCloseBound("yesterday", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `bad time "yesterday"`)
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	table := filterTable()
	s := Summarize(table, DepositTotal(table))

	var buf bytes.Buffer
	PrintSummary(&buf, s, "€")
	out := buf.String()

	assert.Contains(t, out, "Account Performance")
	assert.Contains(t, out, "Closed trades:  3")
	assert.Contains(t, out, "Closed P/L:     60.00€ (6.00%)")
	assert.Contains(t, out, "Cost of Trading")
}

func TestPrintBySymbolAndGrid(t *testing.T) {
	t.Parallel()

	table := filterTable()

	var buf bytes.Buffer
	PrintBySymbol(&buf, BySymbol(table))
	PrintGridRuns(&buf, GridRuns(table, 0), "€")
	out := buf.String()

	assert.Contains(t, out, "EURUSD")
	assert.Contains(t, out, "GBPUSD")
	assert.Contains(t, out, "Total runs:     3")
	assert.Contains(t, out, "Grid depth frequency")
}
