// Package fxblue holds the canonical trade table: the 17-column layout used
// by FxBlue CSV exports, which every report format is reduced to before
// analysis. The column set and order are fixed; producing or consuming
// anything else is a bug.
package fxblue

import (
	"sort"
	"time"
)

// Row types as they appear in the Type column.
const (
	TypeDeposit = "Deposit"
	TypeClosed  = "Closed position"
	TypeOpen    = "Open position"
)

// Header is the canonical column order. WriteCSV emits exactly this and
// ReadCSV requires it.
var Header = []string{
	"Type",
	"Ticket",
	"Symbol",
	"Lots",
	"Buy/sell",
	"Open price",
	"Close price",
	"Open time",
	"Close time",
	"Profit",
	"Swap",
	"Commission",
	"Net profit",
	"T/P",
	"S/L",
	"Magic number",
	"Order comment",
}

// Row is one canonical table entry. Deposits leave Symbol and Side empty
// and carry the amount in Profit; Open position rows only occur in tables
// read from live account feeds.
type Row struct {
	Type       string    `json:"type"`
	Ticket     int64     `json:"ticket"`
	Symbol     string    `json:"symbol"`
	Lots       float64   `json:"lots"`
	Side       string    `json:"side"`
	OpenPrice  float64   `json:"open_price"`
	ClosePrice float64   `json:"close_price"`
	OpenTime   time.Time `json:"open_time"`
	CloseTime  time.Time `json:"close_time"`
	Profit     float64   `json:"profit"`
	Swap       float64   `json:"swap"`
	Commission float64   `json:"commission"`
	NetProfit  float64   `json:"net_profit"`
	TakeProfit float64   `json:"take_profit"`
	StopLoss   float64   `json:"stop_loss"`
	Magic      int64     `json:"magic"`
	Comment    string    `json:"comment"`
}

func (r Row) IsDeposit() bool { return r.Type == TypeDeposit }
func (r Row) IsClosed() bool  { return r.Type == TypeClosed }
func (r Row) IsOpen() bool    { return r.Type == TypeOpen }

type Table struct {
	Rows []Row
}

// SortByTicket orders rows by ticket ascending. Tickets are assigned in
// account order, so this is the account's event order regardless of how
// timestamps compare.
func (t *Table) SortByTicket() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].Ticket < t.Rows[j].Ticket
	})
}

func (t Table) Deposits() []Row {
	var out []Row
	for _, r := range t.Rows {
		if r.IsDeposit() {
			out = append(out, r)
		}
	}
	return out
}

func (t Table) Closed() []Row {
	var out []Row
	for _, r := range t.Rows {
		if r.IsClosed() {
			out = append(out, r)
		}
	}
	return out
}

func (t Table) Open() []Row {
	var out []Row
	for _, r := range t.Rows {
		if r.IsOpen() {
			out = append(out, r)
		}
	}
	return out
}
