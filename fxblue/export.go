package fxblue

import (
	"fmt"

	"github.com/alun/pai/ledger"
)

// Export renders a fully settled ledger as a canonical table: one Deposit
// row per deposit, one Closed position row per closed position, sorted by
// ticket. The ledger is read, never modified; exporting twice gives equal
// tables.
//
// A ledger with open positions cannot be represented as closed history, so
// Export refuses it with an error wrapping ledger.ErrOpenPositions.
func Export(l *ledger.Ledger) (Table, error) {
	if l.HasOpenPositions() {
		return Table{}, fmt.Errorf("export: %d still open: %w", l.OpenCount(), ledger.ErrOpenPositions)
	}

	var t Table

	for _, d := range l.Deposits() {
		t.Rows = append(t.Rows, Row{
			Type:      TypeDeposit,
			Ticket:    d.Ticket,
			OpenTime:  d.Time,
			CloseTime: d.Time,
			Profit:    d.Amount,
			NetProfit: d.Amount,
			Comment:   "Deposit",
		})
	}

	for _, p := range l.ClosedPositions() {
		t.Rows = append(t.Rows, Row{
			Type:       TypeClosed,
			Ticket:     p.Ticket,
			Symbol:     p.Symbol,
			Lots:       p.Volume,
			Side:       p.Side.String(),
			OpenPrice:  p.OpenPrice,
			ClosePrice: p.ClosePrice,
			OpenTime:   p.OpenTime,
			CloseTime:  p.CloseTime,
			Profit:     p.Profit,
			Swap:       p.Swap,
			Commission: p.Commission,
			NetProfit:  p.NetProfit(),
			Comment:    p.Comment,
		})
	}

	t.SortByTicket()
	return t, nil
}
