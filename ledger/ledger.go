// Package ledger reconstructs account history from a stream of normalized
// broker deals. Opens and closes are paired FIFO per (symbol, side, volume)
// key; deposits and positions share one ticket sequence so their relative
// order survives into exports.
package ledger

import (
	"fmt"
	"time"
)

type Ledger struct {
	deposits []Deposit
	open     []Position
	closed   []Position

	lastTicket int64
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) nextTicket() int64 {
	l.lastTicket++
	return l.lastTicket
}

// Deposit records a balance operation at t.
func (l *Ledger) Deposit(t time.Time, amount float64) {
	l.deposits = append(l.deposits, Deposit{
		Ticket: l.nextTicket(),
		Time:   t,
		Amount: amount,
	})
}

// OpenPosition starts tracking a position from an opening deal. The deal's
// swap, commission and profit seed the position's running totals.
func (l *Ledger) OpenPosition(d Deal) {
	l.open = append(l.open, Position{
		Ticket:     l.nextTicket(),
		Symbol:     d.Symbol,
		Side:       d.Side,
		Volume:     d.Volume,
		OpenTime:   d.Time,
		OpenPrice:  d.Price,
		Swap:       d.Swap,
		Commission: d.Commission,
		Profit:     d.Profit,
		Comment:    d.Comment,
	})
}

// ClosePosition settles the earliest open position whose symbol, side and
// volume equal the deal's. Volumes must match exactly; a close for part of
// a position is an unmatched close, not a partial fill. On no match it
// returns *UnmatchedCloseError and changes nothing.
func (l *Ledger) ClosePosition(d Deal) error {
	idx := -1
	for i, p := range l.open {
		if p.Symbol == d.Symbol && p.Side == d.Side && p.Volume == d.Volume {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &UnmatchedCloseError{Symbol: d.Symbol, Side: d.Side, Volume: d.Volume}
	}

	p := l.open[idx]
	l.open = append(l.open[:idx], l.open[idx+1:]...)

	p.CloseTime = d.Time
	p.ClosePrice = d.Price
	p.Swap += d.Swap
	p.Commission += d.Commission
	p.Profit += d.Profit
	if d.Comment != "" {
		p.Comment += " [" + d.Comment + "]"
	}

	l.closed = append(l.closed, p)
	return nil
}

// Apply dispatches a deal to Deposit, OpenPosition or ClosePosition by its
// action.
func (l *Ledger) Apply(d Deal) error {
	switch d.Action {
	case ActionDeposit:
		l.Deposit(d.Time, d.Profit)
		return nil
	case ActionOpen:
		l.OpenPosition(d)
		return nil
	case ActionClose:
		return l.ClosePosition(d)
	}
	return fmt.Errorf("apply deal: unknown action %v", d.Action)
}

func (l *Ledger) HasOpenPositions() bool { return len(l.open) > 0 }

func (l *Ledger) OpenCount() int { return len(l.open) }

// Deposits returns the recorded deposits in ticket order.
func (l *Ledger) Deposits() []Deposit {
	out := make([]Deposit, len(l.deposits))
	copy(out, l.deposits)
	return out
}

// OpenPositions returns the still-open positions, earliest opened first.
func (l *Ledger) OpenPositions() []Position {
	out := make([]Position, len(l.open))
	copy(out, l.open)
	return out
}

// ClosedPositions returns settled positions in close order.
func (l *Ledger) ClosedPositions() []Position {
	out := make([]Position, len(l.closed))
	copy(out, l.closed)
	return out
}
