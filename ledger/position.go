package ledger

import "time"

// Position is a trade tracked by the ledger, open until a matching close
// deal arrives. Swap, Commission and Profit accumulate across the opening
// and closing deals.
type Position struct {
	Ticket int64

	Symbol string
	Side   Side
	Volume float64

	OpenTime  time.Time
	OpenPrice float64

	CloseTime  time.Time
	ClosePrice float64

	Swap       float64
	Commission float64
	Profit     float64
	Comment    string
}

func (p Position) IsOpen() bool { return p.CloseTime.IsZero() }

// NetProfit is the position's total result including financing and fees.
func (p Position) NetProfit() float64 { return p.Profit + p.Swap + p.Commission }

// Deposit is a balance operation. It shares the ticket sequence with
// positions so the two interleave in account order.
type Deposit struct {
	Ticket int64
	Time   time.Time
	Amount float64
}
