package ledger

import (
	"fmt"
	"strings"
	"time"
)

// Side is the direction of a position.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Opposite returns the other direction. Useful when a report encodes a
// closing deal with the direction of the closing order rather than the
// direction of the position it closes.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

func ParseSide(v string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	}
	return 0, fmt.Errorf("unknown side %q", v)
}

// Action says what a normalized deal does to the ledger.
type Action int

const (
	ActionOpen Action = iota
	ActionClose
	ActionDeposit
)

func (a Action) String() string {
	switch a {
	case ActionOpen:
		return "open"
	case ActionClose:
		return "close"
	case ActionDeposit:
		return "deposit"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

func ParseAction(v string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "open":
		return ActionOpen, nil
	case "close":
		return ActionClose, nil
	case "deposit":
		return ActionDeposit, nil
	}
	return 0, fmt.Errorf("unknown deal action %q", v)
}

// Deal is one normalized broker event. Adapters for the various report
// formats reduce their rows to this shape before the ledger sees them.
//
// A deposit deal carries the amount in Profit; Symbol, Side, Volume and
// Price are ignored for it.
type Deal struct {
	Time   time.Time
	Action Action

	Symbol string
	Side   Side
	Volume float64
	Price  float64

	Swap       float64
	Commission float64
	Profit     float64
	Comment    string
}
