package ledger

import (
	"errors"
	"fmt"
)

// ErrOpenPositions is returned when an operation needs every position
// closed and at least one is not.
var ErrOpenPositions = errors.New("ledger has open positions")

// UnmatchedCloseError reports a close deal with no open position of the
// same symbol, side and volume. The ledger is left untouched when this
// is returned.
type UnmatchedCloseError struct {
	Symbol string
	Side   Side
	Volume float64
}

func (e *UnmatchedCloseError) Error() string {
	return fmt.Sprintf("no open position for symbol %q side %s volume %v", e.Symbol, e.Side, e.Volume)
}
