// Package report computes performance statistics over canonical trade
// tables: headline profit figures, cost of trading, per-symbol totals and
// grid-trading runs. Everything here is a pure function of the table.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/alun/pai/fxblue"
)

// Filter narrows a table before analysis. Zero values disable each part.
type Filter struct {
	// Comment keeps rows whose order comment contains the substring.
	// Empty matches every row, including rows with no comment.
	Comment string

	// Magics keeps rows whose magic number is in the list.
	Magics []int64

	// CloseFrom and CloseTo bound the close time of closed positions,
	// inclusive. Deposits and open positions are not affected: they
	// define capital and exposure, not the period under study.
	CloseFrom time.Time
	CloseTo   time.Time
}

func (f Filter) Apply(t fxblue.Table) fxblue.Table {
	var out fxblue.Table
	for _, r := range t.Rows {
		if f.Comment != "" && !strings.Contains(r.Comment, f.Comment) {
			continue
		}
		if len(f.Magics) > 0 && !containsMagic(f.Magics, r.Magic) {
			continue
		}
		if r.IsClosed() {
			if !f.CloseFrom.IsZero() && r.CloseTime.Before(f.CloseFrom) {
				continue
			}
			if !f.CloseTo.IsZero() && r.CloseTime.After(f.CloseTo) {
				continue
			}
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}

func (f Filter) IsZero() bool {
	return f.Comment == "" && len(f.Magics) == 0 && f.CloseFrom.IsZero() && f.CloseTo.IsZero()
}

func containsMagic(magics []int64, m int64) bool {
	for _, v := range magics {
		if v == m {
			return true
		}
	}
	return false
}

// ParseCloseBound parses a close-window bound from user input: RFC3339,
// "2006-01-02 15:04:05" or a bare date. A bare date used as the upper
// bound means the end of that day, so from=2025-06-01 to=2025-06-30
// covers all of June.
func ParseCloseBound(s string, upper bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad time %q", s)
	}
	if upper {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t, nil
}
