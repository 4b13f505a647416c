// Package feed reads normalized deal streams. Report adapters reduce
// broker statements to a flat CSV of deals
// (time,action,symbol,side,volume,price,swap,commission,profit,comment)
// and this package replays those into a ledger, one file or a whole
// archive at a time.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alun/pai/ledger"
)

const columns = 10

type Reader struct {
	r    *csv.Reader
	line int

	sawFirst bool
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return &Reader{r: cr}
}

// Next returns the next deal in file order. The second return is false
// once the stream is exhausted. A header row ("time" in the first cell)
// is allowed and skipped.
func (r *Reader) Next() (ledger.Deal, bool, error) {
	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			return ledger.Deal{}, false, nil
		}
		if err != nil {
			return ledger.Deal{}, false, err
		}
		r.line++

		if !r.sawFirst {
			r.sawFirst = true
			if strings.EqualFold(strings.TrimSpace(rec[0]), "time") {
				continue
			}
		}

		if blank(rec) {
			continue
		}
		if len(rec) > columns {
			return ledger.Deal{}, false, fmt.Errorf("row %d: %d columns, want at most %d", r.line, len(rec), columns)
		}

		d, err := parseDeal(rec)
		if err != nil {
			return ledger.Deal{}, false, fmt.Errorf("row %d: %w", r.line, err)
		}
		return d, true, nil
	}
}

// parseDeal fills in a deal from a padded record. Deposits only need time
// and profit; opens and closes need the full position key and price.
func parseDeal(rec []string) (ledger.Deal, error) {
	row := make([]string, columns)
	copy(row, rec)

	var (
		d   ledger.Deal
		err error
	)

	if d.Time, err = parseTime(row[0]); err != nil {
		return ledger.Deal{}, err
	}
	if d.Action, err = ledger.ParseAction(row[1]); err != nil {
		return ledger.Deal{}, err
	}

	if d.Swap, err = parseFloat(row[6]); err != nil {
		return ledger.Deal{}, fmt.Errorf("swap: %w", err)
	}
	if d.Commission, err = parseFloat(row[7]); err != nil {
		return ledger.Deal{}, fmt.Errorf("commission: %w", err)
	}
	if d.Profit, err = parseFloat(row[8]); err != nil {
		return ledger.Deal{}, fmt.Errorf("profit: %w", err)
	}
	d.Comment = row[9]

	if d.Action == ledger.ActionDeposit {
		return d, nil
	}

	d.Symbol = strings.TrimSpace(row[2])
	if d.Symbol == "" {
		return ledger.Deal{}, fmt.Errorf("missing symbol")
	}
	if d.Side, err = ledger.ParseSide(row[3]); err != nil {
		return ledger.Deal{}, err
	}
	if d.Volume, err = parseFloat(row[4]); err != nil {
		return ledger.Deal{}, fmt.Errorf("volume: %w", err)
	}
	if d.Volume <= 0 {
		return ledger.Deal{}, fmt.Errorf("volume must be positive, got %v", d.Volume)
	}
	if d.Price, err = parseFloat(row[5]); err != nil {
		return ledger.Deal{}, fmt.Errorf("price: %w", err)
	}

	return d, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("missing time")
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t2, err2 := time.Parse("2006-01-02 15:04:05", s)
		if err2 != nil {
			return time.Time{}, fmt.Errorf("bad time %q: %w", s, err)
		}
		t = t2
	}
	return t, nil
}
