package fxblue

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

// TimeLayout is how the canonical CSV renders timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// Downloads from account-feed URLs start with a banner line before the
// header; generated files start with the header itself. ReadCSV accepts
// both, so at most one leading row may precede the header.
const maxPreambleRows = 1

// WriteCSV writes the canonical header followed by every row, in table
// order. Call SortByTicket first if order matters to the consumer.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range t.Rows {
		if err := cw.Write(formatRow(r)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a canonical CSV, skipping a single preamble line when the
// file starts with one, and ignoring blank records.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	skipped := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return Table{}, fmt.Errorf("missing header row")
		}
		if err != nil {
			return Table{}, err
		}
		if isHeader(rec) {
			break
		}
		skipped++
		if skipped > maxPreambleRows {
			return Table{}, fmt.Errorf("missing header row")
		}
	}

	var t Table
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, err
		}
		line++

		if blankRecord(rec) {
			continue
		}
		if len(rec) != len(Header) {
			return Table{}, fmt.Errorf("row %d: %d columns, want %d", line, len(rec), len(Header))
		}

		row, err := parseRow(rec)
		if err != nil {
			return Table{}, fmt.Errorf("row %d: %w", line, err)
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// WriteFile writes the table to path, compressing by extension: .xz and
// .gz are handled transparently, anything else is plain CSV.
func WriteFile(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	var w io.Writer = f
	var closeCompressor func() error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xz":
		xw, err := xz.NewWriter(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("xz writer: %w", err)
		}
		w = xw
		closeCompressor = xw.Close
	case ".gz":
		zw := gzip.NewWriter(f)
		w = zw
		closeCompressor = zw.Close
	}

	if err := WriteCSV(w, t); err != nil {
		f.Close()
		return err
	}
	if closeCompressor != nil {
		if err := closeCompressor(); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

// ReadFile reads a table from path, decompressing .xz and .gz by extension.
func ReadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xz":
		xr, err := xz.NewReader(f)
		if err != nil {
			return Table{}, fmt.Errorf("xz reader: %w", err)
		}
		r = xr
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return Table{}, fmt.Errorf("gzip reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	return ReadCSV(r)
}

func isHeader(rec []string) bool {
	return len(rec) >= 2 &&
		strings.EqualFold(strings.TrimSpace(rec[0]), "type") &&
		strings.EqualFold(strings.TrimSpace(rec[1]), "ticket")
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func formatRow(r Row) []string {
	return []string{
		r.Type,
		strconv.FormatInt(r.Ticket, 10),
		r.Symbol,
		f(r.Lots),
		r.Side,
		f(r.OpenPrice),
		f(r.ClosePrice),
		formatTime(r.OpenTime),
		formatTime(r.CloseTime),
		f(r.Profit),
		f(r.Swap),
		f(r.Commission),
		f(r.NetProfit),
		f(r.TakeProfit),
		f(r.StopLoss),
		strconv.FormatInt(r.Magic, 10),
		r.Comment,
	}
}

func parseRow(rec []string) (Row, error) {
	var (
		r   Row
		err error
	)

	r.Type = strings.TrimSpace(rec[0])
	if r.Ticket, err = parseInt(rec[1]); err != nil {
		return Row{}, fmt.Errorf("ticket: %w", err)
	}
	r.Symbol = strings.TrimSpace(rec[2])
	if r.Lots, err = parseFloat(rec[3]); err != nil {
		return Row{}, fmt.Errorf("lots: %w", err)
	}
	r.Side = strings.TrimSpace(rec[4])
	if r.OpenPrice, err = parseFloat(rec[5]); err != nil {
		return Row{}, fmt.Errorf("open price: %w", err)
	}
	if r.ClosePrice, err = parseFloat(rec[6]); err != nil {
		return Row{}, fmt.Errorf("close price: %w", err)
	}
	if r.OpenTime, err = parseTime(rec[7]); err != nil {
		return Row{}, fmt.Errorf("open time: %w", err)
	}
	if r.CloseTime, err = parseTime(rec[8]); err != nil {
		return Row{}, fmt.Errorf("close time: %w", err)
	}
	if r.Profit, err = parseFloat(rec[9]); err != nil {
		return Row{}, fmt.Errorf("profit: %w", err)
	}
	if r.Swap, err = parseFloat(rec[10]); err != nil {
		return Row{}, fmt.Errorf("swap: %w", err)
	}
	if r.Commission, err = parseFloat(rec[11]); err != nil {
		return Row{}, fmt.Errorf("commission: %w", err)
	}
	if r.NetProfit, err = parseFloat(rec[12]); err != nil {
		return Row{}, fmt.Errorf("net profit: %w", err)
	}
	if r.TakeProfit, err = parseFloat(rec[13]); err != nil {
		return Row{}, fmt.Errorf("t/p: %w", err)
	}
	if r.StopLoss, err = parseFloat(rec[14]); err != nil {
		return Row{}, fmt.Errorf("s/l: %w", err)
	}
	if r.Magic, err = parseInt(rec[15]); err != nil {
		return Row{}, fmt.Errorf("magic: %w", err)
	}
	r.Comment = rec[16]

	return r, nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		t2, err2 := time.Parse(time.RFC3339, s)
		if err2 != nil {
			return time.Time{}, fmt.Errorf("bad time %q: %w", s, err)
		}
		t = t2
	}
	return t, nil
}
