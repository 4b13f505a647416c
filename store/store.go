// Package store archives ingested canonical tables in SQLite. Each ingest
// becomes a run: a summary row plus every table entry, retrievable later
// for stats or re-export without re-reading the broker report.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/alun/pai/fxblue"
	"github.com/alun/pai/internal/id"
)

// ErrNotFound is returned for lookups of unknown run IDs.
var ErrNotFound = errors.New("run not found")

// Run is the stored summary of one ingested table.
type Run struct {
	ID        string    `json:"id"`
	Created   time.Time `json:"created"`
	Source    string    `json:"source"`
	Label     string    `json:"label"`
	Rows      int       `json:"rows"`
	Trades    int       `json:"trades"`
	NetProfit float64   `json:"net_profit"`
}

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores the table as a new run and returns its summary. The whole
// run is written in one transaction; run IDs are time-sortable, so newest
// runs sort last by ID.
func (s *Store) SaveRun(ctx context.Context, source, label string, t fxblue.Table) (Run, error) {
	run := Run{
		ID:      id.New(),
		Created: time.Now().UTC(),
		Source:  source,
		Label:   label,
		Rows:    len(t.Rows),
	}
	for _, r := range t.Rows {
		if r.IsClosed() {
			run.Trades++
			run.NetProfit += r.NetProfit
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, created, source, label, row_count, trade_count, net_profit)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Created, run.Source, run.Label, run.Rows, run.Trades, run.NetProfit,
	); err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	for _, r := range t.Rows {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO entries
			(run_id, type, ticket, symbol, lots, side, open_price, close_price,
			 open_time, close_time, profit, swap, commission, net_profit,
			 take_profit, stop_loss, magic, comment)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, r.Type, r.Ticket, r.Symbol, r.Lots, r.Side, r.OpenPrice, r.ClosePrice,
			r.OpenTime, r.CloseTime, r.Profit, r.Swap, r.Commission, r.NetProfit,
			r.TakeProfit, r.StopLoss, r.Magic, r.Comment,
		); err != nil {
			return Run{}, fmt.Errorf("insert ticket %d: %w", r.Ticket, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, err
	}
	return run, nil
}

// GetRun returns one run summary by ID.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, created, source, label, row_count, trade_count, net_profit
		FROM runs
		WHERE run_id = ?`, runID)

	var run Run
	err := row.Scan(&run.ID, &run.Created, &run.Source, &run.Label, &run.Rows, &run.Trades, &run.NetProfit)
	if err != nil {
		if err == sql.ErrNoRows {
			return Run{}, fmt.Errorf("run %q: %w", runID, ErrNotFound)
		}
		return Run{}, err
	}
	return run, nil
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, created, source, label, row_count, trade_count, net_profit
		FROM runs
		ORDER BY created DESC, run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Created, &run.Source, &run.Label, &run.Rows, &run.Trades, &run.NetProfit); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadTable reconstructs a run's canonical table, rows in ticket order.
func (s *Store) LoadTable(ctx context.Context, runID string) (fxblue.Table, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return fxblue.Table{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT type, ticket, symbol, lots, side, open_price, close_price,
		       open_time, close_time, profit, swap, commission, net_profit,
		       take_profit, stop_loss, magic, comment
		FROM entries
		WHERE run_id = ?
		ORDER BY ticket ASC`, runID)
	if err != nil {
		return fxblue.Table{}, err
	}
	defer rows.Close()

	var t fxblue.Table
	for rows.Next() {
		var r fxblue.Row
		if err := rows.Scan(
			&r.Type, &r.Ticket, &r.Symbol, &r.Lots, &r.Side, &r.OpenPrice, &r.ClosePrice,
			&r.OpenTime, &r.CloseTime, &r.Profit, &r.Swap, &r.Commission, &r.NetProfit,
			&r.TakeProfit, &r.StopLoss, &r.Magic, &r.Comment,
		); err != nil {
			return fxblue.Table{}, err
		}
		t.Rows = append(t.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return fxblue.Table{}, err
	}
	return t, nil
}

// DeleteRun removes a run and its entries.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE run_id = ?`, runID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %q: %w", runID, ErrNotFound)
	}

	return tx.Commit()
}
