package store

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	source TEXT NOT NULL,
	label TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	trade_count INTEGER NOT NULL,
	net_profit REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
	run_id TEXT NOT NULL,
	type TEXT NOT NULL,
	ticket INTEGER NOT NULL,
	symbol TEXT NOT NULL,
	lots REAL NOT NULL,
	side TEXT NOT NULL,
	open_price REAL NOT NULL,
	close_price REAL NOT NULL,
	open_time DATETIME NOT NULL,
	close_time DATETIME NOT NULL,
	profit REAL NOT NULL,
	swap REAL NOT NULL,
	commission REAL NOT NULL,
	net_profit REAL NOT NULL,
	take_profit REAL NOT NULL,
	stop_loss REAL NOT NULL,
	magic INTEGER NOT NULL,
	comment TEXT NOT NULL,
	PRIMARY KEY (run_id, ticket)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created);
`
