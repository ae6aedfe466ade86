// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created TEXT NOT NULL,
	revenue_path TEXT NOT NULL,
	margin_path TEXT NOT NULL,
	quantity_path TEXT NOT NULL,
	products_path TEXT NOT NULL,
	payload BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS summaries (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	measure TEXT NOT NULL,
	rows INTEGER NOT NULL,
	test_2025 REAL NOT NULL,
	test_2024 REAL NOT NULL,
	control_2025 REAL NOT NULL,
	control_2024 REAL NOT NULL,
	test_pct REAL NOT NULL,
	control_pct REAL NOT NULL,
	perf_diff REAL NOT NULL,
	verdict TEXT NOT NULL,
	PRIMARY KEY (run_id, measure)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created);
`
