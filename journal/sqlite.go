package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/snappy"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/pricedash/dataset"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

// RecordRun stores the run and its per-measure rows in one transaction. The
// full run is kept as a snappy compressed JSON payload so GetRun can return
// it unchanged.
func (j *SQLiteJournal) RecordRun(ctx context.Context, r Run) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(run_id, created, revenue_path, margin_path, quantity_path, products_path, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created.UTC().Format(time.RFC3339Nano), r.Source.Revenue, r.Source.Margin, r.Source.Quantity, r.Source.Products,
		snappy.Encode(nil, raw),
	)
	if err != nil {
		return err
	}

	for _, s := range r.Summaries {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO summaries
			(run_id, measure, rows, test_2025, test_2024, control_2025, control_2024, test_pct, control_pct, perf_diff, verdict)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, s.Name, s.Rows,
			s.Totals.Test2025, s.Totals.Test2024, s.Totals.Control2025, s.Totals.Control2024,
			s.TestPct, s.ControlPct, s.PerfDiff, s.Outcome.Verdict.String(),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

func decodeRun(payload []byte) (Run, error) {
	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return Run{}, fmt.Errorf("decompress run: %w", err)
	}
	var r Run
	if err := json.Unmarshal(raw, &r); err != nil {
		return Run{}, fmt.Errorf("decode run: %w", err)
	}
	for i := range r.Summaries {
		m, err := dataset.ParseMeasure(r.Summaries[i].Name)
		if err != nil {
			return Run{}, err
		}
		r.Summaries[i].Measure = m
	}
	return r, nil
}
