package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrRunNotFound = errors.New("run not found")

// RunInfo is the listing row of a recorded run.
type RunInfo struct {
	RunID    string
	Created  time.Time
	Measures int
	Better   int
}

// GetRun returns a recorded run by ID.
func (j *SQLiteJournal) GetRun(ctx context.Context, runID string) (Run, error) {
	var payload []byte
	err := j.db.QueryRowContext(ctx, `SELECT payload FROM runs WHERE run_id = ?`, runID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("%w: %q", ErrRunNotFound, runID)
		}
		return Run{}, err
	}
	return decodeRun(payload)
}

// ListRuns returns up to limit runs, newest first. limit <= 0 lists all.
func (j *SQLiteJournal) ListRuns(ctx context.Context, limit int) ([]RunInfo, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT r.run_id, r.created,
			COUNT(s.measure),
			COALESCE(SUM(CASE WHEN s.verdict = 'better than Control' THEN 1 ELSE 0 END), 0)
		FROM runs r
		LEFT JOIN summaries s ON s.run_id = r.run_id
		GROUP BY r.run_id, r.created
		ORDER BY r.run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var (
			info    RunInfo
			created string
		)
		if err := rows.Scan(&info.RunID, &created, &info.Measures, &info.Better); err != nil {
			return nil, err
		}
		if info.Created, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("run %s created: %w", info.RunID, err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
