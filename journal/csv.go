package journal

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{
	"run_id", "created", "measure", "rows",
	"test_2025", "test_2024", "control_2025", "control_2024",
	"test_pct", "control_pct", "perf_diff", "verdict",
}

// CSVJournal appends one row per measure of a run, failed measures
// included.
type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

// NewCSV opens path for appending and writes the header when the file is
// new or empty.
func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	}
	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) RecordRun(ctx context.Context, r Run) error {
	created := r.Created.Format(time.RFC3339)
	for _, s := range r.Summaries {
		err := j.w.Write([]string{
			r.RunID,
			created,
			s.Name,
			strconv.Itoa(s.Rows),
			f(s.Totals.Test2025),
			f(s.Totals.Test2024),
			f(s.Totals.Control2025),
			f(s.Totals.Control2024),
			f(s.TestPct),
			f(s.ControlPct),
			f(s.PerfDiff),
			s.Outcome.Verdict.String(),
		})
		if err != nil {
			return err
		}
	}
	// A measure that could not be summarized gets a row with empty numbers
	// and the reason in the verdict column.
	for _, name := range sortedKeys(r.Failures) {
		row := make([]string, len(csvHeader))
		row[0], row[1], row[2] = r.RunID, created, name
		row[len(row)-1] = "failed: " + r.Failures[name]
		if err := j.w.Write(row); err != nil {
			return err
		}
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		j.f.Close()
		return err
	}
	return j.f.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
