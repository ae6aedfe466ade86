// journal/journal.go
package journal

import (
	"context"
	"time"

	"github.com/rustyeddy/pricedash/compare"
	"github.com/rustyeddy/pricedash/dataset"
	"github.com/rustyeddy/pricedash/pkg/id"
)

// Run is one snapshot of the comparison summaries computed from a set of
// exports.
type Run struct {
	RunID     string            `json:"run_id"`
	Created   time.Time         `json:"created"`
	Source    dataset.Paths     `json:"source"`
	Summaries []compare.Summary `json:"summaries"`
	// Failures maps a measure name to the reason it was not summarized.
	Failures map[string]string `json:"failures,omitempty"`
}

// NewRun stamps a fresh run with a time sortable ID.
func NewRun(src dataset.Paths, sums []compare.Summary, failures map[string]string) Run {
	return Run{
		RunID:     id.New(),
		Created:   time.Now().UTC(),
		Source:    src,
		Summaries: sums,
		Failures:  failures,
	}
}

type Journal interface {
	RecordRun(ctx context.Context, r Run) error
	Close() error
}
