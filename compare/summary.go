package compare

import (
	"fmt"

	"github.com/rustyeddy/pricedash/dataset"
)

type Verdict int

const (
	NoDifference Verdict = iota
	Better
	Worse
)

func (v Verdict) String() string {
	switch v {
	case Better:
		return "better than Control"
	case Worse:
		return "worse than Control"
	default:
		return "no difference"
	}
}

// Outcome classifies a performance difference.
type Outcome struct {
	Verdict   Verdict `json:"verdict"`
	Diff      float64 `json:"diff"`
	Magnitude float64 `json:"magnitude"`
}

func Classify(diff float64) Outcome {
	o := Outcome{Diff: diff, Magnitude: diff}
	switch {
	case diff > 0:
		o.Verdict = Better
	case diff < 0:
		o.Verdict = Worse
		o.Magnitude = -diff
	default:
		o.Verdict = NoDifference
		o.Magnitude = 0
	}
	return o
}

func (o Outcome) String() string {
	switch o.Verdict {
	case Better:
		return fmt.Sprintf("▲ %.2f%% better than Control", o.Magnitude)
	case Worse:
		return fmt.Sprintf("▼ %.2f%% worse than Control", o.Magnitude)
	}
	return "No difference from Control"
}

// MarshalText lets the verdict appear by name in JSON payloads.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Verdict) UnmarshalText(b []byte) error {
	for _, c := range []Verdict{NoDifference, Better, Worse} {
		if c.String() == string(b) {
			*v = c
			return nil
		}
	}
	return fmt.Errorf("unknown verdict %q", b)
}

// Totals holds the four cohort sums of a measure table.
type Totals struct {
	Test2025    float64 `json:"test_2025"`
	Test2024    float64 `json:"test_2024"`
	Control2025 float64 `json:"control_2025"`
	Control2024 float64 `json:"control_2024"`
}

// Summary is everything the views show for one measure.
type Summary struct {
	Measure    dataset.Measure `json:"-"`
	Name       string          `json:"measure"`
	Rows       int             `json:"rows"`
	Totals     Totals          `json:"totals"`
	TestPct    float64         `json:"test_pct"`
	ControlPct float64         `json:"control_pct"`
	PerfDiff   float64         `json:"perf_diff"`
	Outcome    Outcome         `json:"outcome"`
}

// Summarize computes the totals and comparison for one measure table. It
// reads t only, so repeated calls give the same result.
func Summarize(m dataset.Measure, t *dataset.Table) (Summary, error) {
	s := Summary{Measure: m, Name: m.String(), Rows: t.Len()}

	cols := []struct {
		name string
		dst  *float64
	}{
		{dataset.ColTest2025, &s.Totals.Test2025},
		{dataset.ColTest2024, &s.Totals.Test2024},
		{dataset.ColControl2025, &s.Totals.Control2025},
		{dataset.ColControl2024, &s.Totals.Control2024},
	}
	for _, c := range cols {
		v, err := ColumnSum(t, c.name)
		if err != nil {
			return Summary{}, fmt.Errorf("%s: %w", m, err)
		}
		*c.dst = v
	}

	var err error
	s.TestPct, err = Change(s.Totals.Test2025, s.Totals.Test2024)
	if err != nil {
		return Summary{}, fmt.Errorf("%s test change: %w", m, err)
	}

	s.ControlPct, err = ColumnMean(t, dataset.ColChangeControl)
	if err != nil {
		return Summary{}, fmt.Errorf("%s control change: %w", m, err)
	}

	s.PerfDiff = dataset.Round2(s.TestPct - s.ControlPct)
	s.Outcome = Classify(s.PerfDiff)
	return s, nil
}

// SummarizeAll summarizes every measure of ds. A measure that cannot be
// summarized is reported in errs and left out of the summaries.
func SummarizeAll(ds *dataset.Dataset) (sums map[dataset.Measure]Summary, errs map[dataset.Measure]error) {
	sums = make(map[dataset.Measure]Summary, len(dataset.Measures))
	errs = make(map[dataset.Measure]error)
	for _, m := range dataset.Measures {
		s, err := Summarize(m, ds.Measure(m))
		if err != nil {
			errs[m] = err
			continue
		}
		sums[m] = s
	}
	return sums, errs
}
