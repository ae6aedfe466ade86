package compare

import (
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/pricedash/dataset"
)

var (
	// ErrZeroBaseline is returned when the 2024 total a change is measured
	// against sums to zero.
	ErrZeroBaseline = errors.New("baseline total is zero")
	ErrEmpty        = errors.New("no values")
)

// Sum adds xs, skipping NaN cells.
func Sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		s += x
	}
	return s
}

// Mean averages the non-NaN values of xs.
func Mean(xs []float64) (float64, error) {
	var s float64
	n := 0
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		s += x
		n++
	}
	if n == 0 {
		return 0, ErrEmpty
	}
	return s / float64(n), nil
}

// ColumnSum is Sum over a table column.
func ColumnSum(t *dataset.Table, col string) (float64, error) {
	vals, err := t.Floats(col)
	if err != nil {
		return 0, err
	}
	return Sum(vals), nil
}

// ColumnMean is Mean over a table column.
func ColumnMean(t *dataset.Table, col string) (float64, error) {
	vals, err := t.Floats(col)
	if err != nil {
		return 0, err
	}
	m, err := Mean(vals)
	if err != nil {
		return 0, fmt.Errorf("mean %q: %w", col, err)
	}
	return m, nil
}

// PercentChange is the aggregate change between two year columns:
// ((sum(cur) - sum(prev)) / sum(prev)) * 100, rounded to 2 decimals.
func PercentChange(t *dataset.Table, cur, prev string) (float64, error) {
	c, err := ColumnSum(t, cur)
	if err != nil {
		return 0, err
	}
	p, err := ColumnSum(t, prev)
	if err != nil {
		return 0, err
	}
	return Change(c, p)
}

// Change is the rounded percentage change from prev to cur.
func Change(cur, prev float64) (float64, error) {
	if prev == 0 {
		return 0, ErrZeroBaseline
	}
	return dataset.Round2((cur - prev) / prev * 100), nil
}

// PerformanceDifference compares the cohort level test change with the row
// average of the precomputed control change.
func PerformanceDifference(testPct float64, t *dataset.Table) (float64, error) {
	ctl, err := ColumnMean(t, dataset.ColChangeControl)
	if err != nil {
		return 0, err
	}
	return dataset.Round2(testPct - ctl), nil
}
