package product

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/rustyeddy/pricedash/dataset"
)

// ColumnStats is the summary statistics block shown for each numeric
// column of the product table.
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// Describe computes statistics for every numeric column of t. Std is the
// sample standard deviation and is NaN for fewer than two values; columns
// with no values are reported with Count 0 and NaN statistics.
func Describe(t *dataset.Table) []ColumnStats {
	var out []ColumnStats
	for _, col := range t.Columns() {
		vals, err := t.Floats(col)
		if err != nil {
			continue
		}
		out = append(out, describe(col, vals))
	}
	return out
}

func describe(col string, vals []float64) ColumnStats {
	xs := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}

	s := ColumnStats{Column: col, Count: len(xs)}
	nan := math.NaN()
	if len(xs) == 0 {
		s.Mean, s.Std, s.Min, s.P25, s.P50, s.P75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	sort.Float64s(xs)

	var sum float64
	for _, x := range xs {
		sum += x
	}
	s.Mean = sum / float64(len(xs))

	if len(xs) > 1 {
		var ss float64
		for _, x := range xs {
			d := x - s.Mean
			ss += d * d
		}
		s.Std = math.Sqrt(ss / float64(len(xs)-1))
	} else {
		s.Std = nan
	}

	s.Min = xs[0]
	s.Max = xs[len(xs)-1]
	s.P25 = quantile(xs, 0.25)
	s.P50 = quantile(xs, 0.50)
	s.P75 = quantile(xs, 0.75)
	return s
}

// quantile interpolates linearly between the closest ranks of sorted xs.
func quantile(xs []float64, q float64) float64 {
	pos := q * float64(len(xs)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return xs[lo]
	}
	frac := pos - float64(lo)
	return xs[lo] + (xs[hi]-xs[lo])*frac
}

// MarshalJSON writes NaN statistics as null.
func (s ColumnStats) MarshalJSON() ([]byte, error) {
	num := func(f float64) *float64 {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	}
	return json.Marshal(struct {
		Column string   `json:"column"`
		Count  int      `json:"count"`
		Mean   *float64 `json:"mean"`
		Std    *float64 `json:"std"`
		Min    *float64 `json:"min"`
		P25    *float64 `json:"p25"`
		P50    *float64 `json:"p50"`
		P75    *float64 `json:"p75"`
		Max    *float64 `json:"max"`
	}{
		s.Column, s.Count,
		num(s.Mean), num(s.Std), num(s.Min), num(s.P25), num(s.P50), num(s.P75), num(s.Max),
	})
}
