// Package product holds the per-product views: the metric selector, top-N
// ranking and column statistics.
package product

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rustyeddy/pricedash/dataset"
)

// DefaultTopN is the number of products ranked by the top products chart.
const DefaultTopN = 10

var ErrUnknownMetric = errors.New("unknown metric")

// Metric is one choice of the per-product metric selector.
type Metric struct {
	Name   string `json:"name"`
	Column string `json:"column"`
}

// Metrics is the closed selector set, in display order.
var Metrics = []Metric{
	{Name: "Total Revenue", Column: dataset.ColRevenueTest25},
	{Name: "Total Margin", Column: dataset.ColMarginTest25},
	{Name: "Quantity", Column: dataset.ColQuantityTest},
}

// DefaultMetric is selected when the caller names none.
var DefaultMetric = Metrics[0]

func ParseMetric(name string) (Metric, error) {
	if name == "" {
		return DefaultMetric, nil
	}
	for _, m := range Metrics {
		if m.Name == name {
			return m, nil
		}
	}
	return Metric{}, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// TopN returns the row indices of the n largest values of col, largest
// first. Rows with equal values keep their table order and empty cells are
// never ranked.
func TopN(t *dataset.Table, col string, n int) ([]int, error) {
	vals, err := t.Floats(col)
	if err != nil {
		return nil, err
	}

	idx := make([]int, 0, len(vals))
	for i, v := range vals {
		if !math.IsNaN(v) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return vals[idx[a]] > vals[idx[b]]
	})

	if n >= 0 && len(idx) > n {
		idx = idx[:n]
	}
	return idx, nil
}

// Subset returns a table holding only rows, in the given order.
func Subset(t *dataset.Table, rows []int) *dataset.Table {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, t.Row(r))
	}
	return dataset.NewTable(t.Columns(), out)
}
