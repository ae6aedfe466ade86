package product

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/rustyeddy/pricedash/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productHeader = []string{
	dataset.ColProductID, dataset.ColStrategy,
	dataset.ColRevenueTest25, dataset.ColMarginTest25, dataset.ColQuantityTest,
}

func TestParseMetric(t *testing.T) {
	t.Parallel()

	want := map[string]string{
		"Total Revenue": dataset.ColRevenueTest25,
		"Total Margin":  dataset.ColMarginTest25,
		"Quantity":      dataset.ColQuantityTest,
	}
	for name, col := range want {
		m, err := ParseMetric(name)
		require.NoError(t, err)
		assert.Equal(t, col, m.Column)
	}

	m, err := ParseMetric("")
	require.NoError(t, err)
	assert.Equal(t, DefaultMetric, m)

	_, err = ParseMetric("Profit")
	assert.ErrorIs(t, err, ErrUnknownMetric)
	assert.Len(t, Metrics, 3)
}

func TestTopNQuantity(t *testing.T) {
	t.Parallel()

	// 15 products; P3 and P8 tie on 70, P12 and P13 tie on 20
	qty := []string{"10", "50", "90", "70", "30", "100", "60", "15", "70", "80", "5", "40", "20", "20", "95"}
	rows := make([][]string, len(qty))
	for i, q := range qty {
		rows[i] = []string{fmt.Sprintf("P%d", i), "S", "1", "1", q}
	}
	tbl := dataset.NewTable(productHeader, rows)

	m, err := ParseMetric("Quantity")
	require.NoError(t, err)

	top, err := TopN(tbl, m.Column, DefaultTopN)
	require.NoError(t, err)
	require.Len(t, top, 10)

	// 100, 95, 90, 80, 70 (P3), 70 (P8), 60, 50, 40, 30
	assert.Equal(t, []int{5, 14, 2, 9, 3, 8, 6, 1, 11, 4}, top)

	sub := Subset(tbl, top)
	assert.Equal(t, 10, sub.Len())
	assert.Equal(t, "P5", sub.Value(0, dataset.ColProductID))
	assert.Equal(t, "P3", sub.Value(4, dataset.ColProductID))
	assert.Equal(t, "P8", sub.Value(5, dataset.ColProductID))
}

func TestTopNShortTableAndEmptyCells(t *testing.T) {
	t.Parallel()

	tbl := dataset.NewTable(productHeader, [][]string{
		{"A", "S", "5", "1", "1"},
		{"B", "S", "", "1", "1"},
		{"C", "S", "7", "1", "1"},
	})

	top, err := TopN(tbl, dataset.ColRevenueTest25, DefaultTopN)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, top)

	_, err = TopN(tbl, dataset.ColStrategy, 1)
	assert.ErrorIs(t, err, dataset.ErrNotNumeric)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	tbl := dataset.NewTable(productHeader, [][]string{
		{"A", "S", "1", "10", ""},
		{"B", "S", "2", "20", ""},
		{"C", "S", "3", "30", ""},
		{"D", "S", "4", "40", ""},
	})

	stats := Describe(tbl)
	require.Len(t, stats, 3)

	rev := stats[0]
	assert.Equal(t, dataset.ColRevenueTest25, rev.Column)
	assert.Equal(t, 4, rev.Count)
	assert.Equal(t, 2.5, rev.Mean)
	assert.InDelta(t, 1.2909944, rev.Std, 1e-6)
	assert.Equal(t, 1.0, rev.Min)
	assert.Equal(t, 1.75, rev.P25)
	assert.Equal(t, 2.5, rev.P50)
	assert.Equal(t, 3.25, rev.P75)
	assert.Equal(t, 4.0, rev.Max)

	qty := stats[2]
	assert.Equal(t, 0, qty.Count)
	assert.True(t, math.IsNaN(qty.Mean))

	b, err := json.Marshal(qty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"column":"Quantity Test 25","count":0,"mean":null,"std":null,"min":null,"p25":null,"p50":null,"p75":null,"max":null}`, string(b))
}
