package dashboard

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rustyeddy/pricedash/compare"
	"github.com/rustyeddy/pricedash/dataset"
	"github.com/rustyeddy/pricedash/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func measure(t *testing.T, rows [][]string) *dataset.Table {
	t.Helper()
	tbl, err := dataset.NormalizeMeasure(dataset.NewTable([]string{
		"Price change", "StrategyBoxName", "Test 25", "Test 24", "Control 25", "Control 24",
		"%Change Test", "%Change Control",
	}, rows))
	require.NoError(t, err)
	return tbl
}

func testDashboard(t *testing.T) *Dashboard {
	t.Helper()
	revenue := measure(t, [][]string{
		{"+5%", "Premium", "1100.6", "1000", "1050", "1000", "10.05", "5"},
		{"+10%", "Budget", "1300", "1000", "1150", "1000", "30", "15"},
	})
	margin := measure(t, [][]string{
		{"+5%", "Premium", "0", "0", "1", "1", "0", "0"},
	})
	quantity := measure(t, [][]string{
		{"+5%", "Premium", "1050", "1000", "1050", "1000", "5", "4"},
		{"+10%", "Budget", "1050", "1000", "1050", "1000", "5", "6"},
	})
	products := dataset.NewTable([]string{
		"ProductId", "StrategyBoxName", "Total Revenue Test 25", "Total Margin Test 25", "Quantity Test 25",
	}, [][]string{
		{"P1", "Premium", "1000", "200", "10"},
		{"P2", "Budget", "500", "50", "40"},
		{"P3", "Premium", "750", "90", "25"},
	})
	return New(dataset.New(revenue, margin, quantity, products), Options{LogoURL: "/logo"})
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "€1,234.50", FormatAmount(dataset.Revenue, 1234.5))
	assert.Equal(t, "€0.00", FormatAmount(dataset.Margin, 0))
	assert.Equal(t, "€-12.30", FormatEuro(-12.3))
	assert.Equal(t, "1,235", FormatAmount(dataset.Quantity, 1234.6))
	assert.Equal(t, "20.00%", FormatPct(20))
	assert.Equal(t, "-3.50%", FormatPct(-3.5))
}

func TestFormatEdgeCases(t *testing.T) {
	t.Parallel()

	// integer counts round ties to the even value
	assert.Equal(t, "2", FormatCount(2.5))
	assert.Equal(t, "4", FormatCount(3.5))
	assert.Equal(t, "1,234", FormatCount(1234.5))

	// percentages are never grouped
	assert.Equal(t, "1234.50%", FormatPct(1234.5))
	assert.Equal(t, "-1500.00%", FormatPct(-1500))

	assert.Equal(t, "€-5.00", FormatEuro(-5))
	assert.Equal(t, "€1,000,000.00", FormatEuro(1e6))
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	for _, p := range Pages {
		got, err := ParsePage(p.Slug())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	p, err := ParsePage("")
	require.NoError(t, err)
	assert.Equal(t, Home, p)

	_, err = ParsePage("settings")
	assert.ErrorIs(t, err, ErrUnknownPage)

	assert.Equal(t, "/measures/margin", MarginPage.Path())
	assert.Equal(t, "/products", ProductsPage.Path())
	assert.Len(t, Pages, 5)
}

func TestHomeView(t *testing.T) {
	t.Parallel()

	d := testDashboard(t)
	v := d.HomeView()
	require.Len(t, v.Cards, 3)

	rev := v.Cards[0]
	assert.Equal(t, "Revenue", rev.Measure)
	assert.Equal(t, "€2,400.60", rev.Test2025)
	assert.Equal(t, "20.03%", rev.TestPct)
	assert.Equal(t, "10.00%", rev.ControlPct)
	assert.Equal(t, "▲ 10.03% better than Control", rev.Outcome)
	assert.Empty(t, rev.Error)

	margin := v.Cards[1]
	assert.Contains(t, margin.Error, compare.ErrZeroBaseline.Error())

	qty := v.Cards[2]
	assert.Equal(t, "2,100", qty.Test2025)
	assert.Equal(t, "No difference from Control", qty.Outcome)
}

func TestMeasureView(t *testing.T) {
	t.Parallel()

	d := testDashboard(t)
	v, err := d.MeasureView(dataset.Revenue)
	require.NoError(t, err)
	assert.Equal(t, RevenuePage, v.Page)
	assert.Equal(t, "📊 Detailed Revenue Analysis", v.Title)
	assert.Equal(t, "Revenue Test % Change", v.TestChart.Layout.Title)
	assert.Equal(t, "Revenue Control % Change", v.ControlChart.Layout.Title)
	assert.Len(t, v.Table.Rows, 2)
	assert.Contains(t, v.Table.Columns, "Test 2025")

	_, err = d.MeasureView(dataset.Margin)
	assert.ErrorIs(t, err, compare.ErrZeroBaseline)
}

func TestProductView(t *testing.T) {
	t.Parallel()

	d := testDashboard(t)
	v, err := d.ProductView("Quantity")
	require.NoError(t, err)
	assert.Equal(t, "Quantity", v.Metric.Name)
	assert.Equal(t, "Top 10 Products by Quantity", v.TopChart.Layout.Title)
	assert.Equal(t, []any{"P2", "P3", "P1"}, v.TopChart.Data[0].X)
	assert.Len(t, v.StatRows, 3)
	assert.Equal(t, "3", v.StatRows[0].Values[0])

	_, err = json.Marshal(v)
	require.NoError(t, err)

	_, err = d.ProductView("Profit")
	assert.ErrorIs(t, err, product.ErrUnknownMetric)
}

func TestView(t *testing.T) {
	t.Parallel()

	d := testDashboard(t)
	v, err := d.View(Home, "")
	require.NoError(t, err)
	assert.IsType(t, &HomeView{}, v)

	v, err = d.View(QuantityPage, "")
	require.NoError(t, err)
	assert.IsType(t, &MeasureView{}, v)

	v, err = d.View(ProductsPage, "")
	require.NoError(t, err)
	assert.Equal(t, product.DefaultMetric, v.(*ProductView).Metric)
}

func TestRender(t *testing.T) {
	t.Parallel()

	d := testDashboard(t)

	var buf bytes.Buffer
	require.NoError(t, d.Render(&buf, d.HomeView()))
	html := buf.String()
	assert.Contains(t, html, "Price Sensitivity Dashboard")
	assert.Contains(t, html, "€2,400.60")
	assert.Contains(t, html, `href="/measures/quantity"`)
	assert.Contains(t, html, `src="/logo"`)

	buf.Reset()
	mv, err := d.MeasureView(dataset.Quantity)
	require.NoError(t, err)
	require.NoError(t, d.Render(&buf, mv))
	assert.Contains(t, buf.String(), "Detailed Quantity Analysis")
	assert.Contains(t, buf.String(), `plot("test-chart"`)

	buf.Reset()
	pv, err := d.ProductView("")
	require.NoError(t, err)
	require.NoError(t, d.Render(&buf, pv))
	assert.Contains(t, buf.String(), "Summary Statistics")
	assert.Contains(t, buf.String(), "Top 10 Products by Total Revenue")

	buf.Reset()
	require.NoError(t, d.RenderError(&buf, MarginPage, compare.ErrZeroBaseline))
	assert.Contains(t, buf.String(), "baseline total is zero")

	assert.Error(t, d.Render(&buf, "nope"))
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	d := testDashboard(t)
	var buf bytes.Buffer
	d.WriteSummary(&buf)
	out := buf.String()

	assert.Contains(t, out, "Total Revenue")
	assert.Contains(t, out, "▲ 10.03% better than Control")
	assert.Contains(t, out, "baseline total is zero")
	assert.True(t, strings.Contains(out, "Test 2025:        2,100"))

	buf.Reset()
	require.NoError(t, d.WriteTopProducts(&buf, "Total Margin", 2))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "P1")
	assert.Contains(t, lines[3], "P3")
}
