// Package dashboard turns the loaded dataset and its comparison summaries
// into the view models the pages, the JSON API and the console render.
package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rustyeddy/pricedash/chart"
	"github.com/rustyeddy/pricedash/compare"
	"github.com/rustyeddy/pricedash/dataset"
	"github.com/rustyeddy/pricedash/product"
)

var ErrUnknownPage = errors.New("unknown page")

// Page is a navigation destination.
type Page int

const (
	Home Page = iota
	RevenuePage
	MarginPage
	QuantityPage
	ProductsPage
)

// Pages lists the destinations in sidebar order.
var Pages = []Page{Home, RevenuePage, MarginPage, QuantityPage, ProductsPage}

func (p Page) Title() string {
	switch p {
	case Home:
		return "🏠 Home"
	case RevenuePage:
		return "💰 Revenue"
	case MarginPage:
		return "📈 Margin"
	case QuantityPage:
		return "📦 Quantity"
	case ProductsPage:
		return "📊 Per Product Analysis"
	}
	return ""
}

func (p Page) Slug() string {
	switch p {
	case RevenuePage, MarginPage, QuantityPage:
		m, _ := p.Measure()
		return m.Slug()
	case ProductsPage:
		return "products"
	}
	return "home"
}

// Path is the URL of the page on the dashboard server.
func (p Page) Path() string {
	switch p {
	case Home:
		return "/"
	case ProductsPage:
		return "/products"
	}
	return "/measures/" + p.Slug()
}

// Measure returns the measure a detail page shows.
func (p Page) Measure() (dataset.Measure, bool) {
	switch p {
	case RevenuePage:
		return dataset.Revenue, true
	case MarginPage:
		return dataset.Margin, true
	case QuantityPage:
		return dataset.Quantity, true
	}
	return 0, false
}

func ParsePage(s string) (Page, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Home, nil
	}
	for _, p := range Pages {
		if p.Slug() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPage, s)
}

func pageFor(m dataset.Measure) Page {
	switch m {
	case dataset.Margin:
		return MarginPage
	case dataset.Quantity:
		return QuantityPage
	}
	return RevenuePage
}

// Options tune presentation only.
type Options struct {
	Title string
	// Logo is served by the host; empty hides it.
	LogoURL string
}

// Dashboard holds the dataset and the summaries computed from it once at
// construction. Views are rebuilt per request from this read-only state.
type Dashboard struct {
	ds   *dataset.Dataset
	sums map[dataset.Measure]compare.Summary
	errs map[dataset.Measure]error
	opts Options
}

func New(ds *dataset.Dataset, opts Options) *Dashboard {
	if opts.Title == "" {
		opts.Title = "Price Sensitivity Dashboard"
	}
	sums, errs := compare.SummarizeAll(ds)
	return &Dashboard{ds: ds, sums: sums, errs: errs, opts: opts}
}

func (d *Dashboard) Options() Options {
	return d.opts
}

func (d *Dashboard) Dataset() *dataset.Dataset {
	return d.ds
}

// Summary returns the comparison for m, or the error that prevented it.
func (d *Dashboard) Summary(m dataset.Measure) (compare.Summary, error) {
	if err, ok := d.errs[m]; ok {
		return compare.Summary{}, err
	}
	return d.sums[m], nil
}

// Summaries returns every summary that could be computed, in measure order.
func (d *Dashboard) Summaries() []compare.Summary {
	out := make([]compare.Summary, 0, len(d.sums))
	for _, m := range dataset.Measures {
		if s, ok := d.sums[m]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Card is the home page block for one measure.
type Card struct {
	Measure     string `json:"measure"`
	Slug        string `json:"slug"`
	Test2025    string `json:"test_2025"`
	Test2024    string `json:"test_2024"`
	Control2025 string `json:"control_2025"`
	Control2024 string `json:"control_2024"`
	TestPct     string `json:"test_pct"`
	ControlPct  string `json:"control_pct"`
	Outcome     string `json:"outcome"`
	Verdict     string `json:"verdict"`
	Error       string `json:"error,omitempty"`

	Summary *compare.Summary `json:"summary,omitempty"`
}

func newCard(m dataset.Measure, s compare.Summary, err error) Card {
	c := Card{Measure: m.String(), Slug: m.Slug()}
	if err != nil {
		c.Error = err.Error()
		return c
	}
	c.Test2025 = FormatAmount(m, s.Totals.Test2025)
	c.Test2024 = FormatAmount(m, s.Totals.Test2024)
	c.Control2025 = FormatAmount(m, s.Totals.Control2025)
	c.Control2024 = FormatAmount(m, s.Totals.Control2024)
	c.TestPct = FormatPct(s.TestPct)
	c.ControlPct = FormatPct(s.ControlPct)
	c.Outcome = s.Outcome.String()
	c.Verdict = s.Outcome.Verdict.String()
	c.Summary = &s
	return c
}

// HomeView is the landing page: one card per measure.
type HomeView struct {
	Page  Page   `json:"-"`
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

func (d *Dashboard) HomeView() *HomeView {
	v := &HomeView{Page: Home, Title: "📊 " + d.opts.Title}
	for _, m := range dataset.Measures {
		s, err := d.Summary(m)
		v.Cards = append(v.Cards, newCard(m, s, err))
	}
	return v
}

// TableView is a full data table.
type TableView struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func newTableView(t *dataset.Table) TableView {
	tv := TableView{Columns: t.Columns(), Rows: make([][]string, 0, t.Len())}
	for i := 0; i < t.Len(); i++ {
		tv.Rows = append(tv.Rows, t.Row(i))
	}
	return tv
}

// MeasureView is the detail page of one measure.
type MeasureView struct {
	Page         Page          `json:"-"`
	Title        string        `json:"title"`
	Card         Card          `json:"card"`
	TestChart    *chart.Figure `json:"test_chart"`
	ControlChart *chart.Figure `json:"control_chart"`
	Table        TableView     `json:"table"`
}

// MeasureView builds the detail page for m. It fails when m's summary could
// not be computed.
func (d *Dashboard) MeasureView(m dataset.Measure) (*MeasureView, error) {
	s, err := d.Summary(m)
	if err != nil {
		return nil, err
	}
	t := d.ds.Measure(m)

	testChart, err := chart.PercentBar(t, dataset.ColChangeTest, fmt.Sprintf("%s Test %% Change", m))
	if err != nil {
		return nil, err
	}
	controlChart, err := chart.PercentBar(t, dataset.ColChangeControl, fmt.Sprintf("%s Control %% Change", m))
	if err != nil {
		return nil, err
	}

	return &MeasureView{
		Page:         pageFor(m),
		Title:        fmt.Sprintf("📊 Detailed %s Analysis", m),
		Card:         newCard(m, s, nil),
		TestChart:    testChart,
		ControlChart: controlChart,
		Table:        newTableView(t),
	}, nil
}

// StatRow is one column of the product summary statistics, formatted.
type StatRow struct {
	Column string   `json:"column"`
	Values []string `json:"values"`
}

// ProductView is the per-product analysis page.
type ProductView struct {
	Page       Page                  `json:"-"`
	Title      string                `json:"title"`
	Metric     product.Metric        `json:"metric"`
	Metrics    []product.Metric      `json:"metrics"`
	Stats      []product.ColumnStats `json:"stats"`
	StatLabels []string              `json:"-"`
	StatRows   []StatRow             `json:"-"`
	TopChart   *chart.Figure         `json:"top_chart"`
	Scatter    *chart.Figure         `json:"scatter"`
	Table      TableView             `json:"table"`
}

var statLabels = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// ProductView builds the per-product page for the selected metric name; an
// empty name selects the default metric.
func (d *Dashboard) ProductView(metric string) (*ProductView, error) {
	m, err := product.ParseMetric(metric)
	if err != nil {
		return nil, err
	}
	t := d.ds.Products()

	top, err := product.TopN(t, m.Column, product.DefaultTopN)
	if err != nil {
		return nil, err
	}
	topChart, err := chart.TopProducts(t, top, m.Column, fmt.Sprintf("Top %d Products by %s", product.DefaultTopN, m.Name))
	if err != nil {
		return nil, err
	}
	scatter, err := chart.RevenueMarginScatter(t)
	if err != nil {
		return nil, err
	}

	stats := product.Describe(t)
	rows := make([]StatRow, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, StatRow{
			Column: s.Column,
			Values: []string{
				printer.Sprintf("%d", s.Count),
				FormatStat(s.Mean), FormatStat(s.Std), FormatStat(s.Min),
				FormatStat(s.P25), FormatStat(s.P50), FormatStat(s.P75), FormatStat(s.Max),
			},
		})
	}

	return &ProductView{
		Page:       ProductsPage,
		Title:      "📊 Per Product Performance",
		Metric:     m,
		Metrics:    product.Metrics,
		Stats:      stats,
		StatLabels: statLabels,
		StatRows:   rows,
		TopChart:   topChart,
		Scatter:    scatter,
		Table:      newTableView(t),
	}, nil
}

// View builds the view for a navigation selection. metric only applies to
// the products page.
func (d *Dashboard) View(p Page, metric string) (any, error) {
	switch p {
	case Home:
		return d.HomeView(), nil
	case ProductsPage:
		return d.ProductView(metric)
	}
	m, ok := p.Measure()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPage, int(p))
	}
	return d.MeasureView(m)
}
