// Package chart builds render-ready figure descriptions for the dashboard.
// Figures follow the plotly.js JSON layout so the page can hand them to
// Plotly.newPlot unchanged.
package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/rustyeddy/pricedash/dataset"
)

// Palette is assigned to groups in first-seen order.
var Palette = []string{
	"#3C37FF", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

type Marker struct {
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
}

// Trace is one plotly data series.
type Trace struct {
	Type         string    `json:"type"`
	Mode         string    `json:"mode,omitempty"`
	Name         string    `json:"name,omitempty"`
	X            []any     `json:"x"`
	Y            []float64 `json:"y"`
	Text         []string  `json:"text,omitempty"`
	TextPosition string    `json:"textposition,omitempty"`
	HoverText    []string  `json:"hovertext,omitempty"`
	Marker       *Marker   `json:"marker,omitempty"`
}

type Axis struct {
	Title string `json:"title,omitempty"`
	Type  string `json:"type,omitempty"`
}

type Layout struct {
	Title      string `json:"title,omitempty"`
	BarMode    string `json:"barmode,omitempty"`
	XAxis      Axis   `json:"xaxis"`
	YAxis      Axis   `json:"yaxis"`
	ShowLegend bool   `json:"showlegend"`
}

// Figure is a complete chart: data plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// PercentBar plots column per price change, one bar series per strategy.
// Values are rounded to 2 decimals and labelled with a percent sign.
func PercentBar(t *dataset.Table, column, title string) (*Figure, error) {
	vals, err := t.Floats(column)
	if err != nil {
		return nil, err
	}

	fig := &Figure{
		Layout: Layout{
			Title:      title,
			BarMode:    "relative",
			XAxis:      Axis{Title: dataset.ColPriceChange, Type: "category"},
			YAxis:      Axis{Title: column},
			ShowLegend: true,
		},
	}

	groups := groupRows(t, dataset.ColStrategy)
	for i, g := range groups {
		tr := Trace{
			Type:         "bar",
			Name:         g.name,
			TextPosition: "auto",
			Marker:       &Marker{Color: color(i)},
		}
		for _, r := range g.rows {
			v := vals[r]
			if math.IsNaN(v) {
				continue
			}
			v = dataset.Round2(v)
			tr.X = append(tr.X, t.Value(r, dataset.ColPriceChange))
			tr.Y = append(tr.Y, v)
			tr.Text = append(tr.Text, pctLabel(v))
		}
		fig.Data = append(fig.Data, tr)
	}
	return fig, nil
}

// TopProducts plots column for the given rows, in row order.
func TopProducts(t *dataset.Table, rows []int, column, title string) (*Figure, error) {
	vals, err := t.Floats(column)
	if err != nil {
		return nil, err
	}

	tr := Trace{
		Type:         "bar",
		TextPosition: "auto",
		Marker:       &Marker{Color: color(0)},
	}
	for _, r := range rows {
		tr.X = append(tr.X, t.Value(r, dataset.ColProductID))
		tr.Y = append(tr.Y, vals[r])
		tr.Text = append(tr.Text, formatFloat(vals[r]))
	}

	return &Figure{
		Data: []Trace{tr},
		Layout: Layout{
			Title: title,
			XAxis: Axis{Title: dataset.ColProductID, Type: "category"},
			YAxis: Axis{Title: column},
		},
	}, nil
}

// RevenueMarginScatter plots test revenue against test margin for every
// product, one marker series per strategy.
func RevenueMarginScatter(t *dataset.Table) (*Figure, error) {
	rev, err := t.Floats(dataset.ColRevenueTest25)
	if err != nil {
		return nil, err
	}
	mar, err := t.Floats(dataset.ColMarginTest25)
	if err != nil {
		return nil, err
	}

	fig := &Figure{
		Layout: Layout{
			Title:      "Revenue vs Margin (Per Product)",
			XAxis:      Axis{Title: dataset.ColRevenueTest25},
			YAxis:      Axis{Title: dataset.ColMarginTest25},
			ShowLegend: true,
		},
	}
	for i, g := range groupRows(t, dataset.ColStrategy) {
		tr := Trace{
			Type:   "scatter",
			Mode:   "markers",
			Name:   g.name,
			Marker: &Marker{Color: color(i), Size: 9},
		}
		for _, r := range g.rows {
			if math.IsNaN(rev[r]) || math.IsNaN(mar[r]) {
				continue
			}
			tr.X = append(tr.X, rev[r])
			tr.Y = append(tr.Y, mar[r])
			tr.HoverText = append(tr.HoverText, t.Value(r, dataset.ColProductID))
		}
		fig.Data = append(fig.Data, tr)
	}
	return fig, nil
}

type group struct {
	name string
	rows []int
}

func groupRows(t *dataset.Table, col string) []group {
	var out []group
	pos := make(map[string]int)
	for r := 0; r < t.Len(); r++ {
		k := t.Value(r, col)
		i, ok := pos[k]
		if !ok {
			i = len(out)
			pos[k] = i
			out = append(out, group{name: k})
		}
		out[i].rows = append(out[i].rows, r)
	}
	return out
}

func color(i int) string {
	return Palette[i%len(Palette)]
}

// pctLabel keeps one decimal on whole values, so 10 reads "10.0%".
func pctLabel(v float64) string {
	s := formatFloat(v)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s + "%"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
