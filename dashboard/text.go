package dashboard

import (
	"fmt"
	"io"

	"github.com/rustyeddy/pricedash/compare"
	"github.com/rustyeddy/pricedash/dataset"
	"github.com/rustyeddy/pricedash/product"
)

// WriteSummary prints the home page numbers for the console.
func (d *Dashboard) WriteSummary(w io.Writer) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " %s\n", d.opts.Title)
	fmt.Fprintln(w, "==================================================")

	for _, m := range dataset.Measures {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Total %s\n", m)
		fmt.Fprintln(w, "--------------------------------------------------")

		s, err := d.Summary(m)
		if err != nil {
			fmt.Fprintf(w, "Error:            %v\n", err)
			continue
		}
		WriteMeasure(w, s)
	}
}

// WriteMeasure prints the totals and comparison of one summary.
func WriteMeasure(w io.Writer, s compare.Summary) {
	m := s.Measure
	fmt.Fprintf(w, "Test 2025:        %s\n", FormatAmount(m, s.Totals.Test2025))
	fmt.Fprintf(w, "Test 2024:        %s\n", FormatAmount(m, s.Totals.Test2024))
	fmt.Fprintf(w, "Control 2025:     %s\n", FormatAmount(m, s.Totals.Control2025))
	fmt.Fprintf(w, "Control 2024:     %s\n", FormatAmount(m, s.Totals.Control2024))
	fmt.Fprintf(w, "Test %% Change:    %s\n", FormatPct(s.TestPct))
	fmt.Fprintf(w, "Control %% Change: %s\n", FormatPct(s.ControlPct))
	fmt.Fprintf(w, "Performance:      %s\n", s.Outcome)
}

// WriteTopProducts prints the ranked products for a metric.
func (d *Dashboard) WriteTopProducts(w io.Writer, metric string, n int) error {
	m, err := product.ParseMetric(metric)
	if err != nil {
		return err
	}
	t := d.ds.Products()
	rows, err := product.TopN(t, m.Column, n)
	if err != nil {
		return err
	}
	vals, err := t.Floats(m.Column)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Top %d Products by %s\n", n, m.Name)
	fmt.Fprintln(w, "--------------------------------------------------")
	for i, r := range rows {
		fmt.Fprintf(w, "%2d. %-16s %-20s %s\n", i+1,
			t.Value(r, dataset.ColProductID),
			t.Value(r, dataset.ColStrategy),
			printer.Sprintf("%.2f", vals[r]))
	}
	return nil
}
