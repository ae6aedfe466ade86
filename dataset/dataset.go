package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Measure table columns, after normalization.
const (
	ColPriceChange   = "Price change"
	ColStrategy      = "StrategyBoxName"
	ColTest2025      = "Test 2025"
	ColTest2024      = "Test 2024"
	ColControl2025   = "Control 2025"
	ColControl2024   = "Control 2024"
	ColChangeTest    = "%Change Test"
	ColChangeControl = "%Change Control"
)

// Product table columns.
const (
	ColProductID     = "ProductId"
	ColRevenueTest25 = "Total Revenue Test 25"
	ColMarginTest25  = "Total Margin Test 25"
	ColQuantityTest  = "Quantity Test 25"
)

// YearLabels maps the abbreviated year headers of the exports to their
// canonical names.
var YearLabels = map[string]string{
	"Test 25":    ColTest2025,
	"Control 25": ColControl2025,
	"Test 24":    ColTest2024,
	"Control 24": ColControl2024,
}

var measureColumns = []string{
	ColPriceChange, ColStrategy,
	ColTest2025, ColTest2024, ColControl2025, ColControl2024,
	ColChangeTest, ColChangeControl,
}

var productColumns = []string{
	ColProductID, ColStrategy,
	ColRevenueTest25, ColMarginTest25, ColQuantityTest,
}

var ErrUnknownMeasure = errors.New("unknown measure")

type Measure int

const (
	Revenue Measure = iota
	Margin
	Quantity
)

// Measures lists every measure in display order.
var Measures = []Measure{Revenue, Margin, Quantity}

func (m Measure) String() string {
	switch m {
	case Revenue:
		return "Revenue"
	case Margin:
		return "Margin"
	case Quantity:
		return "Quantity"
	}
	return fmt.Sprintf("Measure(%d)", int(m))
}

// Slug is the lower case name used in URLs and config keys.
func (m Measure) Slug() string {
	return strings.ToLower(m.String())
}

// Currency reports whether values of m are money amounts.
func (m Measure) Currency() bool {
	return m == Revenue || m == Margin
}

func ParseMeasure(s string) (Measure, error) {
	for _, m := range Measures {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMeasure, s)
}

// Paths are the file locations of the four exports.
type Paths struct {
	Revenue  string `json:"revenue"`
	Margin   string `json:"margin"`
	Quantity string `json:"quantity"`
	Products string `json:"products"`
}

func (p Paths) measure(m Measure) string {
	switch m {
	case Revenue:
		return p.Revenue
	case Margin:
		return p.Margin
	default:
		return p.Quantity
	}
}

// Dataset is the loaded, read-only set of tables. Nothing mutates it after
// Load returns, so one value can be shared by every request.
type Dataset struct {
	measures map[Measure]*Table
	products *Table
}

// New assembles a dataset from already normalized tables.
func New(revenue, margin, quantity, products *Table) *Dataset {
	return &Dataset{
		measures: map[Measure]*Table{
			Revenue:  revenue,
			Margin:   margin,
			Quantity: quantity,
		},
		products: products,
	}
}

func (d *Dataset) Measure(m Measure) *Table {
	return d.measures[m]
}

func (d *Dataset) Products() *Table {
	return d.products
}

// Load reads and validates the four exports. Any failure is fatal for the
// caller: the dashboard has nothing to show without its data.
func Load(p Paths) (*Dataset, error) {
	tables := make(map[Measure]*Table, len(Measures))
	for _, m := range Measures {
		path := p.measure(m)
		t, err := ReadCSVFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", m.Slug(), err)
		}
		t, err = NormalizeMeasure(t)
		if err != nil {
			return nil, fmt.Errorf("load %s: %s: %w", m.Slug(), path, err)
		}
		tables[m] = t
	}

	products, err := ReadCSVFile(p.Products)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if err := ValidateProducts(products); err != nil {
		return nil, fmt.Errorf("load products: %s: %w", p.Products, err)
	}

	return New(tables[Revenue], tables[Margin], tables[Quantity], products), nil
}

// NormalizeMeasure renames the year labels, checks the required columns and
// rounds the two percentage columns to 2 decimals.
func NormalizeMeasure(t *Table) (*Table, error) {
	t = t.Rename(YearLabels)
	if err := t.Require(measureColumns...); err != nil {
		return nil, err
	}
	for _, c := range []string{ColTest2025, ColTest2024, ColControl2025, ColControl2024} {
		if _, err := t.Floats(c); err != nil {
			return nil, err
		}
	}

	var err error
	for _, c := range []string{ColChangeTest, ColChangeControl} {
		if t, err = t.MapColumn(c, Round2); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ValidateProducts checks that the per-product export carries the columns
// the product views read.
func ValidateProducts(t *Table) error {
	if err := t.Require(productColumns...); err != nil {
		return err
	}
	for _, c := range []string{ColRevenueTest25, ColMarginTest25, ColQuantityTest} {
		if _, err := t.Floats(c); err != nil {
			return err
		}
	}
	return nil
}

// Round2 rounds x to two decimals. The decimal value of x is rounded
// exactly, ties to even, so 0.125 becomes 0.12 and 0.375 becomes 0.38.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return r
}
