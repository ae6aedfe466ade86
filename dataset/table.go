package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrNotNumeric    = errors.New("value is not numeric")
)

// Table is a column oriented view over a flat CSV export. Cells are kept as
// the raw strings from the file; numeric access goes through Floats.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a table from a header and rows. Rows shorter than the
// header are padded with empty cells.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		rows:    make([][]string, 0, len(rows)),
	}
	t.reindex()
	for _, r := range rows {
		row := make([]string, len(columns))
		copy(row, r)
		t.rows = append(t.rows, row)
	}
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.columns))
	for i, c := range t.columns {
		// first occurrence wins, like a column lookup on a duplicated header
		if _, ok := t.index[c]; !ok {
			t.index[c] = i
		}
	}
}

// ReadCSV parses a header line followed by data rows.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty csv: no header")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = h
	}

	var rows [][]string
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if len(row) > len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", line, len(row), len(header))
		}
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		rows = append(rows, row)
	}

	return NewTable(header, rows), nil
}

// ReadCSVFile opens path and parses it with ReadCSV.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Index returns the position of col, or -1.
func (t *Table) Index(col string) int {
	if i, ok := t.index[col]; ok {
		return i
	}
	return -1
}

func (t *Table) Has(col string) bool {
	return t.Index(col) >= 0
}

// Value returns the raw cell at row/col, or "" when col is unknown.
func (t *Table) Value(row int, col string) string {
	i := t.Index(col)
	if i < 0 {
		return ""
	}
	return t.rows[row][i]
}

// Row returns a copy of row i in column order.
func (t *Table) Row(i int) []string {
	return append([]string(nil), t.rows[i]...)
}

// Require reports the first of cols that the table does not carry.
func (t *Table) Require(cols ...string) error {
	for _, c := range cols {
		if !t.Has(c) {
			return fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}
	return nil
}

// Floats parses col as numbers. Empty cells become NaN.
func (t *Table) Floats(col string) ([]float64, error) {
	i := t.Index(col)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
	}

	out := make([]float64, len(t.rows))
	for r, row := range t.rows {
		v, err := parseFloat(row[i])
		if err != nil {
			return nil, fmt.Errorf("%w: column %q row %d: %q", ErrNotNumeric, col, r+1, row[i])
		}
		out[r] = v
	}
	return out, nil
}

// IsNumeric reports whether every non-empty cell of col parses as a number.
func (t *Table) IsNumeric(col string) bool {
	_, err := t.Floats(col)
	return err == nil
}

func parseFloat(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "", "nan", "na", "n/a", "null":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// Rename returns a copy of the table with columns renamed through m. Labels
// not in m are kept as is; rows are untouched.
func (t *Table) Rename(m map[string]string) *Table {
	out := t.Clone()
	for i, c := range out.columns {
		if to, ok := m[c]; ok {
			out.columns[i] = to
		}
	}
	out.reindex()
	return out
}

// MapColumn returns a copy of the table with fn applied to every parsed
// value of col. Empty cells stay empty.
func (t *Table) MapColumn(col string, fn func(float64) float64) (*Table, error) {
	vals, err := t.Floats(col)
	if err != nil {
		return nil, err
	}
	out := t.Clone()
	i := out.Index(col)
	for r, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		out.rows[r][i] = strconv.FormatFloat(fn(v), 'f', -1, 64)
	}
	return out, nil
}

// Clone deep copies the table.
func (t *Table) Clone() *Table {
	return NewTable(t.columns, t.rows)
}
