package journal

import (
	"bytes"
	"os"
	"sort"
	"text/template"

	"github.com/rustyeddy/pricedash/compare"
)

var runOrgFuncs = template.FuncMap{
	"short":  shortID,
	"sorted": sortedKeys,
	"outcome": func(o compare.Outcome) string {
		return o.String()
	},
}

var runOrgTmpl = template.Must(template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate))

// FormatRunOrg renders a run as an Org-mode block. Facts live in the
// PROPERTIES drawer; each measure becomes a table row.
func FormatRunOrg(r Run) (string, error) {
	buf := new(bytes.Buffer)
	if err := runOrgTmpl.Execute(buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteRunOrg writes the Org block for r to path.
func WriteRunOrg(path string, r Run) error {
	s, err := FormatRunOrg(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s), 0644)
}

const RunOrgTemplate = `* SNAPSHOT: Price sensitivity ({{short .RunID}})
:PROPERTIES:
:RUN_ID:      {{.RunID}}
:CREATED:     [{{.Created.Format "2006-01-02 Mon 15:04"}}]
:REVENUE:     {{.Source.Revenue}}
:MARGIN:      {{.Source.Margin}}
:QUANTITY:    {{.Source.Quantity}}
:PRODUCTS:    {{.Source.Products}}
:MEASURES:    {{len .Summaries}}
:END:

** Test vs Control
| Measure | Test 2025 | Test 2024 | Control 2025 | Control 2024 | Test % | Control % | Diff | Verdict |
|---------+-----------+-----------+--------------+--------------+--------+-----------+------+---------|
{{- range .Summaries }}
| {{.Name}} | {{printf "%.2f" .Totals.Test2025}} | {{printf "%.2f" .Totals.Test2024}} | {{printf "%.2f" .Totals.Control2025}} | {{printf "%.2f" .Totals.Control2024}} | {{printf "%.2f" .TestPct}} | {{printf "%.2f" .ControlPct}} | {{printf "%.2f" .PerfDiff}} | {{outcome .Outcome}} |
{{- end }}
{{- if .Failures }}

** Skipped
{{- range $name := sorted .Failures }}
- {{$name}}: {{index $.Failures $name}}
{{- end }}
{{- end }}

** Notes
-
`

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
