package dashboard

import (
	"fmt"
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"pages": func() []Page { return Pages },
}).Parse(pageTpl))

type pageData struct {
	Title   string
	Current Page
	LogoURL string
	Body    string
	View    any
}

// Render writes the HTML page for a view built by this package.
func (d *Dashboard) Render(w io.Writer, view any) error {
	data := pageData{Title: d.opts.Title, LogoURL: d.opts.LogoURL, View: view}
	switch v := view.(type) {
	case *HomeView:
		data.Current, data.Body = v.Page, "home"
	case *MeasureView:
		data.Current, data.Body = v.Page, "measure"
	case *ProductView:
		data.Current, data.Body = v.Page, "products"
	default:
		return fmt.Errorf("render: unsupported view %T", view)
	}
	return pageTemplate.Execute(w, data)
}

// RenderError writes an error page that keeps the navigation usable.
func (d *Dashboard) RenderError(w io.Writer, current Page, err error) error {
	return pageTemplate.Execute(w, pageData{
		Title:   d.opts.Title,
		LogoURL: d.opts.LogoURL,
		Current: current,
		Body:    "error",
		View:    err.Error(),
	})
}

const pageTpl = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
<style>
body { margin: 0; font-family: "Source Sans Pro", Arial, sans-serif; background-color: #12123B; color: #E8F0FF; display: flex; }
nav { background-color: #3C37FF; color: white; min-height: 100vh; width: 240px; padding: 24px 16px; box-sizing: border-box; }
nav h2 { margin-top: 0; }
nav a { display: block; color: white; text-decoration: none; padding: 8px 10px; border-radius: 8px; }
nav a.active { background-color: rgba(255,255,255,0.2); font-weight: bold; }
main { flex: 1; padding: 32px 48px; }
.cards { display: grid; grid-template-columns: 1.5fr 1.5fr 1fr; gap: 24px; }
.pair { display: grid; grid-template-columns: 1fr 1fr; gap: 24px; text-align: center; }
.metric { font-size: 28px; font-weight: bold; }
.better { color: #10B981; }
.worse { color: #EF4444; }
.outcome { text-align: center; font-size: 32px; font-weight: bold; margin: 32px 0; }
.center { text-align: center; }
.error { background: #4b1d2a; padding: 16px; border-radius: 8px; }
table { border-collapse: collapse; width: 100%; margin-top: 16px; font-size: 14px; }
th, td { border: 1px solid #2f2f6b; padding: 6px 8px; text-align: right; }
th { background-color: #1d1d55; }
select { background: #3C37FF; color: white; border: none; border-radius: 8px; padding: 6px 10px; }
.chart { width: 100%; min-height: 420px; }
</style>
</head>
<body>
<nav>
<h2>🔍 Select a View</h2>
{{range pages}}<a href="{{.Path}}"{{if eq . $.Current}} class="active"{{end}}>{{.Title}}</a>
{{end}}
</nav>
<main>
{{if eq .Body "home"}}{{template "home" .View}}{{end}}
{{if eq .Body "measure"}}{{template "measure" .View}}{{end}}
{{if eq .Body "products"}}{{template "products" .View}}{{end}}
{{if eq .Body "error"}}<div class="error">{{.View}}</div>{{end}}
{{if .LogoURL}}<div class="center"><br><br><img src="{{.LogoURL}}" width="150" alt="logo"></div>{{end}}
</main>
<script>
function plot(id, fig) {
	if (!fig) { return; }
	var layout = Object.assign({}, fig.layout, {
		paper_bgcolor: "#12123B", plot_bgcolor: "#12123B", font: {color: "#E8F0FF"}
	});
	Plotly.newPlot(id, fig.data, layout, {responsive: true});
}
</script>
{{if eq .Body "measure"}}<script>
plot("test-chart", {{.View.TestChart}});
plot("control-chart", {{.View.ControlChart}});
</script>{{end}}
{{if eq .Body "products"}}<script>
plot("top-chart", {{.View.TopChart}});
plot("scatter-chart", {{.View.Scatter}});
(function() {
	var sel = document.getElementById("metric");
	if (!window.WebSocket) { return; }
	var proto = location.protocol === "https:" ? "wss://" : "ws://";
	var ws = new WebSocket(proto + location.host + "/ws");
	ws.onmessage = function(ev) {
		var msg = JSON.parse(ev.data);
		if (msg.error || !msg.view) { return; }
		plot("top-chart", msg.view.top_chart);
		document.getElementById("top-title").textContent = msg.view.top_chart.layout.title;
		history.replaceState(null, "", "/products?metric=" + encodeURIComponent(msg.view.metric.name));
	};
	sel.addEventListener("change", function(e) {
		if (ws.readyState !== WebSocket.OPEN) { return; }
		e.preventDefault();
		ws.send(JSON.stringify({page: "products", metric: sel.value}));
	});
	sel.form.addEventListener("submit", function(e) {
		if (ws.readyState === WebSocket.OPEN) { e.preventDefault(); }
	});
})();
</script>{{end}}
</body>
</html>

{{define "card"}}
<h3>{{.Measure}}</h3>
{{if .Error}}<div class="error">{{.Error}}</div>{{else}}
<div class="metric">Test 2025: {{.Test2025}}</div>
<p>Test 2024: <b>{{.Test2024}}</b></p>
<div class="metric">Control 2025: {{.Control2025}}</div>
<p>Control 2024: <b>{{.Control2024}}</b></p>
<p>Test % Change<br><span class="metric">{{.TestPct}}</span></p>
<p>Control % Change<br><span class="metric">{{.ControlPct}}</span></p>
<p class="{{if eq .Verdict "better than Control"}}better{{else if eq .Verdict "worse than Control"}}worse{{end}}"><b>{{.Outcome}}</b></p>
{{end}}
{{end}}

{{define "home"}}
<h1>{{.Title}}</h1>
<div class="cards">
{{range .Cards}}<div>{{template "card" .}}</div>{{end}}
</div>
{{end}}

{{define "table"}}
<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}
</table>
{{end}}

{{define "measure"}}
<h1 class="center">{{.Title}}</h1>
<br>
<div class="pair">
<div><h3>{{.Card.Measure}} (Test)</h3><h2>{{.Card.Test2025}}</h2><h4>2024: {{.Card.Test2024}}</h4></div>
<div><h3>{{.Card.Measure}} (Control)</h3><h2>{{.Card.Control2025}}</h2><h4>2024: {{.Card.Control2024}}</h4></div>
</div>
<br>
<div class="pair">
<div><h3>Test % Change</h3><h2>{{.Card.TestPct}}</h2></div>
<div><h3>Control % Change</h3><h2>{{.Card.ControlPct}}</h2></div>
</div>
<div class="outcome {{if eq .Card.Verdict "better than Control"}}better{{else if eq .Card.Verdict "worse than Control"}}worse{{end}}">{{.Card.Outcome}}</div>
<div id="test-chart" class="chart"></div>
<div id="control-chart" class="chart"></div>
<h3 class="center">📋 {{.Card.Measure}} Data Table</h3>
{{template "table" .Table}}
{{end}}

{{define "products"}}
<h1>{{.Title}}</h1>
<h2>Summary Statistics</h2>
<table>
<tr><th></th>{{range .StatRows}}<th>{{.Column}}</th>{{end}}</tr>
{{range $i, $label := .StatLabels}}<tr><th>{{$label}}</th>{{range $.StatRows}}<td>{{index .Values $i}}</td>{{end}}</tr>
{{end}}
</table>
<form method="get" action="/products">
<p>Select a metric to visualize:
<select id="metric" name="metric" onchange="this.form.requestSubmit ? this.form.requestSubmit() : this.form.submit()">
{{range .Metrics}}<option value="{{.Name}}"{{if eq .Name $.Metric.Name}} selected{{end}}>{{.Name}}</option>
{{end}}</select>
<noscript><button type="submit">Show</button></noscript></p>
</form>
<h2 id="top-title">{{.TopChart.Layout.Title}}</h2>
<div id="top-chart" class="chart"></div>
<h2>Revenue vs Margin (Test 25)</h2>
<div id="scatter-chart" class="chart"></div>
<h2>📋 Per Product Data Table</h2>
{{template "table" .Table}}
{{end}}
`
