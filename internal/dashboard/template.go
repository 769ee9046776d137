package dashboard

import (
	"fmt"
	"html/template"
)

// printPercent renders a bar width attribute value.
// helper function for html template
func printPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

var pageTemplate = template.Must(template.New("dashboard").
	Funcs(template.FuncMap{
		"printPercent": printPercent,
	}).
	Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Code Reports</title>
<style>
:root {
  --bg: #0b0c0e; --surface: #16181c; --border: #2a2d33; --muted: #6b7280;
  --text: #e5e7eb; --text-strong: #f9fafb; --warn: #f59e0b; --danger: #ef4444;
  --success: #10b981; --radius: 8px;
}
* { box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; margin: 0; background: var(--bg); color: var(--text); font-size: 14px; line-height: 1.5; }
.page { max-width: 1100px; margin: 0 auto; padding: 24px; }
.header h1 { font-size: 1.5rem; font-weight: 600; color: var(--text-strong); margin: 0 0 4px 0; }
.header p { color: var(--muted); margin: 0 0 24px 0; font-size: 13px; }
.stats { display: grid; grid-template-columns: repeat(auto-fill, minmax(120px, 1fr)); gap: 12px; margin-bottom: 24px; }
.stat { background: var(--surface); border: 1px solid var(--border); border-radius: var(--radius); padding: 14px 16px; }
.stat-value { font-size: 1.5rem; font-weight: 700; color: var(--text-strong); }
.stat-label { font-size: 11px; text-transform: uppercase; letter-spacing: 0.04em; color: var(--muted); }
.stat.danger .stat-value { color: var(--danger); }
.stat.warn .stat-value { color: var(--warn); }
.stat.success .stat-value { color: var(--success); }
.section { margin-bottom: 24px; }
.section-title { font-size: 11px; font-weight: 600; text-transform: uppercase; letter-spacing: 0.06em; color: var(--muted); margin-bottom: 12px; }
.bar-row { display: flex; align-items: center; gap: 12px; margin-bottom: 8px; }
.bar-label { width: 86px; flex-shrink: 0; font-size: 13px; }
.bar-wrap { width: 160px; flex-shrink: 0; height: 8px; background: var(--border); border-radius: 4px; overflow: hidden; }
.bar { height: 100%; min-width: 2px; border-radius: 4px; background: var(--warn); }
.bar-value { font-size: 13px; color: var(--muted); }
.heatmap-wrap { background: var(--surface); border: 1px solid var(--border); border-radius: var(--radius); overflow: auto; }
.heatmap { border-collapse: collapse; width: 100%; font-size: 13px; }
.heatmap th, .heatmap td { padding: 8px 10px; border-bottom: 1px solid var(--border); }
.heatmap thead th { text-align: left; font-weight: 600; color: var(--muted); font-size: 11px; text-transform: uppercase; }
.heatmap thead th.tag-th { text-align: center; min-width: 44px; }
.heatmap .path-cell { max-width: 320px; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
.heatmap tbody td { text-align: center; color: var(--muted); }
.heatmap .heat { font-weight: 600; color: var(--text-strong); }
.heatmap .heat.lo { background: rgba(245, 158, 11, 0.18); }
.heatmap .heat.mid { background: rgba(245, 158, 11, 0.35); }
.heatmap .heat.hi { background: rgba(239, 68, 68, 0.45); }
</style>
</head>
<body>
<div class="page">
<header class="header">
<h1>Code Reports</h1>
<p>Generated from .codereports/reports.yaml &middot; {{.GeneratedAt}}</p>
</header>

<div class="stats">
<div class="stat"><div class="stat-value">{{.Stats.Total}}</div><div class="stat-label">Total</div></div>
<div class="stat success"><div class="stat-value">{{.Stats.Open}}</div><div class="stat-label">Open</div></div>
<div class="stat"><div class="stat-value">{{.Stats.Resolved}}</div><div class="stat-label">Resolved</div></div>
<div class="stat danger"><div class="stat-value">{{.Stats.Blocking}}</div><div class="stat-label">Blocking</div></div>
<div class="stat danger"><div class="stat-value">{{.Stats.Expired}}</div><div class="stat-label">Expired</div></div>
<div class="stat warn"><div class="stat-value">{{.Stats.ExpiringSoon}}</div><div class="stat-label">Expiring soon</div></div>
</div>

<div class="section">
<div class="section-title">By tag</div>
{{range .TagBars}}
<div class="bar-row">
<span class="bar-label">{{.Tag}}</span>
<div class="bar-wrap"><div class="bar" style="width:{{printPercent .Percent}}"></div></div>
<span class="bar-value">{{.Count}}</span>
</div>
{{end}}
</div>

<div class="section">
<div class="section-title">File &times; tag heatmap</div>
<div class="heatmap-wrap">
<table class="heatmap">
<thead><tr><th>File</th>{{range .Tags}}<th class="tag-th">{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}
<tr>
<td class="path-cell" title="{{.Path}}">{{.Path}}</td>
{{range .Cells}}{{if .Count}}<td class="heat {{.Level}}" title="{{.Tag}}: {{.Count}}">{{.Count}}</td>{{else}}<td>&mdash;</td>{{end}}{{end}}
</tr>
{{end}}
</tbody>
</table>
</div>
</div>
</div>
</body>
</html>
`
