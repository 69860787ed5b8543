package exporter

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"stoichcli/internal/config"
	"stoichcli/internal/layout"
)

// HTMLRenderer renders the finished grid as a styled HTML table with
// header spans, per-row indentation, and a footnote. It is a pure
// presentation transform; no computation happens here.
type HTMLRenderer struct {
	paths *config.Paths
}

// NewHTMLRenderer creates a new HTML renderer instance
func NewHTMLRenderer(paths *config.Paths) *HTMLRenderer {
	return &HTMLRenderer{paths: paths}
}

const htmlTableTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
table { border-collapse: collapse; font-family: serif; }
caption { caption-side: top; text-align: left; padding-bottom: 0.5em; }
th, td { padding: 0.25em 0.75em; text-align: left; white-space: nowrap; }
thead tr:last-child th { border-bottom: 1px solid #000; }
thead tr:first-child th { border-bottom: 1px solid #000; border-top: 1px solid #000; }
tbody tr:last-child td { border-bottom: 1px solid #000; }
td.indent-1 { padding-left: 2em; }
td.indent-2 { padding-left: 3.5em; }
tfoot td { font-size: smaller; border: none; padding-top: 0.5em; }
</style>
</head>
<body>
<table>
<caption>{{.Title}}</caption>
<thead>
{{- if .Groups}}
<tr><th></th>{{range .Groups}}<th colspan="{{.Span}}">{{.Label}}</th>{{end}}</tr>
{{- end}}
<tr><th>{{.LabelHeader}}</th>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{- range .Rows}}
<tr><td{{with .IndentClass}} class="{{.}}"{{end}}>{{.Label}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
<tfoot>
<tr><td colspan="{{.FootnoteSpan}}">{{.Footnote}}</td></tr>
</tfoot>
</table>
</body>
</html>
`

type htmlGroup struct {
	Label template.HTML
	Span  int
}

type htmlRow struct {
	Label       string
	IndentClass string
	Cells       []string
}

type htmlView struct {
	Title        string
	LabelHeader  template.HTML
	Groups       []htmlGroup
	Columns      []template.HTML
	Rows         []htmlRow
	Footnote     string
	FootnoteSpan int
}

var tableTemplate = template.Must(template.New("table").Parse(htmlTableTemplate))

// Render produces the HTML document for the grid. Header labels are
// treated as opaque markup (italics, superscripts, line breaks) and pass
// through unescaped; row labels and data cells are escaped.
func (r *HTMLRenderer) Render(grid *layout.Grid, opts RenderOptions) ([]byte, error) {
	if err := opts.Validate(grid); err != nil {
		return nil, err
	}

	view := htmlView{
		Title:        opts.Title,
		LabelHeader:  template.HTML(grid.LabelHeader),
		Footnote:     opts.Footnote,
		FootnoteSpan: len(grid.Columns) + 1,
	}
	for _, g := range opts.HeaderGroups {
		view.Groups = append(view.Groups, htmlGroup{Label: template.HTML(g.Label), Span: g.Span})
	}
	for _, col := range grid.Columns {
		view.Columns = append(view.Columns, template.HTML(col.Label))
	}
	for i, row := range grid.Rows {
		hr := htmlRow{Label: row.Label, Cells: row.Cells}
		if depth := opts.indentDepth(i); depth > 0 {
			hr.IndentClass = fmt.Sprintf("indent-%d", depth)
		}
		view.Rows = append(view.Rows, hr)
	}

	var buf bytes.Buffer
	if err := tableTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render HTML table: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteHTML renders the grid and writes it to a report file.
func (r *HTMLRenderer) WriteHTML(filePath string, grid *layout.Grid, opts RenderOptions) error {
	fullPath := r.paths.GetReportPath(filePath)

	slog.Info("Writing HTML table",
		slog.String("full_path", fullPath),
		slog.Int("row_count", len(grid.Rows)))

	data, err := r.Render(grid, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(fullPath, data, 0644)
}
