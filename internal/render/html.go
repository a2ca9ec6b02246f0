package render

import (
	"html/template"
	"io"
	"strconv"

	"github.com/debatestats/gateway/internal/table"
)

var _ Formatter = (*HTML)(nil)

// HTML renders a view as a <table> fragment. With Links set, sortable
// headers, expandable rows, clickable rows and pagers become links.
type HTML struct {
	links Links
}

func NewHTML(links Links) *HTML {
	return &HTML{links: links}
}

func (f *HTML) Name() string {
	return "html"
}

func (f *HTML) ContentType() string {
	return "text/html; charset=utf-8"
}

func (f *HTML) Format(v table.View, w io.Writer) error {
	return htmlTemplate.ExecuteTemplate(w, "view", f.model(v, f.links))
}

type htmlView struct {
	Note      string
	Tier      string
	Empty     bool
	Colspan   int
	Headers   []htmlHeader
	Actions   []string
	Rows      []htmlRow
	Skeletons []int
	Summary   []string
	Pages     []htmlPage
}

type htmlHeader struct {
	Text      string
	Title     string
	Href      string
	Indicator string
}

type htmlRow struct {
	Key        string
	Cells      []htmlCell
	ClickHref  string
	ToggleHref string
	Expanded   bool
	Detail     *htmlView
}

type htmlCell struct {
	Text      string
	Malformed bool
}

type htmlPage struct {
	Label   string
	Href    string
	Current bool
}

// model flattens a view into template data. Nested detail views are
// rendered without links: their state is not addressable.
func (f *HTML) model(v table.View, links Links) *htmlView {
	m := &htmlView{
		Note:    v.Note,
		Tier:    v.Tier.String(),
		Empty:   v.Empty,
		Colspan: max(len(v.Columns), 1),
	}
	if links != nil && len(v.Rows) > 0 {
		if v.Rows[0].Expandable {
			m.Actions = append(m.Actions, "toggle")
		}
		if v.Rows[0].Clickable {
			m.Actions = append(m.Actions, "open")
		}
	}
	m.Colspan += len(m.Actions)

	for _, c := range v.Columns {
		h := htmlHeader{Text: c.Header, Title: c.Description, Indicator: indicator(c.Direction)}
		if links != nil && c.Sortable {
			next := table.SortState{Column: c.Key, Direction: c.Direction}.Next()
			h.Href = links.Sort(c.Key, next)
		}
		m.Headers = append(m.Headers, h)
	}

	for i := 0; i < v.Loading; i++ {
		m.Skeletons = append(m.Skeletons, i)
	}

	for _, r := range v.Rows {
		row := htmlRow{Key: r.Key, Expanded: r.Expanded}
		for _, c := range r.Cells {
			row.Cells = append(row.Cells, htmlCell{Text: c.Text, Malformed: c.Malformed})
		}
		if links != nil {
			if r.Clickable {
				row.ClickHref = links.Click(r.Key)
			}
			if r.Expandable {
				row.ToggleHref = links.Toggle(r.Key)
			}
		}
		if r.Detail != nil {
			row.Detail = f.model(*r.Detail, nil)
		}
		m.Rows = append(m.Rows, row)
	}

	if v.Summary != nil {
		for _, c := range v.Summary.Cells {
			m.Summary = append(m.Summary, c.Text)
		}
	}

	if links != nil && v.Page.Pages > 1 {
		for p := 0; p < v.Page.Pages; p++ {
			m.Pages = append(m.Pages, htmlPage{
				Label:   strconv.Itoa(p + 1),
				Href:    links.Page(p),
				Current: p == v.Page.Page,
			})
		}
	}
	return m
}

var htmlTemplate = template.Must(template.New("table").Parse(`
{{- define "view" -}}
{{- if not .Headers -}}
<p class="table-note">{{.Note}}</p>
{{- else -}}
<table class="data-table" data-tier="{{.Tier}}">
<thead><tr>
{{- range .Headers}}<th{{with .Title}} title="{{.}}"{{end}}>{{if .Href}}<a href="{{.Href}}">{{.Text}}</a>{{else}}{{.Text}}{{end}}{{with .Indicator}} <span class="sort">{{.}}</span>{{end}}</th>{{end -}}
{{- range .Actions}}<th class="{{.}}"></th>{{end -}}
</tr></thead>
<tbody>
{{- range .Skeletons}}
<tr class="skeleton">{{range $.Headers}}<td><span class="placeholder"></span></td>{{end}}{{range $.Actions}}<td></td>{{end}}</tr>
{{- end}}
{{- if .Empty}}
<tr class="empty"><td colspan="{{.Colspan}}">{{.Note}}</td></tr>
{{- end}}
{{- range .Rows}}
<tr data-key="{{.Key}}"{{if .ClickHref}} class="clickable"{{end}}>
{{- range .Cells}}<td{{if .Malformed}} class="missing"{{end}}>{{.Text}}</td>{{end -}}
{{- if .ToggleHref}}<td class="toggle"><a href="{{.ToggleHref}}">{{if .Expanded}}Hide{{else}}Show{{end}}</a></td>{{end -}}
{{- if .ClickHref}}<td class="open"><a href="{{.ClickHref}}">Open</a></td>{{end -}}
</tr>
{{- with .Detail}}
<tr class="detail"><td colspan="{{$.Colspan}}">{{template "view" .}}</td></tr>
{{- end}}
{{- end}}
</tbody>
{{- with .Summary}}
<tfoot><tr class="summary">{{range .}}<td>{{.}}</td>{{end}}{{range $.Actions}}<td></td>{{end}}</tr></tfoot>
{{- end}}
</table>
{{- with .Pages}}
<nav class="pager">{{range .}}{{if .Current}}<span>{{.Label}}</span>{{else}}<a href="{{.Href}}">{{.Label}}</a>{{end}} {{end}}</nav>
{{- end}}
{{- end -}}
{{- end -}}
`))
