package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	tbl "github.com/debatestats/gateway/internal/table"
)

var _ Formatter = (*Text)(nil)

// Text renders a view as a borderless terminal table. An expanded row is
// followed directly by its detail view, indented.
type Text struct{}

func NewText() *Text {
	return &Text{}
}

func (tf *Text) Name() string {
	return "text"
}

func (tf *Text) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (tf *Text) Format(v tbl.View, w io.Writer) error {
	_, err := io.WriteString(w, tf.render(v)+"\n")
	return err
}

func (tf *Text) render(v tbl.View) string {
	if v.MessageOnly() {
		return v.Note
	}

	var header table.Row
	for _, c := range v.Columns {
		label := c.Header
		if arrow := indicator(c.Direction); arrow != "" {
			label += " " + arrow
		}
		header = append(header, label)
	}

	t := table.NewWriter()
	t.AppendHeader(header)

	for i := 0; i < v.Loading; i++ {
		t.AppendRow(fill(len(v.Columns), "…"))
	}
	if v.Empty {
		row := fill(len(v.Columns), "")
		row[0] = v.Note
		t.AppendRow(row)
	}

	for _, r := range v.Rows {
		row := make(table.Row, 0, len(r.Cells))
		for _, c := range r.Cells {
			row = append(row, c.Text)
		}
		t.AppendRow(row)
		if r.Detail != nil {
			// One merged cell spanning every column.
			t.AppendSeparator()
			t.AppendRow(fill(len(r.Cells), detailBlock(r, tf.render(*r.Detail))), table.RowConfig{AutoMerge: true})
			t.AppendSeparator()
		}
	}

	if v.Summary != nil {
		var footer table.Row
		for _, c := range v.Summary.Cells {
			footer = append(footer, c.Text)
		}
		t.AppendFooter(footer)
	}

	t.AppendSeparator()
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false
	t.SuppressTrailingSpaces()

	out := t.Render()
	if v.Page.Pages > 1 {
		out += fmt.Sprintf("\npage %d of %d (%d rows)", v.Page.Page+1, v.Page.Pages, v.Page.Total)
	}
	return out
}

func detailBlock(r tbl.RowView, body string) string {
	title := r.Key
	if len(r.Cells) > 0 {
		title = r.Cells[0].Text
	}
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return "  " + title + ":\n" + strings.Join(lines, "\n")
}

func fill(n int, s string) table.Row {
	row := make(table.Row, n)
	for i := range row {
		row[i] = s
	}
	return row
}
