package render

import (
	"encoding/csv"
	"io"

	"github.com/debatestats/gateway/internal/table"
)

var _ Formatter = (*CSV)(nil)

// CSV writes the header, the current page of rows and the summary row.
// Detail views are not exported.
type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

func (cf *CSV) Name() string {
	return "csv"
}

func (cf *CSV) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (cf *CSV) records(v table.View) [][]string {
	header := make([]string, 0, len(v.Columns))
	for _, c := range v.Columns {
		header = append(header, c.Header)
	}
	data := [][]string{header}
	for _, r := range v.Rows {
		rec := make([]string, 0, len(r.Cells))
		for _, c := range r.Cells {
			rec = append(rec, c.Text)
		}
		data = append(data, rec)
	}
	if v.Summary != nil {
		rec := make([]string, 0, len(v.Summary.Cells))
		for _, c := range v.Summary.Cells {
			rec = append(rec, c.Text)
		}
		data = append(data, rec)
	}
	return data
}

func (cf *CSV) Format(v table.View, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(cf.records(v)); err != nil {
		return err
	}
	return cw.Error()
}
