// Package render turns table views into bytes: HTML fragments for the web
// front end, go-pretty text for terminals, and JSON/CSV for exports.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/debatestats/gateway/internal/table"
)

// ErrUnknownFormat is returned by ByName for unsupported formats.
var ErrUnknownFormat = errors.New("unknown output format")

// Formatter converts a table view to bytes.
type Formatter interface {
	Name() string
	ContentType() string
	Format(v table.View, w io.Writer) error
}

// ByName returns the formatter registered under name. links is used by
// formatters that emit navigable output and may be nil.
func ByName(name string, links Links) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "html":
		return NewHTML(links), nil
	case "json":
		return NewJSON(), nil
	case "text", "txt":
		return NewText(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Names lists the supported format names.
func Names() []string {
	return []string{"html", "json", "text", "csv"}
}

// indicator is the sort arrow shown next to a header.
func indicator(d table.SortDirection) string {
	switch d {
	case table.SortAscending:
		return "▲"
	case table.SortDescending:
		return "▼"
	default:
		return ""
	}
}
