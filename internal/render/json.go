package render

import (
	"encoding/json"
	"io"

	"github.com/debatestats/gateway/internal/table"
)

var _ Formatter = (*JSON)(nil)

type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

func (jf *JSON) Name() string {
	return "json"
}

func (jf *JSON) ContentType() string {
	return "application/json"
}

func (jf *JSON) Format(v table.View, w io.Writer) error {
	return json.NewEncoder(w).Encode(v)
}
