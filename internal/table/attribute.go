package table

import (
	"fmt"
	"strings"
	"unicode"
)

// Attribute declares one column: how its value is extracted, whether it can
// be sorted or summed, and from which responsive tier it is shown.
// Attributes are plain values; copy and modify them freely.
type Attribute[T any] struct {
	// Key identifies the column in sort state and links. Defaults to a slug
	// of Header.
	Key          string
	Header       string
	Value        Value[T]
	Sortable     bool
	Summarizable bool
	Priority     Tier
	Description  string
}

// ColumnKey returns the resolved column key.
func (a Attribute[T]) ColumnKey() string {
	if a.Key != "" {
		return a.Key
	}
	return slug(a.Header)
}

func (a Attribute[T]) validate() error {
	key := a.ColumnKey()
	name := a.Header
	if name == "" {
		name = key
	}
	if key == "" {
		return &ConfigError{Column: name, Reason: "column needs a key or a header"}
	}
	if a.Value.Literal == nil {
		return &ConfigError{Column: name, Reason: "literal accessor is nil"}
	}
	if !a.Priority.Valid() {
		return &ConfigError{Column: name, Reason: fmt.Sprintf("unknown priority %s", a.Priority)}
	}
	if !a.Summarizable {
		return nil
	}

	switch a.Value.Kind {
	case KindNumber:
		return nil
	case KindAny:
		// Probe the zero row. Panics and nil results are inconclusive.
		var zero T
		if s := resolve(a.Value, zero); s.ok && s.kind != KindNumber {
			return &ConfigError{Column: name, Reason: fmt.Sprintf("summarizable column yields %s values", s.kind)}
		}
		return nil
	default:
		return &ConfigError{Column: name, Reason: fmt.Sprintf("summarizable column yields %s values", a.Value.Kind)}
	}
}

// text renders the cell for row. Display wins over the literal formatting.
func (a Attribute[T]) text(row T, s scalar) (out string) {
	if a.Value.Display == nil {
		return s.format(a.Value.Percentage)
	}
	defer func() {
		if recover() != nil {
			out = missing
		}
	}()
	return a.Value.Display(row)
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}
