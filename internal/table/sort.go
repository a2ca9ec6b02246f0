package table

import (
	"fmt"
	"strings"
)

// SortDirection specifies the direction of sorting.
type SortDirection int

const (
	// SortNone indicates no sorting.
	SortNone SortDirection = iota
	// SortAscending indicates ascending sort order.
	SortAscending
	// SortDescending indicates descending sort order.
	SortDescending
)

// String returns the short form used in query strings.
func (sd SortDirection) String() string {
	switch sd {
	case SortNone:
		return ""
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return fmt.Sprintf("unknown(%d)", int(sd))
	}
}

// ParseSortDirection parses "asc", "desc" or the empty string.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SortNone, nil
	case "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	default:
		return SortNone, fmt.Errorf("invalid sort direction %q", s)
	}
}

// SortState represents the current sorting configuration. At most one
// column is sorted at a time.
type SortState struct {
	// Column is the key of the sorted column, empty if unsorted.
	Column string `json:"column,omitempty"`
	// Direction is the sort direction.
	Direction SortDirection `json:"direction"`
}

// IsSorted returns true if this state represents an active sort.
func (s SortState) IsSorted() bool {
	return s.Column != "" && s.Direction != SortNone
}

// Next returns the state after another click on the same column header:
// none -> asc -> desc -> none.
func (s SortState) Next() SortState {
	switch s.Direction {
	case SortNone:
		return SortState{Column: s.Column, Direction: SortAscending}
	case SortAscending:
		return SortState{Column: s.Column, Direction: SortDescending}
	default:
		return SortState{}
	}
}

// DirectionOf returns the direction applied to column key.
func (s SortState) DirectionOf(key string) SortDirection {
	if s.IsSorted() && s.Column == key {
		return s.Direction
	}
	return SortNone
}

// MarshalText encodes the direction as "asc", "desc" or "".
func (sd SortDirection) MarshalText() ([]byte, error) {
	return []byte(sd.String()), nil
}

// UnmarshalText decodes a direction.
func (sd *SortDirection) UnmarshalText(b []byte) error {
	parsed, err := ParseSortDirection(string(b))
	if err != nil {
		return err
	}
	*sd = parsed
	return nil
}
