package render

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/debatestats/gateway/internal/table"
)

// Query parameters selecting the layout.
const (
	ParamTier   = "tier"
	ParamWidth  = "width"
	ParamFormat = "format"
)

// ErrInvalidState is returned for malformed table state parameters.
var ErrInvalidState = errors.New("invalid table state")

// State is the presentation state carried by a request's query string.
type State struct {
	Sort   table.SortState
	Expand []string
	Page   int
	Click  string
}

// ParseState reads sort, expansion, page and click parameters from q.
func ParseState(q url.Values) (State, error) {
	var s State
	if col := q.Get(ParamSort); col != "" {
		dir, err := table.ParseSortDirection(q.Get(ParamDir))
		if err != nil {
			return State{}, fmt.Errorf("%w: %w", ErrInvalidState, err)
		}
		if dir == table.SortNone {
			dir = table.SortAscending
		}
		s.Sort = table.SortState{Column: col, Direction: dir}
	}
	if p := q.Get(ParamPage); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return State{}, fmt.Errorf("%w: page %q", ErrInvalidState, p)
		}
		s.Page = n
	}
	s.Expand = SplitKeys(q.Get(ParamExpand))
	s.Click = q.Get(ParamClick)
	return s, nil
}

// ResolveTier picks the tier from an explicit tier parameter, then a
// viewport width in pixels, then fallback.
func ResolveTier(q url.Values, fallback table.Tier) (table.Tier, error) {
	if name := q.Get(ParamTier); name != "" {
		return table.ParseTier(name)
	}
	if w := q.Get(ParamWidth); w != "" {
		px, err := strconv.Atoi(w)
		if err != nil || px < 0 {
			return fallback, fmt.Errorf("%w: width %q", ErrInvalidState, w)
		}
		return table.TierForWidth(px), nil
	}
	return fallback, nil
}

// Apply restores s on t. Unknown or non-expandable row keys are skipped; an
// unknown or unsortable sort column is an error. Click is not applied.
func Apply[T any](t *table.Table[T], s State) error {
	if err := t.SetSort(s.Sort); err != nil {
		return err
	}
	var seen []string
	for _, key := range s.Expand {
		if slices.Contains(seen, key) {
			continue
		}
		seen = append(seen, key)
		if t.Expanded(key) {
			continue
		}
		if _, err := t.ToggleRow(key); err != nil {
			if errors.Is(err, table.ErrUnknownRow) || errors.Is(err, table.ErrNoExpansion) {
				continue
			}
			return err
		}
	}
	t.SetPage(s.Page)
	return nil
}
