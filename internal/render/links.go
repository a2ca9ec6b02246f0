package render

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/debatestats/gateway/internal/table"
)

// Query parameters carrying table state between requests.
const (
	ParamSort   = "sort"
	ParamDir    = "dir"
	ParamExpand = "expand"
	ParamClick  = "click"
	ParamPage   = "page"
)

// Links builds hrefs for interactive HTML output.
type Links interface {
	Sort(column string, next table.SortState) string
	Toggle(rowKey string) string
	Click(rowKey string) string
	Page(n int) string
}

// QueryLinks encodes table state in the query string of a base URL,
// preserving unrelated parameters.
type QueryLinks struct {
	Path  string
	Query url.Values
}

// NewQueryLinks builds links relative to u.
func NewQueryLinks(u *url.URL) *QueryLinks {
	return &QueryLinks{Path: u.Path, Query: u.Query()}
}

func (l *QueryLinks) with(fn func(q url.Values)) string {
	q := url.Values{}
	for k, v := range l.Query {
		q[k] = slices.Clone(v)
	}
	q.Del(ParamClick)
	fn(q)
	if len(q) == 0 {
		return l.Path
	}
	return l.Path + "?" + q.Encode()
}

// Sort links to the state after clicking a column header.
func (l *QueryLinks) Sort(column string, next table.SortState) string {
	return l.with(func(q url.Values) {
		q.Del(ParamPage)
		if !next.IsSorted() {
			q.Del(ParamSort)
			q.Del(ParamDir)
			return
		}
		q.Set(ParamSort, column)
		q.Set(ParamDir, next.Direction.String())
	})
}

// Toggle links to the state with rowKey expanded or collapsed.
func (l *QueryLinks) Toggle(rowKey string) string {
	return l.with(func(q url.Values) {
		keys := SplitKeys(q.Get(ParamExpand))
		if i := slices.Index(keys, rowKey); i >= 0 {
			keys = slices.Delete(keys, i, i+1)
		} else {
			keys = append(keys, rowKey)
		}
		if len(keys) == 0 {
			q.Del(ParamExpand)
			return
		}
		q.Set(ParamExpand, strings.Join(keys, ","))
	})
}

// Click links to the row click action.
func (l *QueryLinks) Click(rowKey string) string {
	return l.with(func(q url.Values) {
		q.Set(ParamClick, rowKey)
	})
}

// Page links to page n.
func (l *QueryLinks) Page(n int) string {
	return l.with(func(q url.Values) {
		if n <= 0 {
			q.Del(ParamPage)
			return
		}
		q.Set(ParamPage, strconv.Itoa(n))
	})
}

// SplitKeys parses a comma separated list of row keys.
func SplitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
