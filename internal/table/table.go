// Package table implements a declarative, generic data table: column
// descriptors declare how a row is read, and the table resolves responsive
// visibility, single-column stable sorting, column totals, and memoized
// per-row expansion panels.
//
// A Table owns only presentation state (sort, expansion, page). It never
// mutates the rows it is given, and it is not safe for concurrent use: build
// one per request or per interactive session.
package table

import (
	"fmt"
	"slices"
	"strconv"
)

const defaultEmptyMessage = "No results"

// Table renders rows of type T through a list of attributes.
type Table[T any] struct {
	attrs []Attribute[T]
	keys  []string
	index map[string]int

	summary      bool
	expand       func(T) Renderable
	onRowClick   func(T)
	onSort       func(SortState)
	rowKey       func(T) string
	filter       func(T) bool
	loading      int
	pageSize     int
	emptyMessage string

	rows    []T
	loaded  bool
	rowKeys []string
	byKey   map[string]int

	sort   SortState
	page   int
	panels map[string]*panel
	order  []int // filtered and sorted input positions; nil when stale
}

type panel struct {
	open    bool
	content Renderable
}

// New validates attrs and returns an empty table. Misconfigured columns are
// reported as *ConfigError.
func New[T any](attrs []Attribute[T], opts ...Option[T]) (*Table[T], error) {
	if len(attrs) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrConfig)
	}

	t := &Table[T]{
		attrs:        slices.Clone(attrs),
		keys:         make([]string, len(attrs)),
		index:        make(map[string]int, len(attrs)),
		emptyMessage: defaultEmptyMessage,
		panels:       make(map[string]*panel),
	}
	for i, a := range t.attrs {
		if err := a.validate(); err != nil {
			return nil, err
		}
		key := a.ColumnKey()
		if _, dup := t.index[key]; dup {
			return nil, &ConfigError{Column: key, Reason: "duplicate column key"}
		}
		t.keys[i] = key
		t.index[key] = i
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// MustNew is like New but panics on misconfiguration.
func MustNew[T any](attrs []Attribute[T], opts ...Option[T]) *Table[T] {
	t, err := New(attrs, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// SetData replaces the row sequence. Passing the same sequence again keeps
// sort, expansion and page state; a different sequence resets all of it.
// A row whose key repeats an earlier one is keyed "<key>#<position>".
func (t *Table[T]) SetData(rows []T) {
	if t.loaded && sameSequence(t.rows, rows) {
		return
	}
	t.rows = rows
	t.loaded = true
	t.reset()

	t.rowKeys = make([]string, len(rows))
	t.byKey = make(map[string]int, len(rows))
	for i, row := range rows {
		base := t.identify(i, row)
		key := base
		for n := i; ; n++ {
			if _, dup := t.byKey[key]; !dup {
				break
			}
			key = base + "#" + strconv.Itoa(n)
		}
		t.rowKeys[i] = key
		t.byKey[key] = i
	}
}

// SetLoading discards the current data and renders n skeleton rows until
// SetData is called.
func (t *Table[T]) SetLoading(n int) {
	t.rows = nil
	t.loaded = false
	t.loading = max(n, 0)
	t.rowKeys = nil
	t.byKey = nil
	t.reset()
}

// SetFilter replaces the row filter. Expanded panels are kept.
func (t *Table[T]) SetFilter(fn func(T) bool) {
	t.filter = fn
	t.order = nil
	t.page = 0
}

// Loaded reports whether data has been supplied.
func (t *Table[T]) Loaded() bool {
	return t.loaded
}

// Sort returns the active sort state.
func (t *Table[T]) Sort() SortState {
	return t.sort
}

// ClickHeader cycles the sort state of column key: none -> asc -> desc ->
// none. Clicking a different column starts it at ascending.
func (t *Table[T]) ClickHeader(key string) (SortState, error) {
	if err := t.checkSortable(key); err != nil {
		return t.sort, err
	}

	next := SortState{Column: key, Direction: SortAscending}
	if t.sort.Column == key {
		next = t.sort.Next()
	}
	t.applySort(next)
	if t.onSort != nil {
		t.onSort(next)
	}
	return next, nil
}

// SetSort applies a sort state directly, e.g. one carried in a URL.
func (t *Table[T]) SetSort(s SortState) error {
	if !s.IsSorted() {
		t.applySort(SortState{})
		return nil
	}
	if err := t.checkSortable(s.Column); err != nil {
		return err
	}
	t.applySort(s)
	return nil
}

func (t *Table[T]) checkSortable(key string) error {
	i, ok := t.index[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	if !t.attrs[i].Sortable {
		return fmt.Errorf("%w: %q", ErrNotSortable, key)
	}
	return nil
}

func (t *Table[T]) applySort(s SortState) {
	t.sort = s
	t.order = nil
	t.page = 0
}

// ToggleRow expands or collapses the row with the given key and reports
// whether it is now expanded. The expansion renderer runs only the first
// time a row is expanded.
func (t *Table[T]) ToggleRow(key string) (bool, error) {
	if t.expand == nil {
		return false, ErrNoExpansion
	}
	i, ok := t.byKey[key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRow, key)
	}

	p := t.panels[key]
	if p == nil {
		p = &panel{}
		t.panels[key] = p
	}
	if p.open {
		p.open = false
		return false, nil
	}
	if p.content == nil {
		p.content = t.renderDetail(t.rows[i])
	}
	p.open = true
	return true, nil
}

// Expanded reports whether the row with the given key is expanded.
func (t *Table[T]) Expanded(key string) bool {
	p := t.panels[key]
	return p != nil && p.open
}

func (t *Table[T]) renderDetail(row T) (r Renderable) {
	defer func() {
		if recover() != nil {
			r = Placeholder("Details unavailable")
		}
	}()
	if r = t.expand(row); r == nil {
		r = Placeholder("")
	}
	return r
}

// ClickRow invokes the row click handler for the row with the given key.
func (t *Table[T]) ClickRow(key string) error {
	if t.onRowClick == nil {
		return ErrNoRowClick
	}
	i, ok := t.byKey[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRow, key)
	}
	t.onRowClick(t.rows[i])
	return nil
}

// SetPage selects a zero-based page. Out of range pages are clamped at
// render time.
func (t *Table[T]) SetPage(n int) {
	t.page = max(n, 0)
}

// Rows returns the filtered rows in display order, before pagination.
func (t *Table[T]) Rows() []T {
	order := t.ordered()
	out := make([]T, len(order))
	for i, idx := range order {
		out[i] = t.rows[idx]
	}
	return out
}

// Summary returns the totals of summarizable columns over the filtered rows.
func (t *Table[T]) Summary() map[string]float64 {
	order := t.ordered()
	totals := make(map[string]float64)
	for i, a := range t.attrs {
		if !a.Summarizable {
			continue
		}
		var sum float64
		for _, idx := range order {
			sum += resolve(a.Value, t.rows[idx]).summand()
		}
		totals[t.keys[i]] = sum
	}
	return totals
}

// View renders the table for the given tier.
func (t *Table[T]) View(tier Tier) View {
	v := View{Tier: tier, Sort: t.sort}

	var cols []int
	for i, a := range t.attrs {
		if !tier.Shows(a.Priority) {
			continue
		}
		cols = append(cols, i)
		v.Columns = append(v.Columns, HeaderCell{
			Key:         t.keys[i],
			Header:      a.Header,
			Description: a.Description,
			Sortable:    a.Sortable,
			Direction:   t.sort.DirectionOf(t.keys[i]),
		})
	}

	if !t.loaded {
		if t.loading > 0 {
			v.Loading = t.loading
		} else {
			v.Empty = true
			v.Note = t.emptyMessage
		}
		return v
	}

	order := t.ordered()
	v.Page = t.pageInfo(len(order))
	if len(order) == 0 {
		v.Empty = true
		v.Note = t.emptyMessage
		return v
	}

	visible := order
	if t.pageSize > 0 {
		start := v.Page.Page * t.pageSize
		visible = order[start:min(start+t.pageSize, len(order))]
	}

	v.Rows = make([]RowView, 0, len(visible))
	for _, idx := range visible {
		row := t.rows[idx]
		key := t.rowKeys[idx]
		rv := RowView{
			Key:        key,
			Index:      idx,
			Cells:      make([]Cell, 0, len(cols)),
			Clickable:  t.onRowClick != nil,
			Expandable: t.expand != nil,
		}
		for _, c := range cols {
			a := t.attrs[c]
			s := resolve(a.Value, row)
			rv.Cells = append(rv.Cells, Cell{
				Key:       t.keys[c],
				Text:      a.text(row, s),
				Raw:       s.raw,
				Malformed: !s.ok,
			})
		}
		if p := t.panels[key]; p != nil && p.open {
			detail := p.content.View(tier)
			rv.Expanded = true
			rv.Detail = &detail
		}
		v.Rows = append(v.Rows, rv)
	}

	if t.summary {
		v.Summary = t.summaryRow(cols)
	}
	return v
}

func (t *Table[T]) summaryRow(cols []int) *SummaryRow {
	totals := t.Summary()
	row := &SummaryRow{Cells: make([]Cell, 0, len(cols))}
	for n, c := range cols {
		a := t.attrs[c]
		cell := Cell{Key: t.keys[c]}
		switch {
		case a.Summarizable:
			sum := totals[t.keys[c]]
			cell.Raw = sum
			cell.Text = scalar{ok: true, kind: KindNumber, num: sum}.format(a.Value.Percentage)
		case n == 0:
			cell.Text = "Total"
		}
		row.Cells = append(row.Cells, cell)
	}
	return row
}

func (t *Table[T]) pageInfo(total int) PageInfo {
	if t.pageSize <= 0 {
		return PageInfo{Pages: 1, Total: total}
	}
	pages := max((total+t.pageSize-1)/t.pageSize, 1)
	return PageInfo{
		Page:     min(t.page, pages-1),
		PageSize: t.pageSize,
		Pages:    pages,
		Total:    total,
	}
}

// ordered returns input positions after filtering and a stable sort.
func (t *Table[T]) ordered() []int {
	if t.order != nil {
		return t.order
	}

	order := make([]int, 0, len(t.rows))
	for i, row := range t.rows {
		if t.keep(row) {
			order = append(order, i)
		}
	}

	if t.sort.IsSorted() {
		a := t.attrs[t.index[t.sort.Column]]
		keys := make([]scalar, len(t.rows))
		for _, idx := range order {
			keys[idx] = resolve(a.Value, t.rows[idx])
		}
		desc := t.sort.Direction == SortDescending
		slices.SortStableFunc(order, func(x, y int) int {
			c := compare(keys[x], keys[y])
			if desc {
				return -c
			}
			return c
		})
	}

	t.order = order
	return order
}

func (t *Table[T]) keep(row T) (ok bool) {
	if t.filter == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return t.filter(row)
}

func (t *Table[T]) identify(i int, row T) (key string) {
	fallback := strconv.Itoa(i)
	if t.rowKey == nil {
		return fallback
	}
	defer func() {
		if recover() != nil {
			key = fallback
		}
	}()
	if key = t.rowKey(row); key == "" {
		key = fallback
	}
	return key
}

// reset clears presentation state tied to the current data.
func (t *Table[T]) reset() {
	t.sort = SortState{}
	t.page = 0
	t.order = nil
	clear(t.panels)
}

func sameSequence[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
