package table

// Option configures a Table at construction.
type Option[T any] func(*Table[T])

// WithSummary appends a totals row for summarizable columns.
func WithSummary[T any]() Option[T] {
	return func(t *Table[T]) { t.summary = true }
}

// WithExpansion enables per-row detail panels. fn is called at most once per
// row identity until the data is replaced.
func WithExpansion[T any](fn func(T) Renderable) Option[T] {
	return func(t *Table[T]) { t.expand = fn }
}

// WithRowClick sets the handler invoked by ClickRow.
func WithRowClick[T any](fn func(T)) Option[T] {
	return func(t *Table[T]) { t.onRowClick = fn }
}

// WithSortChange sets a hook invoked after every header click.
func WithSortChange[T any](fn func(SortState)) Option[T] {
	return func(t *Table[T]) { t.onSort = fn }
}

// WithRowKey sets the row identity used for expansion and clicks. Without
// it rows are identified by their input position.
func WithRowKey[T any](fn func(T) string) Option[T] {
	return func(t *Table[T]) { t.rowKey = fn }
}

// WithLoadingRows sets how many skeleton rows to render before data arrives.
func WithLoadingRows[T any](n int) Option[T] {
	return func(t *Table[T]) { t.loading = max(n, 0) }
}

// WithFilter restricts the rows shown and summed.
func WithFilter[T any](fn func(T) bool) Option[T] {
	return func(t *Table[T]) { t.filter = fn }
}

// WithPageSize paginates the body. Summaries still cover every filtered row.
func WithPageSize[T any](n int) Option[T] {
	return func(t *Table[T]) { t.pageSize = max(n, 0) }
}

// WithEmptyMessage overrides the empty-state text.
func WithEmptyMessage[T any](msg string) Option[T] {
	return func(t *Table[T]) { t.emptyMessage = msg }
}
