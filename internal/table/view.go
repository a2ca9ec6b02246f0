package table

// Renderable is anything that can be laid out inside an expansion panel.
// *Table implements it, so detail views can nest further tables.
type Renderable interface {
	View(tier Tier) View
}

// Placeholder is a message-only Renderable, used while detail data loads or
// when a detail view could not be built.
type Placeholder string

// View implements Renderable.
func (p Placeholder) View(tier Tier) View {
	return View{Tier: tier, Note: string(p)}
}

// View is the layout-independent result of rendering a table at one tier.
// Formatters in the render package turn it into bytes.
type View struct {
	Columns []HeaderCell `json:"columns"`
	Rows    []RowView    `json:"rows"`
	Summary *SummaryRow  `json:"summary,omitempty"`
	// Empty is set when there are no rows to show after filtering.
	Empty bool `json:"empty,omitempty"`
	// Loading is the number of skeleton rows to draw while data is absent.
	Loading int       `json:"loading,omitempty"`
	Sort    SortState `json:"sort"`
	Tier    Tier      `json:"tier"`
	Note    string    `json:"note,omitempty"`
	Page    PageInfo  `json:"page"`
}

// MessageOnly reports whether the view is a bare message without a grid.
func (v View) MessageOnly() bool {
	return len(v.Columns) == 0
}

// HeaderCell describes one visible column.
type HeaderCell struct {
	Key         string        `json:"key"`
	Header      string        `json:"header"`
	Description string        `json:"description,omitempty"`
	Sortable    bool          `json:"sortable,omitempty"`
	Direction   SortDirection `json:"direction,omitempty"`
}

// RowView is one body row with its optional expansion panel.
type RowView struct {
	Key string `json:"key"`
	// Index is the row's position in the caller's input sequence.
	Index      int    `json:"index"`
	Cells      []Cell `json:"cells"`
	Clickable  bool   `json:"clickable,omitempty"`
	Expandable bool   `json:"expandable,omitempty"`
	Expanded   bool   `json:"expanded,omitempty"`
	Detail     *View  `json:"detail,omitempty"`
}

// Cell is one rendered value.
type Cell struct {
	Key       string `json:"key"`
	Text      string `json:"text"`
	Raw       any    `json:"raw,omitempty"`
	Malformed bool   `json:"malformed,omitempty"`
}

// SummaryRow holds column totals aligned with View.Columns.
type SummaryRow struct {
	Cells []Cell `json:"cells"`
}

// PageInfo describes the visible page. PageSize 0 means unpaginated.
type PageInfo struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size,omitempty"`
	Pages    int `json:"pages"`
	Total    int `json:"total"`
}
