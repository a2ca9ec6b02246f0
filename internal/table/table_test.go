package table

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	name   string
	wins   int
	losses int
}

func sampleRecords() []record {
	return []record{
		{name: "A", wins: 3, losses: 1},
		{name: "B", wins: 5, losses: 0},
		{name: "C", wins: 3, losses: 2},
	}
}

func recordColumns() []Attribute[record] {
	return []Attribute[record]{
		{
			Header:   "Name",
			Value:    String(func(r record) string { return r.name }),
			Sortable: true,
		},
		{
			Header:       "Wins",
			Value:        Int(func(r record) int { return r.wins }),
			Sortable:     true,
			Summarizable: true,
		},
		{
			Header:       "Losses",
			Value:        Int(func(r record) int { return r.losses }),
			Sortable:     true,
			Summarizable: true,
			Priority:     TierMD,
		},
	}
}

func names(rows []record) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.name
	}
	return out
}

func newRecordTable(t *testing.T, opts ...Option[record]) *Table[record] {
	t.Helper()
	tbl, err := New(recordColumns(), opts...)
	require.NoError(t, err)
	return tbl
}

func TestExampleScenario(t *testing.T) {
	tbl := newRecordTable(t, WithSummary[record]())
	tbl.SetData(sampleRecords())

	state, err := tbl.ClickHeader("wins")
	require.NoError(t, err)
	assert.Equal(t, SortState{Column: "wins", Direction: SortAscending}, state)
	assert.Equal(t, []string{"A", "C", "B"}, names(tbl.Rows()))
	assert.Equal(t, 11.0, tbl.Summary()["wins"])

	v := tbl.View(TierLG)
	require.NotNil(t, v.Summary)
	assert.Equal(t, "Total", v.Summary.Cells[0].Text)
	assert.Equal(t, "11", v.Summary.Cells[1].Text)
	assert.Equal(t, "3", v.Summary.Cells[2].Text)
}

func TestSortCycle(t *testing.T) {
	tbl := newRecordTable(t)
	tbl.SetData(sampleRecords())

	_, err := tbl.ClickHeader("wins")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, names(tbl.Rows()))

	state, err := tbl.ClickHeader("wins")
	require.NoError(t, err)
	assert.Equal(t, SortDescending, state.Direction)
	assert.Equal(t, []string{"B", "A", "C"}, names(tbl.Rows()))

	state, err = tbl.ClickHeader("wins")
	require.NoError(t, err)
	assert.False(t, state.IsSorted())
	assert.Equal(t, []string{"A", "B", "C"}, names(tbl.Rows()))
}

func TestSortSwitchingColumnStartsAscending(t *testing.T) {
	var seen []SortState
	tbl := newRecordTable(t, WithSortChange[record](func(s SortState) { seen = append(seen, s) }))
	tbl.SetData(sampleRecords())

	_, err := tbl.ClickHeader("wins")
	require.NoError(t, err)
	_, err = tbl.ClickHeader("wins")
	require.NoError(t, err)
	state, err := tbl.ClickHeader("losses")
	require.NoError(t, err)

	assert.Equal(t, SortState{Column: "losses", Direction: SortAscending}, state)
	assert.Equal(t, []string{"B", "A", "C"}, names(tbl.Rows()))
	assert.Len(t, seen, 3)
}

func TestSortStability(t *testing.T) {
	rows := []record{
		{name: "p", wins: 2}, {name: "q", wins: 1}, {name: "r", wins: 2},
		{name: "s", wins: 1}, {name: "t", wins: 2}, {name: "u", wins: 1},
	}
	tbl := newRecordTable(t)
	tbl.SetData(rows)

	_, err := tbl.ClickHeader("wins")
	require.NoError(t, err)
	assert.Equal(t, []string{"q", "s", "u", "p", "r", "t"}, names(tbl.Rows()))

	_, err = tbl.ClickHeader("wins")
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "r", "t", "q", "s", "u"}, names(tbl.Rows()))
}

func TestSortErrors(t *testing.T) {
	cols := recordColumns()
	cols[0].Sortable = false
	tbl, err := New(cols)
	require.NoError(t, err)
	tbl.SetData(sampleRecords())

	_, err = tbl.ClickHeader("nope")
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = tbl.ClickHeader("name")
	assert.ErrorIs(t, err, ErrNotSortable)

	err = tbl.SetSort(SortState{Column: "name", Direction: SortAscending})
	assert.ErrorIs(t, err, ErrNotSortable)
}

func TestSummaryTracksRows(t *testing.T) {
	rows := sampleRecords()
	tbl := newRecordTable(t, WithSummary[record]())
	tbl.SetData(rows)
	assert.Equal(t, map[string]float64{"wins": 11, "losses": 3}, tbl.Summary())

	grown := append(append([]record(nil), rows...), record{name: "D", wins: 4, losses: 7})
	tbl.SetData(grown)
	assert.Equal(t, map[string]float64{"wins": 15, "losses": 10}, tbl.Summary())
}

func TestSummaryFollowsFilterNotPage(t *testing.T) {
	tbl := newRecordTable(t, WithSummary[record](), WithPageSize[record](1))
	tbl.SetData(sampleRecords())
	tbl.SetFilter(func(r record) bool { return r.name != "B" })

	v := tbl.View(TierLG)
	assert.Len(t, v.Rows, 1)
	assert.Equal(t, PageInfo{Page: 0, PageSize: 1, Pages: 2, Total: 2}, v.Page)
	require.NotNil(t, v.Summary)
	assert.Equal(t, "6", v.Summary.Cells[1].Text)

	tbl.SetPage(7)
	v = tbl.View(TierLG)
	assert.Equal(t, 1, v.Page.Page)
	assert.Equal(t, "C", v.Rows[0].Cells[0].Text)
}

func TestResponsiveMonotonicity(t *testing.T) {
	cols := []Attribute[record]{
		{Header: "Core", Value: String(func(r record) string { return r.name })},
		{Header: "Small", Value: Int(func(r record) int { return r.wins }), Priority: TierSM},
		{Header: "Medium", Value: Int(func(r record) int { return r.wins }), Priority: TierMD},
		{Header: "Large", Value: Int(func(r record) int { return r.losses }), Priority: TierLG},
	}
	tbl, err := New(cols)
	require.NoError(t, err)
	tbl.SetData(sampleRecords())

	visible := func(tier Tier) map[string]bool {
		out := map[string]bool{}
		for _, c := range tbl.View(tier).Columns {
			out[c.Key] = true
		}
		return out
	}

	tiers := Tiers()
	for i := 1; i < len(tiers); i++ {
		narrow, wide := visible(tiers[i-1]), visible(tiers[i])
		for key := range narrow {
			assert.True(t, wide[key], "%s visible at %s but hidden at %s", key, tiers[i-1], tiers[i])
		}
	}
	assert.Len(t, visible(TierCore), 1)
	assert.Len(t, visible(TierSM), 2)
	assert.Len(t, visible(TierMD), 3)
	assert.Len(t, visible(TierLG), 4)

	v := tbl.View(TierSM)
	for _, row := range v.Rows {
		assert.Len(t, row.Cells, len(v.Columns))
	}
}

func TestDisplayDoesNotAffectSortOrSummary(t *testing.T) {
	plain := recordColumns()
	decorated := recordColumns()
	decorated[1].Value = decorated[1].Value.WithDisplay(func(r record) string {
		return strings.Repeat("*", 10-r.wins)
	})

	rows := sampleRecords()
	a, err := New(plain, WithSummary[record]())
	require.NoError(t, err)
	b, err := New(decorated, WithSummary[record]())
	require.NoError(t, err)
	a.SetData(rows)
	b.SetData(rows)

	for range 2 {
		_, err = a.ClickHeader("wins")
		require.NoError(t, err)
		_, err = b.ClickHeader("wins")
		require.NoError(t, err)
		assert.Equal(t, names(a.Rows()), names(b.Rows()))
		assert.Equal(t, a.Summary(), b.Summary())
	}
	assert.Equal(t, "*****", b.View(TierCore).Rows[0].Cells[1].Text)
}

func TestExpansionMemoized(t *testing.T) {
	calls := map[string]int{}
	tbl := newRecordTable(t,
		WithRowKey(func(r record) string { return r.name }),
		WithExpansion(func(r record) Renderable {
			calls[r.name]++
			return Placeholder("details for " + r.name)
		}),
	)
	rows := sampleRecords()
	tbl.SetData(rows)

	open, err := tbl.ToggleRow("A")
	require.NoError(t, err)
	assert.True(t, open)
	open, err = tbl.ToggleRow("A")
	require.NoError(t, err)
	assert.False(t, open)
	open, err = tbl.ToggleRow("A")
	require.NoError(t, err)
	assert.True(t, open)
	assert.Equal(t, 1, calls["A"])

	v := tbl.View(TierCore)
	require.NotNil(t, v.Rows[0].Detail)
	assert.True(t, v.Rows[0].Expanded)
	assert.Equal(t, "details for A", v.Rows[0].Detail.Note)
	assert.Nil(t, v.Rows[1].Detail)

	// Same sequence: state survives.
	tbl.SetData(rows)
	assert.True(t, tbl.Expanded("A"))

	// New sequence: arena reset, renderer runs again.
	tbl.SetData(sampleRecords())
	assert.False(t, tbl.Expanded("A"))
	_, err = tbl.ToggleRow("A")
	require.NoError(t, err)
	assert.Equal(t, 2, calls["A"])
}

func TestDuplicateRowKeysStayIndependent(t *testing.T) {
	calls := map[string]int{}
	tbl := newRecordTable(t,
		WithRowKey(func(record) string { return "same" }),
		WithExpansion(func(r record) Renderable {
			calls[r.name]++
			return Placeholder("details for " + r.name)
		}),
	)
	tbl.SetData(sampleRecords())

	v := tbl.View(TierLG)
	require.Len(t, v.Rows, 3)
	assert.Equal(t, []string{"same", "same#1", "same#2"},
		[]string{v.Rows[0].Key, v.Rows[1].Key, v.Rows[2].Key})

	open, err := tbl.ToggleRow("same#1")
	require.NoError(t, err)
	assert.True(t, open)

	v = tbl.View(TierLG)
	assert.False(t, v.Rows[0].Expanded)
	assert.True(t, v.Rows[1].Expanded)
	assert.False(t, v.Rows[2].Expanded)
	require.NotNil(t, v.Rows[1].Detail)
	assert.Equal(t, "details for B", v.Rows[1].Detail.Note)
	assert.Equal(t, map[string]int{"B": 1}, calls)
}

func TestExpansionErrors(t *testing.T) {
	tbl := newRecordTable(t)
	tbl.SetData(sampleRecords())
	_, err := tbl.ToggleRow("0")
	assert.ErrorIs(t, err, ErrNoExpansion)

	tbl = newRecordTable(t, WithExpansion(func(r record) Renderable { return nil }))
	tbl.SetData(sampleRecords())
	_, err = tbl.ToggleRow("99")
	assert.ErrorIs(t, err, ErrUnknownRow)

	open, err := tbl.ToggleRow("2")
	require.NoError(t, err)
	assert.True(t, open)
}

func TestExpansionPanicBecomesPlaceholder(t *testing.T) {
	tbl := newRecordTable(t, WithExpansion(func(r record) Renderable { panic("boom") }))
	tbl.SetData(sampleRecords())
	_, err := tbl.ToggleRow("1")
	require.NoError(t, err)

	v := tbl.View(TierCore)
	require.NotNil(t, v.Rows[1].Detail)
	assert.True(t, v.Rows[1].Detail.MessageOnly())
}

func TestNestedTableExpansion(t *testing.T) {
	tbl := newRecordTable(t, WithExpansion(func(r record) Renderable {
		inner := MustNew([]Attribute[int]{{Header: "Round", Value: Int(func(n int) int { return n })}})
		inner.SetData([]int{r.wins, r.losses})
		return inner
	}))
	tbl.SetData(sampleRecords())
	_, err := tbl.ToggleRow("1")
	require.NoError(t, err)

	detail := tbl.View(TierCore).Rows[1].Detail
	require.NotNil(t, detail)
	require.Len(t, detail.Rows, 2)
	assert.Equal(t, "5", detail.Rows[0].Cells[0].Text)
}

func TestSortResetsOnNewData(t *testing.T) {
	tbl := newRecordTable(t)
	tbl.SetData(sampleRecords())
	_, err := tbl.ClickHeader("wins")
	require.NoError(t, err)

	tbl.SetData(sampleRecords())
	assert.False(t, tbl.Sort().IsSorted())
}

func TestRowClick(t *testing.T) {
	var clicked []string
	tbl := newRecordTable(t, WithRowClick(func(r record) { clicked = append(clicked, r.name) }))
	tbl.SetData(sampleRecords())

	require.NoError(t, tbl.ClickRow("1"))
	assert.Equal(t, []string{"B"}, clicked)
	assert.ErrorIs(t, tbl.ClickRow("5"), ErrUnknownRow)
	assert.True(t, tbl.View(TierCore).Rows[0].Clickable)

	plain := newRecordTable(t)
	plain.SetData(sampleRecords())
	assert.ErrorIs(t, plain.ClickRow("1"), ErrNoRowClick)
}

func TestEmptyData(t *testing.T) {
	tbl := newRecordTable(t, WithSummary[record](), WithEmptyMessage[record]("Nothing yet"))
	tbl.SetData(nil)

	v := tbl.View(TierLG)
	assert.Len(t, v.Columns, 3)
	assert.Empty(t, v.Rows)
	assert.True(t, v.Empty)
	assert.Equal(t, "Nothing yet", v.Note)
	assert.Nil(t, v.Summary)
}

func TestLoadingRows(t *testing.T) {
	tbl := newRecordTable(t, WithLoadingRows[record](5))
	v := tbl.View(TierCore)
	assert.Equal(t, 5, v.Loading)
	assert.False(t, v.Empty)

	tbl.SetData(sampleRecords())
	v = tbl.View(TierCore)
	assert.Zero(t, v.Loading)
	assert.Len(t, v.Rows, 3)

	tbl.SetLoading(2)
	assert.False(t, tbl.Loaded())
	assert.Equal(t, 2, tbl.View(TierCore).Loading)
}

type flaky struct {
	name  string
	score any
}

func TestMalformedLiterals(t *testing.T) {
	cols := []Attribute[flaky]{
		{Header: "Name", Value: String(func(f flaky) string { return f.name })},
		{
			Header: "Score",
			Value: Any(func(f flaky) any {
				if f.name == "panic" {
					panic("bad row")
				}
				return f.score
			}),
			Sortable:     true,
			Summarizable: true,
		},
	}
	tbl, err := New(cols, WithSummary[flaky]())
	require.NoError(t, err)

	rows := []flaky{
		{name: "two", score: 2},
		{name: "nan", score: math.NaN()},
		{name: "panic"},
		{name: "nil", score: nil},
		{name: "inf", score: math.Inf(1)},
		{name: "one", score: 1.0},
	}
	tbl.SetData(rows)

	order := func() []string {
		var out []string
		for _, r := range tbl.Rows() {
			out = append(out, r.name)
		}
		return out
	}

	_, err = tbl.ClickHeader("score")
	require.NoError(t, err)
	assert.Equal(t, []string{"nan", "panic", "nil", "inf", "one", "two"}, order())

	_, err = tbl.ClickHeader("score")
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "one", "nan", "panic", "nil", "inf"}, order())

	assert.Equal(t, 3.0, tbl.Summary()["score"])

	v := tbl.View(TierCore)
	assert.Equal(t, "--", v.Rows[2].Cells[1].Text)
	assert.True(t, v.Rows[2].Cells[1].Malformed)
}

func TestPercentageFormatting(t *testing.T) {
	cols := []Attribute[record]{
		{
			Header: "Win %",
			Key:    "pct",
			Value: Number(func(r record) float64 {
				return float64(r.wins) / float64(r.wins+r.losses)
			}).AsPercentage(),
			Sortable: true,
		},
	}
	tbl, err := New(cols)
	require.NoError(t, err)
	tbl.SetData([]record{{wins: 5, losses: 3}, {wins: 1, losses: 2}})

	v := tbl.View(TierCore)
	assert.Equal(t, "62.5%", v.Rows[0].Cells[0].Text)
	assert.Equal(t, 0.625, v.Rows[0].Cells[0].Raw)

	_, err = tbl.ClickHeader("pct")
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Rows()[0].wins)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		attrs []Attribute[record]
	}{
		{
			name:  "no columns",
			attrs: nil,
		},
		{
			name:  "missing literal",
			attrs: []Attribute[record]{{Header: "Name"}},
		},
		{
			name:  "missing key",
			attrs: []Attribute[record]{{Value: Int(func(r record) int { return r.wins })}},
		},
		{
			name: "duplicate key",
			attrs: []Attribute[record]{
				{Header: "Wins", Value: Int(func(r record) int { return r.wins })},
				{Header: "wins", Value: Int(func(r record) int { return r.losses })},
			},
		},
		{
			name: "string summary",
			attrs: []Attribute[record]{
				{Header: "Name", Value: String(func(r record) string { return r.name }), Summarizable: true},
			},
		},
		{
			name: "dynamic string summary",
			attrs: []Attribute[record]{
				{Header: "Name", Value: Any(func(r record) any { return r.name }), Summarizable: true},
			},
		},
		{
			name: "bad tier",
			attrs: []Attribute[record]{
				{Header: "Wins", Value: Int(func(r record) int { return r.wins }), Priority: Tier(9)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.attrs)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestConfigErrorDetails(t *testing.T) {
	_, err := New([]Attribute[record]{
		{Header: "Name", Value: String(func(r record) string { return r.name }), Summarizable: true},
	})
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "Name", cfgErr.Column)
	assert.Contains(t, cfgErr.Error(), "string")
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() { MustNew[record](nil) })
}

func TestColumnKeys(t *testing.T) {
	assert.Equal(t, "p-rk", Attribute[record]{Header: "P.RK"}.ColumnKey())
	assert.Equal(t, "opwpm", Attribute[record]{Header: "OpWpM"}.ColumnKey())
	assert.Equal(t, "custom", Attribute[record]{Key: "custom", Header: "P.RK"}.ColumnKey())
}
