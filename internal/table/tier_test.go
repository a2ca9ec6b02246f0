package table

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierForWidth(t *testing.T) {
	tests := []struct {
		px   int
		want Tier
	}{
		{0, TierCore},
		{639, TierCore},
		{640, TierSM},
		{767, TierSM},
		{768, TierMD},
		{1023, TierMD},
		{1024, TierLG},
		{2560, TierLG},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForWidth(tt.px), "width %d", tt.px)
	}
}

func TestTierForWidthMonotonic(t *testing.T) {
	prev := TierCore
	for px := 0; px <= 2000; px += 7 {
		tier := TierForWidth(px)
		assert.GreaterOrEqual(t, int(tier), int(prev))
		prev = tier
	}
}

func TestTierForColumns(t *testing.T) {
	assert.Equal(t, TierCore, TierForColumns(40))
	assert.Equal(t, TierSM, TierForColumns(80))
	assert.Equal(t, TierMD, TierForColumns(100))
	assert.Equal(t, TierLG, TierForColumns(200))
}

func TestTierShows(t *testing.T) {
	for _, tier := range Tiers() {
		assert.True(t, tier.Shows(TierCore))
	}
	assert.False(t, TierSM.Shows(TierMD))
	assert.True(t, TierMD.Shows(TierSM))
	assert.True(t, TierLG.Shows(TierLG))
}

func TestParseTier(t *testing.T) {
	for _, tier := range Tiers() {
		parsed, err := ParseTier(tier.String())
		require.NoError(t, err)
		assert.Equal(t, tier, parsed)
	}

	parsed, err := ParseTier(" MD ")
	require.NoError(t, err)
	assert.Equal(t, TierMD, parsed)

	_, err = ParseTier("xl")
	assert.ErrorIs(t, err, ErrUnknownTier)
}

func TestSortStateNext(t *testing.T) {
	s := SortState{Column: "wins"}
	s = s.Next()
	assert.Equal(t, SortState{Column: "wins", Direction: SortAscending}, s)
	s = s.Next()
	assert.Equal(t, SortState{Column: "wins", Direction: SortDescending}, s)
	s = s.Next()
	assert.False(t, s.IsSorted())
	assert.Equal(t, SortNone, s.DirectionOf("wins"))
}

func TestParseSortDirection(t *testing.T) {
	d, err := ParseSortDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, SortDescending, d)

	d, err = ParseSortDirection("")
	require.NoError(t, err)
	assert.Equal(t, SortNone, d)

	_, err = ParseSortDirection("sideways")
	assert.Error(t, err)
}

func TestViewJSON(t *testing.T) {
	v := View{
		Tier: TierMD,
		Sort: SortState{Column: "wins", Direction: SortAscending},
		Columns: []HeaderCell{
			{Key: "wins", Header: "Wins", Sortable: true, Direction: SortAscending},
		},
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"tier":"md"`)
	assert.Contains(t, string(b), `"direction":"asc"`)
}
