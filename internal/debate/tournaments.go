package debate

import (
	"fmt"
	"time"

	"github.com/debatestats/gateway/internal/table"
)

// dateLayout matches en-US short dates, e.g. 9/14/2024.
const dateLayout = "1/2/2006"

// TournamentColumns returns the tournament history columns.
func TournamentColumns() []table.Attribute[TournamentResult] {
	return []table.Attribute[TournamentResult]{
		{
			Key:      "name",
			Header:   "Name",
			Value:    table.String(func(r TournamentResult) string { return r.Tournament.Name }),
			Sortable: true,
		},
		{
			Key:    "date",
			Header: "Date",
			Value: table.Time(func(r TournamentResult) time.Time {
				return r.Tournament.StartTime()
			}).WithDisplay(func(r TournamentResult) string {
				return r.Tournament.StartTime().Format(dateLayout)
			}),
			Sortable: true,
		},
		{
			Key:    "prelim-rank",
			Header: "P.RK",
			Value: table.Int(func(r TournamentResult) int {
				return r.PrelimPos
			}).WithDisplay(func(r TournamentResult) string {
				return fmt.Sprintf("%d/%d", r.PrelimPos, r.PrelimPoolSize)
			}),
			Sortable:    true,
			Description: "Seed after preliminary rounds",
		},
		{
			Key:    "prelim-record",
			Header: "P.RC",
			Value: table.Any(func(r TournamentResult) any {
				return winRate(r.PrelimBallotsWon, r.PrelimBallotsLost)
			}).WithDisplay(func(r TournamentResult) string {
				return recordText(r.PrelimBallotsWon, r.PrelimBallotsLost)
			}),
			Sortable:    true,
			Priority:    table.TierSM,
			Description: "Preliminary ballots won-lost",
		},
		{
			Key:    "elim-record",
			Header: "E.RC",
			Value: table.Any(func(r TournamentResult) any {
				return winRate(deref(r.ElimWins), deref(r.ElimLosses))
			}).WithDisplay(func(r TournamentResult) string {
				return recordText(deref(r.ElimWins), deref(r.ElimLosses))
			}),
			Sortable:    true,
			Priority:    table.TierSM,
			Description: "Elimination rounds won-lost",
		},
		{
			Key:    "bid",
			Header: "Bid",
			Value: table.Any(func(r TournamentResult) any {
				return r.Bid
			}).WithDisplay(bidText),
			Sortable: true,
			Priority: table.TierSM,
		},
		{
			Key:         "opwpm",
			Header:      "OpWpM",
			Value:       table.Any(func(r TournamentResult) any { return r.OpWpm }),
			Sortable:    true,
			Priority:    table.TierLG,
			Description: "Opponent win percentage mark",
		},
	}
}

// TournamentListTable lists a team's tournaments. Each row expands into the
// speaker results for that tournament.
func TournamentListTable(results []TournamentResult) (*table.Table[TournamentResult], error) {
	return tournamentList(results, table.WithExpansion(TournamentSummaryTable))
}

// PlainTournamentListTable lists a team's tournaments without drill-down.
func PlainTournamentListTable(results []TournamentResult) (*table.Table[TournamentResult], error) {
	return tournamentList(results)
}

func tournamentList(results []TournamentResult, opts ...table.Option[TournamentResult]) (*table.Table[TournamentResult], error) {
	opts = append(opts,
		table.WithRowKey(func(r TournamentResult) string { return r.ID }),
		table.WithEmptyMessage[TournamentResult]("No tournaments on record"),
	)
	t, err := table.New(TournamentColumns(), opts...)
	if err != nil {
		return nil, err
	}
	t.SetData(results)
	return t, nil
}

var speakerColumns = []table.Attribute[SpeakerResult]{
	{
		Key:      "speaker",
		Header:   "Speaker",
		Value:    table.String(func(s SpeakerResult) string { return s.Competitor.Name }),
		Sortable: true,
	},
	{
		Key:      "rank",
		Header:   "Rank",
		Value:    table.Int(func(s SpeakerResult) int { return s.Rank }),
		Sortable: true,
	},
	{
		Key:      "raw",
		Header:   "Raw",
		Value:    table.Number(func(s SpeakerResult) float64 { return s.RawAvg }),
		Sortable: true,
		Priority: table.TierSM,
	},
	{
		Key:      "adj",
		Header:   "Adj",
		Value:    table.Number(func(s SpeakerResult) float64 { return s.AdjAvg }),
		Sortable: true,
		Priority: table.TierMD,
	},
	{
		Key:          "points",
		Header:       "Pts",
		Value:        table.Any(func(s SpeakerResult) any { return s.Points }),
		Sortable:     true,
		Summarizable: true,
		Priority:     table.TierLG,
	},
}

// TournamentSummaryTable is the drill-down view of one tournament result.
func TournamentSummaryTable(r TournamentResult) table.Renderable {
	t, err := table.New(speakerColumns,
		table.WithSummary[SpeakerResult](),
		table.WithEmptyMessage[SpeakerResult]("No speaker results"),
	)
	if err != nil {
		return table.Placeholder("Speaker results unavailable")
	}
	t.SetData(r.Speaking)
	return t
}

// winRate returns won/(won+lost), or nil when no rounds were recorded.
func winRate(won, lost int) any {
	if won+lost == 0 {
		return nil
	}
	return float64(won) / float64(won+lost)
}

func recordText(won, lost int) string {
	if won+lost == 0 {
		return "--"
	}
	return fmt.Sprintf("%d-%d (%d%%)", won, lost, won*100/(won+lost))
}

func bidText(r TournamentResult) string {
	if r.Bid == nil || *r.Bid == 0 {
		return "--"
	}
	kind := "Partial"
	if *r.Bid == 1 {
		kind = "Full"
	}
	if r.IsGhostBid {
		return kind + " (ghost)"
	}
	return kind
}

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
