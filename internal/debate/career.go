package debate

import (
	"strconv"

	"github.com/debatestats/gateway/internal/table"
)

// Season groups a team's results by season.
type Season struct {
	Season      int
	Tournaments []TournamentResult
}

// GroupBySeason buckets results by tournament season, keeping seasons in
// the order they first appear.
func GroupBySeason(results []TournamentResult) []Season {
	var seasons []Season
	index := make(map[int]int)
	for _, r := range results {
		season := r.Tournament.Season
		i, ok := index[season]
		if !ok {
			i = len(seasons)
			index[season] = i
			seasons = append(seasons, Season{Season: season})
		}
		seasons[i].Tournaments = append(seasons[i].Tournaments, r)
	}
	return seasons
}

var careerColumns = []table.Attribute[Season]{
	{
		Key:      "season",
		Header:   "Szn",
		Value:    table.Int(func(s Season) int { return s.Season }),
		Sortable: true,
	},
	{
		Key:          "tournaments",
		Header:       "Tournaments",
		Value:        table.Int(func(s Season) int { return len(s.Tournaments) }),
		Sortable:     true,
		Summarizable: true,
	},
	{
		Key:    "bids",
		Header: "Bids",
		Value: table.Number(func(s Season) float64 {
			var bids float64
			for _, r := range s.Tournaments {
				if r.Bid != nil && !r.IsGhostBid {
					bids += *r.Bid
				}
			}
			return bids
		}),
		Sortable:     true,
		Summarizable: true,
		Priority:     table.TierSM,
		Description:  "Full bids count 1, partial bids 0.5; ghost bids excluded",
	},
}

// CareerSummaryTable summarizes a team's results per season with a totals
// row.
func CareerSummaryTable(results []TournamentResult) (*table.Table[Season], error) {
	t, err := table.New(careerColumns,
		table.WithSummary[Season](),
		table.WithRowKey(func(s Season) string { return strconv.Itoa(s.Season) }),
		table.WithEmptyMessage[Season]("No seasons on record"),
	)
	if err != nil {
		return nil, err
	}
	t.SetData(GroupBySeason(results))
	return t, nil
}
