package debate

import (
	"net/url"

	"github.com/debatestats/gateway/internal/table"
)

// judgeLoadingRows is the number of skeleton rows shown before a judge
// record arrives.
const judgeLoadingRows = 5

// Navigator performs a route change requested by a table row click.
type Navigator interface {
	Navigate(path string, query url.Values)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string, query url.Values)

func (f NavigatorFunc) Navigate(path string, query url.Values) {
	f(path, query)
}

// OmitQuery returns a copy of q without the given keys.
func OmitQuery(q url.Values, keys ...string) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	for _, k := range keys {
		out.Del(k)
	}
	return out
}

// TeamPath is the public page of a team.
func TeamPath(id string) string {
	return "/teams/" + url.PathEscape(id)
}

var judgeColumns = []table.Attribute[JudgeRound]{
	{
		Key:    "team",
		Header: "Team",
		Value: table.Any(func(r JudgeRound) any {
			if code := r.Result.Team.Code(); code != "" {
				return code
			}
			return nil
		}),
		Sortable: true,
	},
	{
		Key:      "side",
		Header:   "Side",
		Value:    table.String(func(r JudgeRound) string { return r.Side }),
		Sortable: true,
	},
	{
		Key:      "result",
		Header:   "Result",
		Value:    table.String(func(r JudgeRound) string { return r.Outcome }),
		Sortable: true,
		Priority: table.TierLG,
	},
}

// JudgeRecordTable lists the teams a judge has adjudicated. A nil record
// renders loading rows. Clicking a row navigates to the team page, keeping
// the current query minus the judge id.
func JudgeRecordTable(record *JudgeRecord, query url.Values, nav Navigator) (*table.Table[JudgeRound], error) {
	opts := []table.Option[JudgeRound]{
		table.WithLoadingRows[JudgeRound](judgeLoadingRows),
		table.WithRowKey(func(r JudgeRound) string { return r.ID }),
		table.WithEmptyMessage[JudgeRound]("No rounds judged"),
	}
	if nav != nil {
		opts = append(opts, table.WithRowClick(func(r JudgeRound) {
			nav.Navigate(TeamPath(r.Result.Team.ID), OmitQuery(query, "id"))
		}))
	}

	t, err := table.New(judgeColumns, opts...)
	if err != nil {
		return nil, err
	}
	if record != nil {
		t.SetData(record.Rounds)
	}
	return t, nil
}
