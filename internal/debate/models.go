// Package debate holds the debate statistics records served by the gateway
// and the result tables built over them.
package debate

import (
	"encoding/json"
	"fmt"
	"time"
)

// Circuit is a competitive circuit a tournament counts toward.
type Circuit struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Tournament is one event in a season.
type Tournament struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Season   int       `json:"season"`
	Start    int64     `json:"start"` // unix seconds
	Circuits []Circuit `json:"circuits,omitempty"`
}

// StartTime returns the tournament start as a UTC time.
func (t Tournament) StartTime() time.Time {
	return time.Unix(t.Start, 0).UTC()
}

type Alias struct {
	Code string `json:"code"`
}

type School struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Team struct {
	ID      string  `json:"id"`
	Aliases []Alias `json:"aliases"`
}

// Code returns the team's primary alias code.
func (t Team) Code() string {
	if len(t.Aliases) == 0 {
		return ""
	}
	return t.Aliases[0].Code
}

type Competitor struct {
	Name string `json:"name"`
}

// SpeakerResult is one competitor's speaker points at a tournament.
type SpeakerResult struct {
	Competitor Competitor `json:"competitor"`
	Rank       int        `json:"rank"`
	RawAvg     float64    `json:"rawAvg"`
	AdjAvg     float64    `json:"adjAvg"`
	Points     *float64   `json:"points,omitempty"`
}

// TournamentResult is a team's result at one tournament.
type TournamentResult struct {
	ID                string          `json:"id"`
	Tournament        Tournament      `json:"tournament"`
	Alias             Alias           `json:"alias"`
	School            School          `json:"school"`
	PrelimPos         int             `json:"prelimPos"`
	PrelimPoolSize    int             `json:"prelimPoolSize"`
	PrelimBallotsWon  int             `json:"prelimBallotsWon"`
	PrelimBallotsLost int             `json:"prelimBallotsLost"`
	ElimWins          *int            `json:"elimWins,omitempty"`
	ElimLosses        *int            `json:"elimLosses,omitempty"`
	Bid               *float64        `json:"bid,omitempty"` // 1 for a full bid, 0.5 for a partial
	IsGhostBid        bool            `json:"isGhostBid"`
	OpWpm             *float64        `json:"opWpm,omitempty"`
	Speaking          []SpeakerResult `json:"speaking,omitempty"`
}

// JudgeRound is one round a judge adjudicated for a team.
type JudgeRound struct {
	ID      string `json:"id"`
	Side    string `json:"side"`
	Outcome string `json:"outcome"`
	Result  struct {
		Team Team `json:"team"`
	} `json:"result"`
}

// JudgeRecord is a judge's adjudication history.
type JudgeRecord struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Rounds []JudgeRound `json:"rounds"`
}

// Feedback is a visitor message submitted through the feedback procedure.
type Feedback struct {
	ID        string    `json:"id"`
	Page      string    `json:"page"`
	Message   string    `json:"message"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DecodeResults parses the JSON array returned by api_team_results.
func DecodeResults(raw []byte) ([]TournamentResult, error) {
	var results []TournamentResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, fmt.Errorf("decode tournament results: %w", err)
	}
	return results, nil
}

// DecodeJudgeRecord parses the JSON object returned by api_judge_record.
func DecodeJudgeRecord(raw []byte) (*JudgeRecord, error) {
	var record JudgeRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode judge record: %w", err)
	}
	return &record, nil
}
