package engine

import (
	"errors"
	"math"
	"sort"

	"github.com/futgraph/futgraph/pkg/types"
)

// ErrInsufficientData signals that a requested ratio or metric is undefined
// for the given input, e.g. a win percentage over zero matches. Callers must
// surface it as a typed error condition, never as a silent zero.
var ErrInsufficientData = errors.New("insufficient data")

// Standard league scoring.
const (
	PointsPerWin  = 3
	PointsPerDraw = 1
)

// StandingRow is one team's line in a standings table. Derived per request
// from completed matches; never persisted.
type StandingRow struct {
	Position     int    `json:"position"`
	TeamID       string `json:"team_id"`
	TeamName     string `json:"team_name"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Points       int    `json:"points"`
}

// GoalDifference returns goals for minus goals against.
func (r StandingRow) GoalDifference() int {
	return r.GoalsFor - r.GoalsAgainst
}

// ComputeStandings builds a standings table from the given matches. Matches
// that are not completed are ignored. teamNames resolves team IDs to display
// names; an unresolved ID falls back to the ID itself so the tie-break stays
// deterministic.
//
// Sort order: points, then goal difference, then goals for (all descending),
// then team name ascending as the final tie-break.
func ComputeStandings(matches []types.Match, teamNames map[string]string) []StandingRow {
	rows := make(map[string]*StandingRow)

	row := func(teamID string) *StandingRow {
		r, ok := rows[teamID]
		if !ok {
			name := teamNames[teamID]
			if name == "" {
				name = teamID
			}
			r = &StandingRow{TeamID: teamID, TeamName: name}
			rows[teamID] = r
		}
		return r
	}

	for _, m := range matches {
		if !m.Completed() {
			continue
		}
		home, away := row(m.HomeTeamID), row(m.AwayTeamID)
		hs, as := *m.HomeScore, *m.AwayScore

		home.Played++
		away.Played++
		home.GoalsFor += hs
		home.GoalsAgainst += as
		away.GoalsFor += as
		away.GoalsAgainst += hs

		switch {
		case hs > as:
			home.Wins++
			away.Losses++
			home.Points += PointsPerWin
		case hs < as:
			away.Wins++
			home.Losses++
			away.Points += PointsPerWin
		default:
			home.Draws++
			away.Draws++
			home.Points += PointsPerDraw
			away.Points += PointsPerDraw
		}
	}

	table := make([]StandingRow, 0, len(rows))
	for _, r := range rows {
		table = append(table, *r)
	}

	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamName < b.TeamName
	})

	for i := range table {
		table[i].Position = i + 1
	}
	return table
}

// Percent computes round(100 * numerator / denominator, 1). A zero
// denominator returns ErrInsufficientData instead of dividing.
func Percent(numerator, denominator int) (float64, error) {
	if denominator == 0 {
		return 0, ErrInsufficientData
	}
	return math.Round(1000*float64(numerator)/float64(denominator)) / 10, nil
}
