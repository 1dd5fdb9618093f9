package engine

import (
	"sort"

	"github.com/futgraph/futgraph/pkg/types"
)

// HeadToHead summarizes completed matches between two teams. Counts are
// symmetric: swapping team1 and team2 swaps the win and goal columns but
// never changes totals.
type HeadToHead struct {
	Team1ID    string `json:"team1_id"`
	Team2ID    string `json:"team2_id"`
	Matches    int    `json:"total_matches"`
	Team1Wins  int    `json:"team1_wins"`
	Team2Wins  int    `json:"team2_wins"`
	Draws      int    `json:"draws"`
	Team1Goals int    `json:"team1_goals"`
	Team2Goals int    `json:"team2_goals"`
}

// ComputeHeadToHead partitions completed matches between the two teams by
// result from team1's perspective. Matches not involving exactly these two
// teams, and matches without scores, are ignored.
func ComputeHeadToHead(team1ID, team2ID string, matches []types.Match) HeadToHead {
	h2h := HeadToHead{Team1ID: team1ID, Team2ID: team2ID}

	for _, m := range matches {
		if !m.Completed() || !between(m, team1ID, team2ID) {
			continue
		}
		g1, _ := m.ScoreFor(team1ID)
		g2, _ := m.ScoreFor(team2ID)

		h2h.Matches++
		h2h.Team1Goals += g1
		h2h.Team2Goals += g2
		switch {
		case g1 > g2:
			h2h.Team1Wins++
		case g2 > g1:
			h2h.Team2Wins++
		default:
			h2h.Draws++
		}
	}
	return h2h
}

// MatchMargin is a match annotated with the winning margin from one team's
// perspective.
type MatchMargin struct {
	Match  types.Match `json:"match"`
	Margin int         `json:"margin"`
}

// BiggestWins lists the given team's victories among the matches, largest
// margin first, most recent first within equal margins.
func BiggestWins(teamID string, matches []types.Match, limit int) []MatchMargin {
	var wins []MatchMargin
	for _, m := range matches {
		if !m.Completed() {
			continue
		}
		gf, ok := m.ScoreFor(teamID)
		if !ok {
			continue
		}
		ga, _ := m.ScoreAgainst(teamID)
		if gf > ga {
			wins = append(wins, MatchMargin{Match: m, Margin: gf - ga})
		}
	}

	sort.Slice(wins, func(i, j int) bool {
		if wins[i].Margin != wins[j].Margin {
			return wins[i].Margin > wins[j].Margin
		}
		if !wins[i].Match.Date.Equal(wins[j].Match.Date) {
			return wins[i].Match.Date.After(wins[j].Match.Date)
		}
		return wins[i].Match.ID < wins[j].Match.ID
	})

	if limit > 0 && len(wins) > limit {
		wins = wins[:limit]
	}
	return wins
}

// between reports whether the match was played between exactly the two teams.
func between(m types.Match, team1ID, team2ID string) bool {
	return (m.HomeTeamID == team1ID && m.AwayTeamID == team2ID) ||
		(m.HomeTeamID == team2ID && m.AwayTeamID == team1ID)
}

// TeamStats aggregates one team's record over a match set, including the
// home/away split.
type TeamStats struct {
	Played       int `json:"total_matches"`
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	GoalsFor     int `json:"goals_scored"`
	GoalsAgainst int `json:"goals_conceded"`
	HomeMatches  int `json:"home_matches"`
	HomeWins     int `json:"home_wins"`
	AwayMatches  int `json:"away_matches"`
	AwayWins     int `json:"away_wins"`
}

// Points returns the league points the record is worth.
func (s TeamStats) Points() int {
	return s.Wins*PointsPerWin + s.Draws*PointsPerDraw
}

// GoalDifference returns goals for minus goals against.
func (s TeamStats) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

// WinRate returns the win percentage, or ErrInsufficientData when the team
// played no matches.
func (s TeamStats) WinRate() (float64, error) {
	return Percent(s.Wins, s.Played)
}

// ComputeTeamStats accumulates the team's record from its completed matches.
func ComputeTeamStats(teamID string, matches []types.Match) TeamStats {
	var stats TeamStats
	for _, m := range matches {
		if !m.Completed() || !m.Involves(teamID) {
			continue
		}
		gf, _ := m.ScoreFor(teamID)
		ga, _ := m.ScoreAgainst(teamID)

		stats.Played++
		stats.GoalsFor += gf
		stats.GoalsAgainst += ga

		home := m.HomeTeamID == teamID
		if home {
			stats.HomeMatches++
		} else {
			stats.AwayMatches++
		}

		switch {
		case gf > ga:
			stats.Wins++
			if home {
				stats.HomeWins++
			} else {
				stats.AwayWins++
			}
		case gf < ga:
			stats.Losses++
		default:
			stats.Draws++
		}
	}
	return stats
}
