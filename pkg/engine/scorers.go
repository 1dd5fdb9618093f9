package engine

import (
	"sort"

	"github.com/futgraph/futgraph/pkg/types"
)

// ScorerRow is one line of a top-scorer leaderboard.
type ScorerRow struct {
	Rank       int            `json:"rank"`
	PlayerID   string         `json:"player_id"`
	PlayerName string         `json:"player_name"`
	Position   types.Position `json:"position"`
	TeamName   string         `json:"team_name,omitempty"`
	Goals      int            `json:"goals"`
	Assists    int            `json:"assists"`
}

// TopScorers ranks players by goals within the given goal events. Own goals
// are excluded from the scorer's tally (they only ever count for the
// conceding side through the match score). Assists are credited from the
// assisting-player reference on each counted goal.
//
// Sort order: goals descending, assists descending, player name ascending.
// Players with zero counted goals and zero assists do not appear.
func TopScorers(goals []types.GoalEvent, players map[string]types.Player, teamNames map[string]string) []ScorerRow {
	type tally struct {
		goals   int
		assists int
		byTeam  map[string]int
	}
	tallies := make(map[string]*tally)

	get := func(playerID string) *tally {
		t, ok := tallies[playerID]
		if !ok {
			t = &tally{byTeam: make(map[string]int)}
			tallies[playerID] = t
		}
		return t
	}

	for _, g := range goals {
		if g.OwnGoal() {
			continue
		}
		t := get(g.PlayerID)
		t.goals++
		if g.TeamID != "" {
			t.byTeam[g.TeamID]++
		}
		if g.AssistPlayerID != "" {
			get(g.AssistPlayerID).assists++
		}
	}

	rows := make([]ScorerRow, 0, len(tallies))
	for playerID, t := range tallies {
		row := ScorerRow{
			PlayerID: playerID,
			Goals:    t.goals,
			Assists:  t.assists,
			Position: types.UnknownPosition,
		}
		if p, ok := players[playerID]; ok {
			row.PlayerName = p.Name
			row.Position = p.Position
		} else {
			row.PlayerName = playerID
		}
		if teamID := dominantTeam(t.byTeam); teamID != "" {
			if name, ok := teamNames[teamID]; ok {
				row.TeamName = name
			} else {
				row.TeamName = teamID
			}
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Goals != b.Goals {
			return a.Goals > b.Goals
		}
		if a.Assists != b.Assists {
			return a.Assists > b.Assists
		}
		return a.PlayerName < b.PlayerName
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// dominantTeam picks the team a player scored most goals for, breaking ties
// by identifier so the choice is stable.
func dominantTeam(byTeam map[string]int) string {
	best, bestCount := "", -1
	for teamID, count := range byTeam {
		if count > bestCount || (count == bestCount && teamID < best) {
			best, bestCount = teamID, count
		}
	}
	return best
}
