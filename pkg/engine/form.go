package engine

import (
	"sort"

	"github.com/futgraph/futgraph/pkg/types"
)

// Result letters used in form strings.
const (
	ResultWin  = "W"
	ResultDraw = "D"
	ResultLoss = "L"
)

// Form is a team's record over its most recent completed matches. Results is
// ordered oldest first, most recent last.
type Form struct {
	TeamID     string   `json:"team_id"`
	Considered int      `json:"matches_considered"`
	Wins       int      `json:"wins"`
	Draws      int      `json:"draws"`
	Losses     int      `json:"losses"`
	Points     int      `json:"points"`
	WinPercent float64  `json:"win_percent"`
	Results    []string `json:"results"`
}

// ComputeForm scores the team's last n completed matches among the given
// matches, win=3 draw=1 loss=0 plus win percentage. Zero completed matches
// is ErrInsufficientData.
func ComputeForm(teamID string, matches []types.Match, n int) (Form, error) {
	var played []types.Match
	for _, m := range matches {
		if m.Completed() && m.Involves(teamID) {
			played = append(played, m)
		}
	}
	if len(played) == 0 {
		return Form{}, ErrInsufficientData
	}

	sort.Slice(played, func(i, j int) bool {
		if !played[i].Date.Equal(played[j].Date) {
			return played[i].Date.Before(played[j].Date)
		}
		return played[i].ID < played[j].ID
	})
	if n > 0 && len(played) > n {
		played = played[len(played)-n:]
	}

	form := Form{TeamID: teamID, Considered: len(played)}
	for _, m := range played {
		gf, _ := m.ScoreFor(teamID)
		ga, _ := m.ScoreAgainst(teamID)
		switch {
		case gf > ga:
			form.Wins++
			form.Points += PointsPerWin
			form.Results = append(form.Results, ResultWin)
		case gf < ga:
			form.Losses++
			form.Results = append(form.Results, ResultLoss)
		default:
			form.Draws++
			form.Points += PointsPerDraw
			form.Results = append(form.Results, ResultDraw)
		}
	}

	pct, err := Percent(form.Wins, form.Considered)
	if err != nil {
		return Form{}, err
	}
	form.WinPercent = pct
	return form, nil
}
