package types

import "time"

// Membership is a time-bounded PLAYS_FOR relationship between a player and a
// team. A nil End means the stint is ongoing as of query time.
type Membership struct {
	PlayerID string     `json:"player_id"`
	TeamID   string     `json:"team_id"`
	Start    time.Time  `json:"from_date"`
	End      *time.Time `json:"to_date,omitempty"`
	Jersey   int        `json:"jersey_number,omitempty"`
}

// Interval returns the membership tenure as a temporal interval.
func (m *Membership) Interval() Interval {
	return Interval{Start: m.Start, End: m.End}
}

// Current reports whether the membership is ongoing as of the given time.
func (m *Membership) Current(asOf time.Time) bool {
	return m.Interval().Current(asOf)
}

// GoalEvent is a SCORED_IN relationship: one goal by a player in a match.
// For an own goal, TeamID is the side credited with the goal, which is not
// the scorer's own side.
type GoalEvent struct {
	PlayerID       string   `json:"player_id"`
	MatchID        string   `json:"match_id"`
	TeamID         string   `json:"team_id"`
	Minute         int      `json:"minute"`
	Type           GoalType `json:"goal_type,omitempty"`
	AssistPlayerID string   `json:"assist_player_id,omitempty"`
}

// OwnGoal reports whether the event is an own goal. Own goals never count
// toward the scorer's tally.
func (g *GoalEvent) OwnGoal() bool {
	return g.Type == OwnGoal
}

// CardEvent is a RECEIVED_CARD relationship.
type CardEvent struct {
	PlayerID string   `json:"player_id"`
	MatchID  string   `json:"match_id"`
	Type     CardType `json:"card_type"`
	Minute   int      `json:"minute"`
}

// Transfer records a player moving between two clubs.
type Transfer struct {
	PlayerID   string    `json:"player_id"`
	FromTeamID string    `json:"from_team_id"`
	ToTeamID   string    `json:"to_team_id"`
	Date       time.Time `json:"transfer_date"`
	Fee        float64   `json:"fee,omitempty"`
	Loan       bool      `json:"loan,omitempty"`
}
