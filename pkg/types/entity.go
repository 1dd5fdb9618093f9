package types

import (
	"errors"
	"time"
)

// Validation errors
var (
	ErrEmptyID       = errors.New("id cannot be empty")
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrEmptySeason   = errors.New("season cannot be empty")
	ErrInvalidLimit  = errors.New("limit must be positive")
	ErrInvalidScore  = errors.New("completed match must have both scores")
	ErrInvalidMinute = errors.New("minute must be between 0 and 120")
)

// Position is a player's primary playing position.
type Position string

const (
	Goalkeeper      Position = "Goalkeeper"
	Defender        Position = "Defender"
	Midfielder      Position = "Midfielder"
	Forward         Position = "Forward"
	UnknownPosition Position = "Unknown"
)

// ParsePosition maps a raw position string onto the Position enum.
// Anything unrecognized (including the empty string) maps to UnknownPosition.
func ParsePosition(s string) Position {
	switch Position(s) {
	case Goalkeeper, Defender, Midfielder, Forward:
		return Position(s)
	default:
		return UnknownPosition
	}
}

// CompetitionType classifies a competition.
type CompetitionType string

const (
	LeagueCompetition   CompetitionType = "League"
	CupCompetition      CompetitionType = "Cup"
	PlayoffCompetition  CompetitionType = "Playoff"
	SupercupCompetition CompetitionType = "Supercup"
)

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "Scheduled"
	MatchCompleted MatchStatus = "Completed"
	MatchPostponed MatchStatus = "Postponed"
	MatchCancelled MatchStatus = "Cancelled"
)

// GoalType tags how a goal was scored.
type GoalType string

const (
	OpenPlayGoal GoalType = "Open Play"
	PenaltyGoal  GoalType = "Penalty"
	FreeKickGoal GoalType = "Free Kick"
	HeaderGoal   GoalType = "Header"
	OwnGoal      GoalType = "Own Goal"
)

// CardType is the color of a disciplinary card.
type CardType string

const (
	YellowCard CardType = "Yellow"
	RedCard    CardType = "Red"
)

// Player represents a soccer player node.
//
// CurrentTeamID is a weak reference: a plain identifier resolved through a
// separate lookup, never an owning pointer. The referenced team's lifetime is
// managed entirely by the external store.
type Player struct {
	ID            string     `json:"player_id"`
	Name          string     `json:"name"`
	Nationality   string     `json:"nationality,omitempty"`
	Position      Position   `json:"position"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	CurrentTeamID string     `json:"current_team_id,omitempty"`
}

// Validate checks required Player fields.
func (p *Player) Validate() error {
	if p.ID == "" {
		return ErrEmptyID
	}
	if p.Name == "" {
		return ErrEmptyName
	}
	return nil
}

// Team represents a soccer club node.
type Team struct {
	ID          string `json:"team_id"`
	Name        string `json:"name"`
	City        string `json:"city,omitempty"`
	Stadium     string `json:"stadium,omitempty"`
	FoundedYear int    `json:"founded_year,omitempty"`
	Colors      string `json:"colors,omitempty"`
	Nickname    string `json:"nickname,omitempty"`
}

// Validate checks required Team fields.
func (t *Team) Validate() error {
	if t.ID == "" {
		return ErrEmptyID
	}
	if t.Name == "" {
		return ErrEmptyName
	}
	return nil
}

// Competition represents a league or tournament node. Season is a label such
// as "2023" or "2023/24"; the pair (ID, Season) addresses one edition.
type Competition struct {
	ID      string          `json:"competition_id"`
	Name    string          `json:"name"`
	Season  string          `json:"season"`
	Type    CompetitionType `json:"type"`
	Tier    int             `json:"tier,omitempty"`
	Country string          `json:"country,omitempty"`
}

// Validate checks required Competition fields.
func (c *Competition) Validate() error {
	if c.ID == "" {
		return ErrEmptyID
	}
	if c.Name == "" {
		return ErrEmptyName
	}
	if c.Season == "" {
		return ErrEmptySeason
	}
	return nil
}

// Match represents a single game node. Scores are pointers because they exist
// only once the match is completed; Scheduled and Postponed matches carry nil
// scores. CompetitionID and Season together name the edition the match
// belongs to, mirroring the (ID, Season) pair on Competition.
type Match struct {
	ID            string      `json:"match_id"`
	Date          time.Time   `json:"date"`
	HomeTeamID    string      `json:"home_team_id"`
	AwayTeamID    string      `json:"away_team_id"`
	HomeScore     *int        `json:"home_score,omitempty"`
	AwayScore     *int        `json:"away_score,omitempty"`
	CompetitionID string      `json:"competition_id,omitempty"`
	Season        string      `json:"season,omitempty"`
	StadiumID     string      `json:"stadium_id,omitempty"`
	Attendance    int         `json:"attendance,omitempty"`
	Status        MatchStatus `json:"status"`
}

// Completed reports whether the match finished with both scores recorded.
func (m *Match) Completed() bool {
	return m.Status == MatchCompleted && m.HomeScore != nil && m.AwayScore != nil
}

// Validate checks required Match fields and the score/status invariant.
func (m *Match) Validate() error {
	if m.ID == "" || m.HomeTeamID == "" || m.AwayTeamID == "" {
		return ErrEmptyID
	}
	if m.Status == MatchCompleted && (m.HomeScore == nil || m.AwayScore == nil) {
		return ErrInvalidScore
	}
	return nil
}

// Involves reports whether the given team played in this match.
func (m *Match) Involves(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// ScoreFor returns the goals scored by the given team in this match,
// or false if the team did not play or the match has no scores.
func (m *Match) ScoreFor(teamID string) (int, bool) {
	if m.HomeScore == nil || m.AwayScore == nil {
		return 0, false
	}
	switch teamID {
	case m.HomeTeamID:
		return *m.HomeScore, true
	case m.AwayTeamID:
		return *m.AwayScore, true
	}
	return 0, false
}

// ScoreAgainst returns the goals conceded by the given team in this match.
func (m *Match) ScoreAgainst(teamID string) (int, bool) {
	switch teamID {
	case m.HomeTeamID:
		return m.ScoreFor(m.AwayTeamID)
	case m.AwayTeamID:
		return m.ScoreFor(m.HomeTeamID)
	}
	return 0, false
}

// Stadium represents a venue node.
type Stadium struct {
	ID         string `json:"stadium_id"`
	Name       string `json:"name"`
	City       string `json:"city,omitempty"`
	Capacity   int    `json:"capacity,omitempty"`
	OpenedYear int    `json:"opened_year,omitempty"`
}

// Coach represents a team manager node.
type Coach struct {
	ID            string     `json:"coach_id"`
	Name          string     `json:"name"`
	Nationality   string     `json:"nationality,omitempty"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	CurrentTeamID string     `json:"current_team_id,omitempty"`
}
