// Package pattern evaluates multi-criteria career-path queries against the
// graph. A query is a criteria conjunction: every present criterion must
// hold for a player to match.
//
// The matcher intersects first and filters second: membership sets are
// fetched per required team and intersected into a candidate set before any
// scalar criterion is evaluated, so the cost of a query is bounded by the
// smallest required roster rather than the full player population.
package pattern

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/futgraph/futgraph/pkg/driver"
	"github.com/futgraph/futgraph/pkg/projection"
	"github.com/futgraph/futgraph/pkg/types"
)

// ErrNoCriteria is returned when a criteria conjunction has no criterion set.
var ErrNoCriteria = errors.New("career path criteria must include at least one criterion")

// Criteria is a closed, explicitly enumerated conjunction of career filters.
// Nil or empty fields are absent criteria.
type Criteria struct {
	// Teams lists team IDs the player must have a membership at, all of
	// them.
	Teams []string `json:"teams,omitempty"`
	// MinGoals is the minimum career goal tally, own goals excluded.
	MinGoals *int `json:"min_goals,omitempty"`
	// Positions restricts to players whose position is one of these.
	Positions []types.Position `json:"positions,omitempty"`
	// Nationality restricts to an exact nationality.
	Nationality string `json:"nationality,omitempty"`
	// DateRange, when set, requires each required-team membership to overlap
	// the range.
	DateRange *types.Interval `json:"date_range,omitempty"`
}

// Empty reports whether no criterion is set.
func (c Criteria) Empty() bool {
	return len(c.Teams) == 0 && c.MinGoals == nil && len(c.Positions) == 0 &&
		c.Nationality == "" && c.DateRange == nil
}

// Breakdown records which criteria a matched player satisfied. Absent
// criteria are reported as not evaluated.
type Breakdown struct {
	Teams       *bool `json:"teams,omitempty"`
	MinGoals    *bool `json:"min_goals,omitempty"`
	Positions   *bool `json:"positions,omitempty"`
	Nationality *bool `json:"nationality,omitempty"`
	DateRange   *bool `json:"date_range,omitempty"`
}

// Match is one player satisfying the whole conjunction.
type Match struct {
	Player       types.Player `json:"player"`
	MatchedTeams []string     `json:"matched_teams,omitempty"`
	Goals        int          `json:"goals"`
	Breakdown    Breakdown    `json:"criteria_matched"`
}

// Matcher evaluates criteria conjunctions through a graph driver.
type Matcher struct {
	store     driver.GraphDriver
	projector *projection.Projector
}

// New creates a Matcher.
func New(store driver.GraphDriver, projector *projection.Projector) *Matcher {
	return &Matcher{store: store, projector: projector}
}

// Evaluate returns all players matching the conjunction, ordered by matched
// team count descending and player name ascending. asOf resolves open-ended
// membership intervals.
func (m *Matcher) Evaluate(ctx context.Context, criteria Criteria, asOf time.Time) ([]Match, error) {
	if criteria.Empty() {
		return nil, ErrNoCriteria
	}

	candidates, memberships, err := m.candidates(ctx, criteria, asOf)
	if err != nil {
		return nil, err
	}

	yes := true
	var matches []Match
	for _, playerID := range candidates {
		player, ok, err := m.fetchPlayer(ctx, playerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		match := Match{Player: player, MatchedTeams: memberships[playerID]}
		if len(criteria.Teams) > 0 {
			match.Breakdown.Teams = &yes
			if criteria.DateRange != nil {
				match.Breakdown.DateRange = &yes
			}
		}

		if len(criteria.Positions) > 0 {
			if !containsPosition(criteria.Positions, player.Position) {
				continue
			}
			match.Breakdown.Positions = &yes
		}
		if criteria.Nationality != "" {
			if player.Nationality != criteria.Nationality {
				continue
			}
			match.Breakdown.Nationality = &yes
		}
		if criteria.MinGoals != nil {
			goals, err := m.careerGoals(ctx, playerID)
			if err != nil {
				return nil, err
			}
			if goals < *criteria.MinGoals {
				continue
			}
			match.Goals = goals
			match.Breakdown.MinGoals = &yes
		}

		matches = append(matches, match)
	}

	sort.Slice(matches, func(i, j int) bool {
		if len(matches[i].MatchedTeams) != len(matches[j].MatchedTeams) {
			return len(matches[i].MatchedTeams) > len(matches[j].MatchedTeams)
		}
		return matches[i].Player.Name < matches[j].Player.Name
	})
	return matches, nil
}

// candidates produces the reduced candidate ID set and, per candidate, the
// team IDs whose membership criterion they satisfied. Without a team
// criterion every player is a candidate.
func (m *Matcher) candidates(ctx context.Context, criteria Criteria, asOf time.Time) ([]string, map[string][]string, error) {
	matchedTeams := make(map[string][]string)

	if len(criteria.Teams) == 0 {
		records, err := m.store.FetchNodes(ctx, driver.LabelPlayer, m.scalarFilters(criteria), 0)
		if err != nil {
			return nil, nil, err
		}
		players := m.projector.Players(records)
		ids := make([]string, 0, len(players))
		for _, p := range players {
			ids = append(ids, p.ID)
		}
		sort.Strings(ids)
		return ids, matchedTeams, nil
	}

	var intersection map[string]bool
	for _, teamID := range criteria.Teams {
		// One traversal per required team, with scalar criteria pushed
		// down onto the player leg so the roster arrives pre-filtered.
		records, err := m.store.FetchPattern(ctx, driver.PatternSpec{
			StartLabel:   driver.LabelPlayer,
			RelTypes:     []string{driver.RelPlaysFor},
			EndLabel:     driver.LabelTeam,
			StartFilters: m.scalarFilters(criteria),
			EndFilters:   driver.Filters{"team_id": driver.Eq(teamID)},
		})
		if err != nil {
			return nil, nil, err
		}

		roster := make(map[string]bool)
		for _, rec := range records {
			player, ok := driver.AsRecord(rec["start"])
			if !ok {
				continue
			}
			playerID, err := driver.MustString(player["player_id"], "player_id")
			if err != nil {
				return nil, nil, err
			}
			if criteria.DateRange != nil {
				rel, ok := driver.AsRecord(rec["rel"])
				if !ok {
					continue
				}
				stint, ok := stintInterval(rel)
				if !ok || !stint.Overlaps(*criteria.DateRange, asOf) {
					continue
				}
			}
			roster[playerID] = true
		}

		if intersection == nil {
			intersection = roster
		} else {
			for id := range intersection {
				if !roster[id] {
					delete(intersection, id)
				}
			}
		}
		if len(intersection) == 0 {
			return nil, matchedTeams, nil
		}
	}

	ids := make([]string, 0, len(intersection))
	for id := range intersection {
		ids = append(ids, id)
		matchedTeams[id] = append([]string(nil), criteria.Teams...)
	}
	sort.Strings(ids)
	return ids, matchedTeams, nil
}

// scalarFilters pushes position and nationality down to the store when there
// is no team criterion to narrow candidates first.
func (m *Matcher) scalarFilters(criteria Criteria) driver.Filters {
	filters := driver.Filters{}
	if criteria.Nationality != "" {
		filters["nationality"] = driver.Eq(criteria.Nationality)
	}
	if len(criteria.Positions) == 1 {
		filters["position"] = driver.Eq(string(criteria.Positions[0]))
	}
	return filters
}

func (m *Matcher) fetchPlayer(ctx context.Context, playerID string) (types.Player, bool, error) {
	records, err := m.store.FetchNodes(ctx, driver.LabelPlayer,
		driver.Filters{"player_id": driver.Eq(playerID)}, 1)
	if err != nil {
		return types.Player{}, false, err
	}
	players := m.projector.Players(records)
	if len(players) == 0 {
		return types.Player{}, false, nil
	}
	return players[0], true, nil
}

func (m *Matcher) careerGoals(ctx context.Context, playerID string) (int, error) {
	records, err := m.store.FetchRelationships(ctx, driver.RelScoredIn,
		driver.LabelPlayer, driver.LabelMatch,
		driver.Filters{"start_id": driver.Eq(playerID)}, 0)
	if err != nil {
		return 0, err
	}

	goals := 0
	for _, g := range m.projector.Goals(records) {
		if !g.OwnGoal() {
			goals++
		}
	}
	return goals, nil
}

// stintInterval reads the tenure interval off a PLAYS_FOR record.
func stintInterval(rel driver.Record) (types.Interval, bool) {
	from, ok := driver.AsTime(rel["from_date"])
	if !ok {
		return types.Interval{}, false
	}
	interval := types.Interval{Start: from}
	if to, ok := driver.AsTime(rel["to_date"]); ok {
		interval.End = &to
	}
	return interval, true
}

func containsPosition(positions []types.Position, p types.Position) bool {
	for _, candidate := range positions {
		if candidate == p {
			return true
		}
	}
	return false
}
