package query

import (
	"context"
	"sort"
	"time"

	"github.com/futgraph/futgraph/pkg/driver"
	"github.com/futgraph/futgraph/pkg/engine"
	"github.com/futgraph/futgraph/pkg/types"
)

// SearchTeamsRequest is a team search by name fragment and optional city.
type SearchTeamsRequest struct {
	Name  string `json:"name"`
	City  string `json:"city,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// SearchTeamsResult lists matches ordered by name.
type SearchTeamsResult struct {
	Teams []types.Team `json:"teams"`
	Meta  Meta         `json:"meta"`
}

// SearchTeams finds teams by case-insensitive name fragment.
func (s *Service) SearchTeams(ctx context.Context, req SearchTeamsRequest) (*SearchTeamsResult, *Error) {
	if req.Name == "" {
		return nil, invalidParameter("name is required")
	}
	limit, qerr := clampLimit(req.Limit)
	if qerr != nil {
		return nil, qerr
	}

	filters := driver.Filters{"name": driver.Contains(req.Name)}
	if req.City != "" {
		filters["city"] = driver.Eq(req.City)
	}

	var result SearchTeamsResult
	elapsed, qerr := s.run(ctx, "search_teams", func(ctx context.Context) error {
		records, err := s.store.FetchNodes(ctx, driver.LabelTeam, filters, limit+1)
		if err != nil {
			return err
		}
		teams := s.project.Teams(records)
		sort.Slice(teams, func(i, j int) bool {
			if teams[i].Name != teams[j].Name {
				return teams[i].Name < teams[j].Name
			}
			return teams[i].ID < teams[j].ID
		})
		if len(teams) > limit {
			teams = teams[:limit]
			result.Meta.Truncated = true
		}
		result.Teams = teams
		return nil
	})
	if qerr != nil {
		return nil, qerr
	}
	result.Meta.QueryTimeMs = elapsed
	return &result, nil
}

// TeamStatsRequest identifies one team, with optional narrowing.
type TeamStatsRequest struct {
	TeamID    string          `json:"team_id"`
	Season    string          `json:"season,omitempty"`
	DateRange *types.Interval `json:"date_range,omitempty"`
	AsOf      *time.Time      `json:"as_of,omitempty"`
}

// TeamStatsResult is the aggregate playing record.
type TeamStatsResult struct {
	Team    types.Team       `json:"team"`
	Stats   engine.TeamStats `json:"stats"`
	Points  int              `json:"points"`
	WinRate float64          `json:"win_rate"`
	Meta    Meta             `json:"meta"`
}

// TeamStats aggregates a team's completed matches into a playing record with
// home and away splits. Season and date range are mutually exclusive.
func (s *Service) TeamStats(ctx context.Context, req TeamStatsRequest) (*TeamStatsResult, *Error) {
	if req.TeamID == "" {
		return nil, invalidParameter("team_id is required")
	}
	if req.Season != "" && req.DateRange != nil {
		return nil, invalidParameter("season and date_range are mutually exclusive")
	}

	var result TeamStatsResult
	elapsed, qerr := s.run(ctx, "team_stats", func(ctx context.Context) error {
		team, err := s.fetchTeam(ctx, req.TeamID)
		if err != nil {
			return err
		}
		matches, err := s.matchesForTeam(ctx, req.TeamID)
		if err != nil {
			return err
		}
		matches, err = s.narrowMatches(ctx, matches, req.Season, req.DateRange, s.asOf(req.AsOf))
		if err != nil {
			return err
		}
		completed := completedOnly(matches)
		if len(completed) == 0 {
			return insufficientData("team %s has no completed matches", req.TeamID)
		}

		result.Team = team
		result.Stats = engine.ComputeTeamStats(req.TeamID, completed)
		result.Points = result.Stats.Points()
		// Completed matches exist here, so the rate is always defined.
		rate, err := result.Stats.WinRate()
		if err != nil {
			return err
		}
		result.WinRate = rate
		return nil
	})
	if qerr != nil {
		return nil, qerr
	}
	result.Meta.QueryTimeMs = elapsed
	return &result, nil
}

// RosterRequest identifies a team and the time the roster is taken at.
type RosterRequest struct {
	TeamID string     `json:"team_id"`
	Limit  int        `json:"limit,omitempty"`
	AsOf   *time.Time `json:"as_of,omitempty"`
}

// RosterEntry is one squad member.
type RosterEntry struct {
	Player types.Player `json:"player"`
	Jersey int          `json:"jersey_number,omitempty"`
	Since  time.Time    `json:"since"`
}

// RosterResult is the squad at the requested time, ordered by jersey then
// name.
type RosterResult struct {
	Team   types.Team    `json:"team"`
	Roster []RosterEntry `json:"roster"`
	Meta   Meta          `json:"meta"`
}

// TeamRoster lists the players whose membership at the team covers the
// as-of time.
func (s *Service) TeamRoster(ctx context.Context, req RosterRequest) (*RosterResult, *Error) {
	if req.TeamID == "" {
		return nil, invalidParameter("team_id is required")
	}
	limit, qerr := clampLimit(req.Limit)
	if qerr != nil {
		return nil, qerr
	}

	var result RosterResult
	elapsed, qerr := s.run(ctx, "team_roster", func(ctx context.Context) error {
		team, err := s.fetchTeam(ctx, req.TeamID)
		if err != nil {
			return err
		}

		records, err := s.store.FetchRelationships(ctx, driver.RelPlaysFor,
			driver.LabelPlayer, driver.LabelTeam,
			driver.Filters{"end_id": driver.Eq(req.TeamID)}, 0)
		if err != nil {
			return err
		}

		asOf := s.asOf(req.AsOf)
		var roster []RosterEntry
		for _, mem := range s.project.Memberships(records) {
			if !mem.Interval().Contains(asOf, asOf) {
				continue
			}
			player, err := s.fetchPlayer(ctx, mem.PlayerID)
			if err != nil {
				if classify(err).Kind == KindNotFound {
					continue
				}
				return err
			}
			roster = append(roster, RosterEntry{Player: player, Jersey: mem.Jersey, Since: mem.Start})
		}
		sort.Slice(roster, func(i, j int) bool {
			a, b := roster[i], roster[j]
			if a.Jersey != b.Jersey {
				if a.Jersey == 0 || b.Jersey == 0 {
					return b.Jersey == 0
				}
				return a.Jersey < b.Jersey
			}
			return a.Player.Name < b.Player.Name
		})
		if len(roster) > limit {
			roster = roster[:limit]
			result.Meta.Truncated = true
		}

		result.Team = team
		result.Roster = roster
		return nil
	})
	if qerr != nil {
		return nil, qerr
	}
	result.Meta.QueryTimeMs = elapsed
	return &result, nil
}
