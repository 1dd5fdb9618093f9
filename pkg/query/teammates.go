package query

import (
	"context"
	"sort"
	"time"

	"github.com/futgraph/futgraph/pkg/driver"
	"github.com/futgraph/futgraph/pkg/types"
)

// TeammatesRequest identifies two players to compare careers for.
type TeammatesRequest struct {
	Player1ID string     `json:"player1_id"`
	Player2ID string     `json:"player2_id"`
	Limit     int        `json:"limit,omitempty"`
	AsOf      *time.Time `json:"as_of,omitempty"`
}

// SharedStint is one overlap between a teammate's tenure and a subject
// player's tenure at the same team.
type SharedStint struct {
	TeamID   string    `json:"team_id"`
	TeamName string    `json:"team_name"`
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
}

// Teammate is one player who overlapped with both subjects.
type Teammate struct {
	Player      types.Player  `json:"player"`
	WithPlayer1 []SharedStint `json:"with_player1"`
	WithPlayer2 []SharedStint `json:"with_player2"`
}

// TeammatesResult lists common teammates ordered by name.
type TeammatesResult struct {
	Player1   types.Player `json:"player1"`
	Player2   types.Player `json:"player2"`
	Teammates []Teammate   `json:"teammates"`
	Meta      Meta         `json:"meta"`
}

// CommonTeammates finds every player whose club tenure overlapped both
// subjects' at the same club. A player who overlapped each subject at a
// different club was never a teammate of both in a shared dressing room and
// does not qualify. Overlap is inclusive: a stint ending the day another
// starts still counts. Two players with no common teammate complete
// successfully with an empty list.
func (s *Service) CommonTeammates(ctx context.Context, req TeammatesRequest) (*TeammatesResult, *Error) {
	if req.Player1ID == "" || req.Player2ID == "" {
		return nil, invalidParameter("player1_id and player2_id are required")
	}
	if req.Player1ID == req.Player2ID {
		return nil, invalidParameter("player1_id and player2_id must differ")
	}
	limit, qerr := clampLimit(req.Limit)
	if qerr != nil {
		return nil, qerr
	}

	var result TeammatesResult
	elapsed, qerr := s.run(ctx, "common_teammates", func(ctx context.Context) error {
		player1, err := s.fetchPlayer(ctx, req.Player1ID)
		if err != nil {
			return err
		}
		player2, err := s.fetchPlayer(ctx, req.Player2ID)
		if err != nil {
			return err
		}

		asOf := s.asOf(req.AsOf)
		with1, err := s.overlappingPlayers(ctx, req.Player1ID, asOf)
		if err != nil {
			return err
		}
		with2, err := s.overlappingPlayers(ctx, req.Player2ID, asOf)
		if err != nil {
			return err
		}

		var teammates []Teammate
		for playerID, stints1 := range with1 {
			stints2, shared := with2[playerID]
			if !shared || playerID == req.Player1ID || playerID == req.Player2ID {
				continue
			}
			// Both overlaps must have happened at one club; stints at
			// clubs where only one subject was present are discarded.
			clubs := sharedClubs(stints1, stints2)
			if len(clubs) == 0 {
				continue
			}
			player, err := s.fetchPlayer(ctx, playerID)
			if err != nil {
				return err
			}
			teammates = append(teammates, Teammate{
				Player:      player,
				WithPlayer1: stintsAt(stints1, clubs),
				WithPlayer2: stintsAt(stints2, clubs),
			})
		}
		sort.Slice(teammates, func(i, j int) bool {
			a, b := teammates[i], teammates[j]
			if a.Player.Name != b.Player.Name {
				return a.Player.Name < b.Player.Name
			}
			return a.Player.ID < b.Player.ID
		})
		if len(teammates) > limit {
			teammates = teammates[:limit]
			result.Meta.Truncated = true
		}

		result.Player1 = player1
		result.Player2 = player2
		result.Teammates = teammates
		return nil
	})
	if qerr != nil {
		return nil, qerr
	}
	result.Meta.QueryTimeMs = elapsed
	return &result, nil
}

// sharedClubs returns the team IDs appearing in both stint lists.
func sharedClubs(a, b []SharedStint) map[string]bool {
	inA := make(map[string]bool, len(a))
	for _, stint := range a {
		inA[stint.TeamID] = true
	}
	shared := make(map[string]bool)
	for _, stint := range b {
		if inA[stint.TeamID] {
			shared[stint.TeamID] = true
		}
	}
	return shared
}

// stintsAt filters stints to the given teams.
func stintsAt(stints []SharedStint, teams map[string]bool) []SharedStint {
	out := make([]SharedStint, 0, len(stints))
	for _, stint := range stints {
		if teams[stint.TeamID] {
			out = append(out, stint)
		}
	}
	return out
}

// overlappingPlayers walks the subject's memberships, pulls each team's
// roster, and collects every other player whose tenure there overlapped the
// subject's, with the shared window.
func (s *Service) overlappingPlayers(ctx context.Context, playerID string, asOf time.Time) (map[string][]SharedStint, error) {
	records, err := s.store.FetchRelationships(ctx, driver.RelPlaysFor,
		driver.LabelPlayer, driver.LabelTeam,
		driver.Filters{"start_id": driver.Eq(playerID)}, 0)
	if err != nil {
		return nil, err
	}
	own := s.project.Memberships(records)

	teamIDs := make(map[string]bool, len(own))
	for _, mem := range own {
		teamIDs[mem.TeamID] = true
	}
	names, err := s.teamNames(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	overlaps := make(map[string][]SharedStint)
	for _, mem := range own {
		roster, err := s.store.FetchRelationships(ctx, driver.RelPlaysFor,
			driver.LabelPlayer, driver.LabelTeam,
			driver.Filters{"end_id": driver.Eq(mem.TeamID)}, 0)
		if err != nil {
			return nil, err
		}
		for _, other := range s.project.Memberships(roster) {
			if other.PlayerID == playerID {
				continue
			}
			window, ok := mem.Interval().Overlap(other.Interval(), asOf)
			if !ok {
				continue
			}
			overlaps[other.PlayerID] = append(overlaps[other.PlayerID], SharedStint{
				TeamID:   mem.TeamID,
				TeamName: names[mem.TeamID],
				From:     window.Start,
				To:       window.End,
			})
		}
	}
	for _, stints := range overlaps {
		sort.Slice(stints, func(i, j int) bool { return stints[i].From.Before(stints[j].From) })
	}
	return overlaps, nil
}
