package query

import (
	"context"

	"github.com/futgraph/futgraph/pkg/driver"
	"github.com/futgraph/futgraph/pkg/engine"
	"github.com/futgraph/futgraph/pkg/types"
)

// TopScorersRequest identifies a competition season and an optional limit.
type TopScorersRequest struct {
	CompetitionID string `json:"competition_id"`
	Season        string `json:"season"`
	Limit         int    `json:"limit,omitempty"`
}

// TopScorersResult ranks scorers by goals, assists breaking ties.
type TopScorersResult struct {
	Competition types.Competition  `json:"competition"`
	Scorers     []engine.ScorerRow `json:"scorers"`
	Meta        Meta               `json:"meta"`
}

// TopScorers ranks the goal scorers of a competition season. Own goals never
// count toward a scorer's tally.
func (s *Service) TopScorers(ctx context.Context, req TopScorersRequest) (*TopScorersResult, *Error) {
	if req.CompetitionID == "" {
		return nil, invalidParameter("competition_id is required")
	}
	if req.Season == "" {
		return nil, invalidParameter("season is required")
	}
	limit, qerr := clampLimit(req.Limit)
	if qerr != nil {
		return nil, qerr
	}

	var result TopScorersResult
	elapsed, qerr := s.run(ctx, "top_scorers", func(ctx context.Context) error {
		competition, err := s.fetchCompetition(ctx, req.CompetitionID, req.Season)
		if err != nil {
			return err
		}

		matches, err := s.matchesForCompetition(ctx, req.CompetitionID, req.Season)
		if err != nil {
			return err
		}
		completed := completedOnly(matches)
		if len(completed) == 0 {
			return insufficientData("competition %s season %s has no completed matches",
				req.CompetitionID, req.Season)
		}

		goals, err := s.goalsForMatches(ctx, completed)
		if err != nil {
			return err
		}

		players, err := s.playersByID(ctx, scorerIDs(goals))
		if err != nil {
			return err
		}
		names, err := s.teamNames(ctx, goalTeams(goals))
		if err != nil {
			return err
		}

		rows := engine.TopScorers(goals, players, names)
		if len(rows) > limit {
			rows = rows[:limit]
			result.Meta.Truncated = true
		}
		result.Competition = competition
		result.Scorers = rows
		return nil
	})
	if qerr != nil {
		return nil, qerr
	}
	result.Meta.QueryTimeMs = elapsed
	return &result, nil
}

// goalsForMatches fetches scoring events per match, keeping the fetch cost
// proportional to the fixture list rather than the whole goal population.
func (s *Service) goalsForMatches(ctx context.Context, matches []types.Match) ([]types.GoalEvent, error) {
	var goals []types.GoalEvent
	for _, m := range matches {
		records, err := s.store.FetchRelationships(ctx, driver.RelScoredIn,
			driver.LabelPlayer, driver.LabelMatch,
			driver.Filters{"end_id": driver.Eq(m.ID)}, 0)
		if err != nil {
			return nil, err
		}
		goals = append(goals, s.project.Goals(records)...)
	}
	return goals, nil
}

// playersByID resolves a set of player IDs. Unknown IDs are skipped; the
// engine renders such rows with the raw ID.
func (s *Service) playersByID(ctx context.Context, ids map[string]bool) (map[string]types.Player, error) {
	players := make(map[string]types.Player, len(ids))
	for id := range ids {
		records, err := s.store.FetchNodes(ctx, driver.LabelPlayer,
			driver.Filters{"player_id": driver.Eq(id)}, 1)
		if err != nil {
			return nil, err
		}
		for _, p := range s.project.Players(records) {
			players[p.ID] = p
		}
	}
	return players, nil
}

func scorerIDs(goals []types.GoalEvent) map[string]bool {
	ids := make(map[string]bool, len(goals))
	for _, g := range goals {
		if g.OwnGoal() {
			continue
		}
		ids[g.PlayerID] = true
		if g.AssistPlayerID != "" {
			ids[g.AssistPlayerID] = true
		}
	}
	return ids
}

func goalTeams(goals []types.GoalEvent) map[string]bool {
	ids := make(map[string]bool, len(goals))
	for _, g := range goals {
		if g.TeamID != "" {
			ids[g.TeamID] = true
		}
	}
	return ids
}
