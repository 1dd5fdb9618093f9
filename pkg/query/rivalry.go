package query

import (
	"context"
	"time"

	"github.com/futgraph/futgraph/pkg/engine"
	"github.com/futgraph/futgraph/pkg/types"
)

// RivalryRequest identifies a team pairing to score.
type RivalryRequest struct {
	Team1ID string     `json:"team1_id"`
	Team2ID string     `json:"team2_id"`
	AsOf    *time.Time `json:"as_of,omitempty"`
}

// rivalryScorerLimit caps the scorer list so the pairing summary stays small.
const rivalryScorerLimit = 3

// RivalryResult is the intensity score plus the record, the biggest win of
// each side, and the players who scored most across the pairing's meetings.
type RivalryResult struct {
	Team1           types.Team           `json:"team1"`
	Team2           types.Team           `json:"team2"`
	Score           engine.RivalryScore  `json:"rivalry"`
	Record          engine.HeadToHead    `json:"record"`
	Team1BiggestWin []engine.MatchMargin `json:"team1_biggest_wins,omitempty"`
	Team2BiggestWin []engine.MatchMargin `json:"team2_biggest_wins,omitempty"`
	TopScorers      []engine.ScorerRow   `json:"top_scorers,omitempty"`
	Meta            Meta                 `json:"meta"`
}

// RivalryStats scores the intensity of a pairing from meeting count, recent
// frequency, and attendance. A pairing with no completed meetings is
// insufficient data, unlike head-to-head which reports a zero record.
func (s *Service) RivalryStats(ctx context.Context, req RivalryRequest) (*RivalryResult, *Error) {
	if req.Team1ID == "" || req.Team2ID == "" {
		return nil, invalidParameter("team1_id and team2_id are required")
	}
	if req.Team1ID == req.Team2ID {
		return nil, invalidParameter("team1_id and team2_id must differ")
	}

	var result RivalryResult
	elapsed, qerr := s.run(ctx, "rivalry_stats", func(ctx context.Context) error {
		team1, err := s.fetchTeam(ctx, req.Team1ID)
		if err != nil {
			return err
		}
		team2, err := s.fetchTeam(ctx, req.Team2ID)
		if err != nil {
			return err
		}

		matches, err := s.matchesBetween(ctx, req.Team1ID, req.Team2ID)
		if err != nil {
			return err
		}
		completed := completedOnly(matches)

		score, err := engine.ComputeRivalryScore(completed, s.asOf(req.AsOf))
		if err != nil {
			return err
		}

		result.Team1 = team1
		result.Team2 = team2
		result.Score = score
		result.Record = engine.ComputeHeadToHead(req.Team1ID, req.Team2ID, completed)
		result.Team1BiggestWin = engine.BiggestWins(req.Team1ID, completed, 1)
		result.Team2BiggestWin = engine.BiggestWins(req.Team2ID, completed, 1)

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
		scorers := engine.TopScorers(goals, players, names)
		if len(scorers) > rivalryScorerLimit {
			scorers = scorers[:rivalryScorerLimit]
		}
		result.TopScorers = scorers
		return nil
	})
	if qerr != nil {
		return nil, qerr
	}
	result.Meta.QueryTimeMs = elapsed
	return &result, nil
}
