package query

import (
	"context"

	"github.com/futgraph/futgraph/pkg/engine"
	"github.com/futgraph/futgraph/pkg/types"
)

// StandingsRequest identifies one competition season.
type StandingsRequest struct {
	CompetitionID string `json:"competition_id"`
	Season        string `json:"season"`
}

// StandingsResult is a full league table.
type StandingsResult struct {
	Competition types.Competition    `json:"competition"`
	Table       []engine.StandingRow `json:"table"`
	Meta        Meta                 `json:"meta"`
}

// CompetitionStandings computes the table of a competition season from its
// completed matches. Scheduled, postponed, and cancelled fixtures contribute
// nothing; a season with no completed match is insufficient data.
func (s *Service) CompetitionStandings(ctx context.Context, req StandingsRequest) (*StandingsResult, *Error) {
	if req.CompetitionID == "" {
		return nil, invalidParameter("competition_id is required")
	}
	if req.Season == "" {
		return nil, invalidParameter("season is required")
	}

	var result StandingsResult
	elapsed, qerr := s.run(ctx, "competition_standings", func(ctx context.Context) error {
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

		names, err := s.teamNames(ctx, involvedTeams(completed))
		if err != nil {
			return err
		}

		result.Competition = competition
		result.Table = engine.ComputeStandings(completed, names)
		return nil
	})
	if qerr != nil {
		return nil, qerr
	}
	result.Meta.QueryTimeMs = elapsed
	return &result, nil
}
