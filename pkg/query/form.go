package query

import (
	"context"

	"github.com/futgraph/futgraph/pkg/engine"
	"github.com/futgraph/futgraph/pkg/types"
)

// FormRequest asks for a team's recent results. Matches defaults to five.
type FormRequest struct {
	TeamID  string `json:"team_id"`
	Matches int    `json:"matches,omitempty"`
}

const defaultFormWindow = 5

// FormResult is the recent-results summary.
type FormResult struct {
	Team types.Team  `json:"team"`
	Form engine.Form `json:"form"`
	Meta Meta        `json:"meta"`
}

// TeamForm summarizes a team's most recent completed matches as a result
// string with points and win rate. A team with no completed matches is
// insufficient data.
func (s *Service) TeamForm(ctx context.Context, req FormRequest) (*FormResult, *Error) {
	if req.TeamID == "" {
		return nil, invalidParameter("team_id is required")
	}
	if req.Matches < 0 {
		return nil, invalidParameter("matches must not be negative, got %d", req.Matches)
	}
	window := req.Matches
	if window == 0 {
		window = defaultFormWindow
	}

	var result FormResult
	elapsed, qerr := s.run(ctx, "team_form", func(ctx context.Context) error {
		team, err := s.fetchTeam(ctx, req.TeamID)
		if err != nil {
			return err
		}
		matches, err := s.matchesForTeam(ctx, req.TeamID)
		if err != nil {
			return err
		}
		form, err := engine.ComputeForm(req.TeamID, completedOnly(matches), window)
		if err != nil {
			return err
		}
		result.Team = team
		result.Form = form
		return nil
	})
	if qerr != nil {
		return nil, qerr
	}
	result.Meta.QueryTimeMs = elapsed
	return &result, nil
}
