package query

import (
	"context"
	"errors"
	"time"

	"github.com/futgraph/futgraph/pkg/pattern"
)

// CareerPathRequest is a criteria conjunction plus paging.
type CareerPathRequest struct {
	Criteria pattern.Criteria `json:"criteria"`
	Limit    int              `json:"limit,omitempty"`
	AsOf     *time.Time       `json:"as_of,omitempty"`
}

// CareerPathResult lists matching players with their criteria breakdowns.
type CareerPathResult struct {
	Matches []pattern.Match `json:"matches"`
	Meta    Meta            `json:"meta"`
}

// CareerPathMatch finds players whose careers satisfy every given criterion.
// No criteria at all is an invalid request; criteria that simply match
// nobody complete successfully with an empty list.
func (s *Service) CareerPathMatch(ctx context.Context, req CareerPathRequest) (*CareerPathResult, *Error) {
	if req.Criteria.Empty() {
		return nil, invalidParameter("at least one career criterion is required")
	}
	if req.Criteria.MinGoals != nil && *req.Criteria.MinGoals < 0 {
		return nil, invalidParameter("min_goals must not be negative")
	}
	limit, qerr := clampLimit(req.Limit)
	if qerr != nil {
		return nil, qerr
	}

	var result CareerPathResult
	elapsed, qerr := s.run(ctx, "career_path_match", func(ctx context.Context) error {
		matches, err := s.matcher.Evaluate(ctx, req.Criteria, s.asOf(req.AsOf))
		if err != nil {
			if errors.Is(err, pattern.ErrNoCriteria) {
				return invalidParameter("at least one career criterion is required")
			}
			return err
		}
		if len(matches) > limit {
			matches = matches[:limit]
			result.Meta.Truncated = true
		}
		result.Matches = matches
		return nil
	})
	if qerr != nil {
		return nil, qerr
	}
	result.Meta.QueryTimeMs = elapsed
	return &result, nil
}
