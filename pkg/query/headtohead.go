package query

import (
	"context"
	"time"

	"github.com/futgraph/futgraph/pkg/engine"
	"github.com/futgraph/futgraph/pkg/types"
)

// HeadToHeadRequest identifies a fixture pairing. Season and DateRange are
// optional narrowing filters and are mutually exclusive.
type HeadToHeadRequest struct {
	Team1ID   string          `json:"team1_id"`
	Team2ID   string          `json:"team2_id"`
	Season    string          `json:"season,omitempty"`
	DateRange *types.Interval `json:"date_range,omitempty"`
	Limit     int             `json:"limit,omitempty"`
	AsOf      *time.Time      `json:"as_of,omitempty"`
}

// HeadToHeadResult is the aggregate record plus the most recent meetings.
type HeadToHeadResult struct {
	Team1         types.Team        `json:"team1"`
	Team2         types.Team        `json:"team2"`
	Record        engine.HeadToHead `json:"record"`
	RecentMatches []types.Match     `json:"recent_matches"`
	Meta          Meta              `json:"meta"`
}

// HeadToHead aggregates the completed fixtures between two teams. Pairings
// that have never met complete successfully with a zeroed record.
func (s *Service) HeadToHead(ctx context.Context, req HeadToHeadRequest) (*HeadToHeadResult, *Error) {
	if req.Team1ID == "" || req.Team2ID == "" {
		return nil, invalidParameter("team1_id and team2_id are required")
	}
	if req.Team1ID == req.Team2ID {
		return nil, invalidParameter("team1_id and team2_id must differ")
	}
	if req.Season != "" && req.DateRange != nil {
		return nil, invalidParameter("season and date_range are mutually exclusive")
	}
	limit, qerr := clampLimit(req.Limit)
	if qerr != nil {
		return nil, qerr
	}

	var result HeadToHeadResult
	elapsed, qerr := s.run(ctx, "head_to_head", func(ctx context.Context) error {
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
		matches, err = s.narrowMatches(ctx, matches, req.Season, req.DateRange, s.asOf(req.AsOf))
		if err != nil {
			return err
		}
		completed := completedOnly(matches)

		byDateDesc(completed)
		recent, truncated := truncate(completed, limit)

		result.Team1 = team1
		result.Team2 = team2
		result.Record = engine.ComputeHeadToHead(req.Team1ID, req.Team2ID, completed)
		result.RecentMatches = recent
		result.Meta.Truncated = truncated
		return nil
	})
	if qerr != nil {
		return nil, qerr
	}
	result.Meta.QueryTimeMs = elapsed
	return &result, nil
}

// narrowMatches applies the optional season or date-range filter. A season
// narrows to matches of competitions carrying that season label.
func (s *Service) narrowMatches(ctx context.Context, matches []types.Match, season string, dateRange *types.Interval, asOf time.Time) ([]types.Match, error) {
	switch {
	case season != "":
		// Matches carry their edition's season label; a match outside any
		// edition never satisfies a season filter.
		out := make([]types.Match, 0, len(matches))
		for _, m := range matches {
			if m.Season == season {
				out = append(out, m)
			}
		}
		return out, nil
	case dateRange != nil:
		out := make([]types.Match, 0, len(matches))
		for _, m := range matches {
			if dateRange.Contains(m.Date, asOf) {
				out = append(out, m)
			}
		}
		return out, nil
	}
	return matches, nil
}
