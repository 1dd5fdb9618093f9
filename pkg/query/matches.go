package query

import (
	"context"
	"sort"

	"github.com/futgraph/futgraph/pkg/driver"
	"github.com/futgraph/futgraph/pkg/types"
)

// CompetitionMatchesRequest lists fixtures of a competition season,
// optionally narrowed to one team's fixtures.
type CompetitionMatchesRequest struct {
	CompetitionID string `json:"competition_id"`
	Season        string `json:"season"`
	TeamID        string `json:"team_id,omitempty"`
	Limit         int    `json:"limit,omitempty"`
}

// CompetitionMatchesResult lists fixtures newest first.
type CompetitionMatchesResult struct {
	Competition types.Competition `json:"competition"`
	Matches     []types.Match     `json:"matches"`
	Meta        Meta              `json:"meta"`
}

// CompetitionMatches lists all fixtures of a competition season, scheduled
// ones included, newest first.
func (s *Service) CompetitionMatches(ctx context.Context, req CompetitionMatchesRequest) (*CompetitionMatchesResult, *Error) {
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

	var result CompetitionMatchesResult
	elapsed, qerr := s.run(ctx, "competition_matches", func(ctx context.Context) error {
		competition, err := s.fetchCompetition(ctx, req.CompetitionID, req.Season)
		if err != nil {
			return err
		}
		matches, err := s.matchesForCompetition(ctx, req.CompetitionID, req.Season)
		if err != nil {
			return err
		}
		if req.TeamID != "" {
			kept := matches[:0]
			for _, m := range matches {
				if m.HomeTeamID == req.TeamID || m.AwayTeamID == req.TeamID {
					kept = append(kept, m)
				}
			}
			matches = kept
		}
		byDateDesc(matches)
		matches, truncated := truncate(matches, limit)

		result.Competition = competition
		result.Matches = matches
		result.Meta.Truncated = truncated
		return nil
	})
	if qerr != nil {
		return nil, qerr
	}
	result.Meta.QueryTimeMs = elapsed
	return &result, nil
}

// MatchDetailsRequest identifies one match.
type MatchDetailsRequest struct {
	MatchID string `json:"match_id"`
}

// MatchScorer is one scoring event with the scorer resolved.
type MatchScorer struct {
	Player  types.Player   `json:"player"`
	TeamID  string         `json:"team_id"`
	Minute  int            `json:"minute"`
	Type    types.GoalType `json:"goal_type"`
	OwnGoal bool           `json:"own_goal,omitempty"`
}

// MatchDetailsResult is one match with its teams, scorers, and cards.
type MatchDetailsResult struct {
	Match    types.Match       `json:"match"`
	HomeTeam types.Team        `json:"home_team"`
	AwayTeam types.Team        `json:"away_team"`
	Scorers  []MatchScorer     `json:"scorers,omitempty"`
	Cards    []types.CardEvent `json:"cards,omitempty"`
	Meta     Meta              `json:"meta"`
}

// MatchDetails resolves one match with its scoring and discipline timeline
// in minute order.
func (s *Service) MatchDetails(ctx context.Context, req MatchDetailsRequest) (*MatchDetailsResult, *Error) {
	if req.MatchID == "" {
		return nil, invalidParameter("match_id is required")
	}

	var result MatchDetailsResult
	elapsed, qerr := s.run(ctx, "match_details", func(ctx context.Context) error {
		match, err := s.fetchMatch(ctx, req.MatchID)
		if err != nil {
			return err
		}
		homeTeam, err := s.fetchTeam(ctx, match.HomeTeamID)
		if err != nil {
			return err
		}
		awayTeam, err := s.fetchTeam(ctx, match.AwayTeamID)
		if err != nil {
			return err
		}

		scored, err := s.store.FetchRelationships(ctx, driver.RelScoredIn,
			driver.LabelPlayer, driver.LabelMatch,
			driver.Filters{"end_id": driver.Eq(req.MatchID)}, 0)
		if err != nil {
			return err
		}
		goals := s.project.Goals(scored)

		players, err := s.playersByID(ctx, scorerAndAssistIDs(goals))
		if err != nil {
			return err
		}
		scorers := make([]MatchScorer, 0, len(goals))
		for _, g := range goals {
			scorer := MatchScorer{
				TeamID:  g.TeamID,
				Minute:  g.Minute,
				Type:    g.Type,
				OwnGoal: g.OwnGoal(),
			}
			if p, ok := players[g.PlayerID]; ok {
				scorer.Player = p
			} else {
				scorer.Player = types.Player{ID: g.PlayerID, Name: g.PlayerID}
			}
			scorers = append(scorers, scorer)
		}
		sort.Slice(scorers, func(i, j int) bool {
			if scorers[i].Minute != scorers[j].Minute {
				return scorers[i].Minute < scorers[j].Minute
			}
			return scorers[i].Player.ID < scorers[j].Player.ID
		})

		booked, err := s.store.FetchRelationships(ctx, driver.RelReceivedCard,
			driver.LabelPlayer, driver.LabelMatch,
			driver.Filters{"end_id": driver.Eq(req.MatchID)}, 0)
		if err != nil {
			return err
		}
		cards := s.project.Cards(booked)
		sort.Slice(cards, func(i, j int) bool {
			if cards[i].Minute != cards[j].Minute {
				return cards[i].Minute < cards[j].Minute
			}
			return cards[i].PlayerID < cards[j].PlayerID
		})

		result.Match = match
		result.HomeTeam = homeTeam
		result.AwayTeam = awayTeam
		result.Scorers = scorers
		result.Cards = cards
		return nil
	})
	if qerr != nil {
		return nil, qerr
	}
	result.Meta.QueryTimeMs = elapsed
	return &result, nil
}

// scorerAndAssistIDs collects scorer IDs including own-goal scorers: match
// timelines show who scored, even against their own side.
func scorerAndAssistIDs(goals []types.GoalEvent) map[string]bool {
	ids := make(map[string]bool, len(goals))
	for _, g := range goals {
		ids[g.PlayerID] = true
		if g.AssistPlayerID != "" {
			ids[g.AssistPlayerID] = true
		}
	}
	return ids
}
