package query

import (
	"context"
	"sort"
	"time"

	"github.com/futgraph/futgraph/pkg/driver"
	"github.com/futgraph/futgraph/pkg/types"
)

// SearchPlayersRequest is a player search by name fragment and optional
// scalar filters.
type SearchPlayersRequest struct {
	Name        string `json:"name"`
	TeamID      string `json:"team_id,omitempty"`
	Position    string `json:"position,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

// SearchPlayersResult lists matches ordered by name.
type SearchPlayersResult struct {
	Players []types.Player `json:"players"`
	Meta    Meta           `json:"meta"`
}

// SearchPlayers finds players by case-insensitive name fragment. An empty
// result is a successful search, not an error.
func (s *Service) SearchPlayers(ctx context.Context, req SearchPlayersRequest) (*SearchPlayersResult, *Error) {
	if req.Name == "" {
		return nil, invalidParameter("name is required")
	}
	if req.Position != "" && types.ParsePosition(req.Position) == types.UnknownPosition {
		return nil, invalidParameter("unknown position %q", req.Position)
	}
	limit, qerr := clampLimit(req.Limit)
	if qerr != nil {
		return nil, qerr
	}

	filters := driver.Filters{"name": driver.Contains(req.Name)}
	if req.Position != "" {
		filters["position"] = driver.Eq(string(types.ParsePosition(req.Position)))
	}
	if req.Nationality != "" {
		filters["nationality"] = driver.Eq(req.Nationality)
	}

	// The team filter runs after the fetch, so the fetch must stay
	// unbounded for it; capping first would drop team members that sit
	// beyond the first page of name matches.
	fetchLimit := limit + 1
	if req.TeamID != "" {
		fetchLimit = 0
	}

	var result SearchPlayersResult
	elapsed, qerr := s.run(ctx, "search_players", func(ctx context.Context) error {
		records, err := s.store.FetchNodes(ctx, driver.LabelPlayer, filters, fetchLimit)
		if err != nil {
			return err
		}
		players := s.project.Players(records)
		if req.TeamID != "" {
			// Any stint at the team counts, not just the current roster.
			served, err := s.teamAlumni(ctx, req.TeamID)
			if err != nil {
				return err
			}
			kept := players[:0]
			for _, p := range players {
				if served[p.ID] {
					kept = append(kept, p)
				}
			}
			players = kept
		}
		sort.Slice(players, func(i, j int) bool {
			if players[i].Name != players[j].Name {
				return players[i].Name < players[j].Name
			}
			return players[i].ID < players[j].ID
		})
		if len(players) > limit {
			players = players[:limit]
			result.Meta.Truncated = true
		}
		result.Players = players
		return nil
	})
	if qerr != nil {
		return nil, qerr
	}
	result.Meta.QueryTimeMs = elapsed
	return &result, nil
}

// PlayerStatsRequest identifies one player.
type PlayerStatsRequest struct {
	PlayerID string `json:"player_id"`
}

// PlayerStatsResult aggregates a player's scoring and discipline record.
type PlayerStatsResult struct {
	Player      types.Player   `json:"player"`
	Goals       int            `json:"goals"`
	GoalsByType map[string]int `json:"goals_by_type,omitempty"`
	Assists     int            `json:"assists"`
	YellowCards int            `json:"yellow_cards"`
	RedCards    int            `json:"red_cards"`
	Meta        Meta           `json:"meta"`
}

// PlayerStats aggregates career goals (own goals tallied separately, never
// as scored goals), assists credited from scoring events, and cards.
func (s *Service) PlayerStats(ctx context.Context, req PlayerStatsRequest) (*PlayerStatsResult, *Error) {
	if req.PlayerID == "" {
		return nil, invalidParameter("player_id is required")
	}

	var result PlayerStatsResult
	elapsed, qerr := s.run(ctx, "player_stats", func(ctx context.Context) error {
		player, err := s.fetchPlayer(ctx, req.PlayerID)
		if err != nil {
			return err
		}
		result.Player = player

		scored, err := s.store.FetchRelationships(ctx, driver.RelScoredIn,
			driver.LabelPlayer, driver.LabelMatch,
			driver.Filters{"start_id": driver.Eq(req.PlayerID)}, 0)
		if err != nil {
			return err
		}
		byType := make(map[string]int)
		for _, g := range s.project.Goals(scored) {
			byType[string(g.Type)]++
			if !g.OwnGoal() {
				result.Goals++
			}
		}
		if len(byType) > 0 {
			result.GoalsByType = byType
		}

		assisted, err := s.store.FetchRelationships(ctx, driver.RelScoredIn,
			driver.LabelPlayer, driver.LabelMatch,
			driver.Filters{"assist_player_id": driver.Eq(req.PlayerID)}, 0)
		if err != nil {
			return err
		}
		for _, g := range s.project.Goals(assisted) {
			if !g.OwnGoal() {
				result.Assists++
			}
		}

		cards, err := s.store.FetchRelationships(ctx, driver.RelReceivedCard,
			driver.LabelPlayer, driver.LabelMatch,
			driver.Filters{"start_id": driver.Eq(req.PlayerID)}, 0)
		if err != nil {
			return err
		}
		for _, c := range s.project.Cards(cards) {
			switch c.Type {
			case types.YellowCard:
				result.YellowCards++
			case types.RedCard:
				result.RedCards++
			}
		}
		return nil
	})
	if qerr != nil {
		return nil, qerr
	}
	result.Meta.QueryTimeMs = elapsed
	return &result, nil
}

// CareerRequest identifies one player. Limit caps the stint and transfer
// lists independently.
type CareerRequest struct {
	PlayerID string     `json:"player_id"`
	Limit    int        `json:"limit,omitempty"`
	AsOf     *time.Time `json:"as_of,omitempty"`
}

// CareerStint is one club tenure in a career listing.
type CareerStint struct {
	TeamID   string     `json:"team_id"`
	TeamName string     `json:"team_name"`
	From     time.Time  `json:"from"`
	To       *time.Time `json:"to,omitempty"`
	Current  bool       `json:"current"`
}

// CareerResult lists a player's club history oldest first.
type CareerResult struct {
	Player types.Player     `json:"player"`
	Stints []CareerStint    `json:"stints"`
	Moves  []types.Transfer `json:"transfers,omitempty"`
	Meta   Meta             `json:"meta"`
}

// PlayerCareer lists a player's club tenures in chronological order, with
// recorded transfers between them.
func (s *Service) PlayerCareer(ctx context.Context, req CareerRequest) (*CareerResult, *Error) {
	if req.PlayerID == "" {
		return nil, invalidParameter("player_id is required")
	}
	limit, qerr := clampLimit(req.Limit)
	if qerr != nil {
		return nil, qerr
	}

	var result CareerResult
	elapsed, qerr := s.run(ctx, "player_career", func(ctx context.Context) error {
		player, err := s.fetchPlayer(ctx, req.PlayerID)
		if err != nil {
			return err
		}

		records, err := s.store.FetchRelationships(ctx, driver.RelPlaysFor,
			driver.LabelPlayer, driver.LabelTeam,
			driver.Filters{"start_id": driver.Eq(req.PlayerID)}, 0)
		if err != nil {
			return err
		}
		memberships := s.project.Memberships(records)
		sort.Slice(memberships, func(i, j int) bool {
			return memberships[i].Start.Before(memberships[j].Start)
		})

		teamIDs := make(map[string]bool, len(memberships))
		for _, mem := range memberships {
			teamIDs[mem.TeamID] = true
		}
		names, err := s.teamNames(ctx, teamIDs)
		if err != nil {
			return err
		}

		asOf := s.asOf(req.AsOf)
		stints := make([]CareerStint, 0, len(memberships))
		for _, mem := range memberships {
			stints = append(stints, CareerStint{
				TeamID:   mem.TeamID,
				TeamName: names[mem.TeamID],
				From:     mem.Start,
				To:       mem.End,
				Current:  mem.Current(asOf),
			})
		}

		moves, err := s.store.FetchRelationships(ctx, driver.RelTransferred,
			driver.LabelPlayer, driver.LabelTeam,
			driver.Filters{"start_id": driver.Eq(req.PlayerID)}, 0)
		if err != nil {
			return err
		}
		transfers := s.project.Transfers(moves)
		sort.Slice(transfers, func(i, j int) bool {
			return transfers[i].Date.Before(transfers[j].Date)
		})

		if len(stints) > limit {
			stints = stints[:limit]
			result.Meta.Truncated = true
		}
		if len(transfers) > limit {
			transfers = transfers[:limit]
			result.Meta.Truncated = true
		}

		result.Player = player
		result.Stints = stints
		result.Moves = transfers
		return nil
	})
	if qerr != nil {
		return nil, qerr
	}
	result.Meta.QueryTimeMs = elapsed
	return &result, nil
}
