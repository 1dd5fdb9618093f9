package query

import (
	"context"
	"sort"

	"github.com/futgraph/futgraph/pkg/driver"
	"github.com/futgraph/futgraph/pkg/types"
)

// Shared fetch helpers. Every lookup that can miss resolves to a NotFound
// error carrying best-effort name suggestions, so callers never have to
// guess whether an empty result meant "no such entity" or "no data".

func (s *Service) fetchPlayer(ctx context.Context, playerID string) (types.Player, error) {
	records, err := s.store.FetchNodes(ctx, driver.LabelPlayer,
		driver.Filters{"player_id": driver.Eq(playerID)}, 1)
	if err != nil {
		return types.Player{}, err
	}
	players := s.project.Players(records)
	if len(players) == 0 {
		return types.Player{}, notFound("player", playerID, s.suggestNames(ctx, driver.LabelPlayer, playerID))
	}
	return players[0], nil
}

func (s *Service) fetchTeam(ctx context.Context, teamID string) (types.Team, error) {
	records, err := s.store.FetchNodes(ctx, driver.LabelTeam,
		driver.Filters{"team_id": driver.Eq(teamID)}, 1)
	if err != nil {
		return types.Team{}, err
	}
	teams := s.project.Teams(records)
	if len(teams) == 0 {
		return types.Team{}, notFound("team", teamID, s.suggestNames(ctx, driver.LabelTeam, teamID))
	}
	return teams[0], nil
}

func (s *Service) fetchCompetition(ctx context.Context, competitionID, season string) (types.Competition, error) {
	filters := driver.Filters{"competition_id": driver.Eq(competitionID)}
	if season != "" {
		filters["season"] = driver.Eq(season)
	}
	records, err := s.store.FetchNodes(ctx, driver.LabelCompetition, filters, 1)
	if err != nil {
		return types.Competition{}, err
	}
	comps := s.project.Competitions(records)
	if len(comps) == 0 {
		return types.Competition{}, notFound("competition", competitionID,
			s.suggestNames(ctx, driver.LabelCompetition, competitionID))
	}
	return comps[0], nil
}

func (s *Service) fetchMatch(ctx context.Context, matchID string) (types.Match, error) {
	records, err := s.store.FetchNodes(ctx, driver.LabelMatch,
		driver.Filters{"match_id": driver.Eq(matchID)}, 1)
	if err != nil {
		return types.Match{}, err
	}
	matches := s.project.Matches(records)
	if len(matches) == 0 {
		return types.Match{}, notFound("match", matchID, nil)
	}
	return matches[0], nil
}

// suggestNames looks up a handful of entities whose name contains the missed
// identifier. Lookup failures degrade to no suggestions; the original
// NotFound still surfaces.
func (s *Service) suggestNames(ctx context.Context, label, query string) []string {
	if query == "" {
		return nil
	}
	records, err := s.store.FetchNodes(ctx, label,
		driver.Filters{"name": driver.Contains(query)}, suggestionLimit)
	if err != nil {
		return nil
	}
	var names []string
	for _, rec := range records {
		if name, ok := driver.AsString(rec["name"]); ok && name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// matchesForTeam fetches every match the team appears in, home or away.
// Projection deduplicates matches reached from both sides.
func (s *Service) matchesForTeam(ctx context.Context, teamID string) ([]types.Match, error) {
	home, err := s.store.FetchNodes(ctx, driver.LabelMatch,
		driver.Filters{"home_team_id": driver.Eq(teamID)}, 0)
	if err != nil {
		return nil, err
	}
	away, err := s.store.FetchNodes(ctx, driver.LabelMatch,
		driver.Filters{"away_team_id": driver.Eq(teamID)}, 0)
	if err != nil {
		return nil, err
	}
	return s.project.Matches(append(home, away...)), nil
}

// matchesBetween fetches all fixtures between two teams in either venue
// arrangement.
func (s *Service) matchesBetween(ctx context.Context, team1ID, team2ID string) ([]types.Match, error) {
	first, err := s.store.FetchNodes(ctx, driver.LabelMatch, driver.Filters{
		"home_team_id": driver.Eq(team1ID),
		"away_team_id": driver.Eq(team2ID),
	}, 0)
	if err != nil {
		return nil, err
	}
	second, err := s.store.FetchNodes(ctx, driver.LabelMatch, driver.Filters{
		"home_team_id": driver.Eq(team2ID),
		"away_team_id": driver.Eq(team1ID),
	}, 0)
	if err != nil {
		return nil, err
	}
	return s.project.Matches(append(first, second...)), nil
}

// matchesForCompetition fetches the fixtures of one competition edition.
// The (competition_id, season) pair addresses the edition; scoping by
// competition_id alone would mix every season of the competition together.
func (s *Service) matchesForCompetition(ctx context.Context, competitionID, season string) ([]types.Match, error) {
	records, err := s.store.FetchNodes(ctx, driver.LabelMatch, driver.Filters{
		"competition_id": driver.Eq(competitionID),
		"season":         driver.Eq(season),
	}, 0)
	if err != nil {
		return nil, err
	}
	return s.project.Matches(records), nil
}

// teamNames resolves the given team IDs to display names. Unknown IDs map to
// themselves so rows never lose their key.
func (s *Service) teamNames(ctx context.Context, teamIDs map[string]bool) (map[string]string, error) {
	names := make(map[string]string, len(teamIDs))
	for teamID := range teamIDs {
		names[teamID] = teamID
		records, err := s.store.FetchNodes(ctx, driver.LabelTeam,
			driver.Filters{"team_id": driver.Eq(teamID)}, 1)
		if err != nil {
			return nil, err
		}
		for _, team := range s.project.Teams(records) {
			names[team.ID] = team.Name
		}
	}
	return names, nil
}

// teamAlumni collects the IDs of every player with a stint at the team,
// past or present.
func (s *Service) teamAlumni(ctx context.Context, teamID string) (map[string]bool, error) {
	records, err := s.store.FetchRelationships(ctx, driver.RelPlaysFor,
		driver.LabelPlayer, driver.LabelTeam,
		driver.Filters{"end_id": driver.Eq(teamID)}, 0)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(records))
	for _, mem := range s.project.Memberships(records) {
		ids[mem.PlayerID] = true
	}
	return ids, nil
}

// involvedTeams collects both team IDs of each match.
func involvedTeams(matches []types.Match) map[string]bool {
	ids := make(map[string]bool, len(matches)*2)
	for _, m := range matches {
		ids[m.HomeTeamID] = true
		ids[m.AwayTeamID] = true
	}
	return ids
}

// completedOnly filters to matches with a final score.
func completedOnly(matches []types.Match) []types.Match {
	out := make([]types.Match, 0, len(matches))
	for _, m := range matches {
		if m.Completed() {
			out = append(out, m)
		}
	}
	return out
}

// byDateDesc sorts matches newest first, match ID breaking date ties.
func byDateDesc(matches []types.Match) {
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].Date.Equal(matches[j].Date) {
			return matches[i].Date.After(matches[j].Date)
		}
		return matches[i].ID < matches[j].ID
	})
}

// truncate caps a match slice at limit, reporting whether anything was cut.
func truncate(matches []types.Match, limit int) ([]types.Match, bool) {
	if limit > 0 && len(matches) > limit {
		return matches[:limit], true
	}
	return matches, false
}
