package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futgraph/futgraph/pkg/driver"
	"github.com/futgraph/futgraph/pkg/pattern"
	"github.com/futgraph/futgraph/pkg/types"
)

func TestCompetitionStandings(t *testing.T) {
	svc := newTestService(Options{})

	result, qerr := svc.CompetitionStandings(context.Background(), StandingsRequest{
		CompetitionID: "C1", Season: "2023",
	})
	require.Nil(t, qerr)
	require.Len(t, result.Table, 3)

	top := result.Table[0]
	assert.Equal(t, 1, top.Position)
	assert.Equal(t, "Flamengo", top.TeamName)
	assert.Equal(t, 6, top.Points)
	assert.Equal(t, 5, top.GoalsFor)
	assert.Equal(t, 2, top.GoalsAgainst)

	// Palmeiras and Fluminense are level on one point; goal difference
	// separates them.
	assert.Equal(t, "Palmeiras", result.Table[1].TeamName)
	assert.Equal(t, "Fluminense", result.Table[2].TeamName)
	assert.False(t, result.Meta.Truncated)
}

// twoEditionDataset has the same competition ID across two seasons so
// edition scoping can be observed.
func twoEditionDataset() driver.Dataset {
	return driver.Dataset{
		Teams: []types.Team{
			{ID: "T1", Name: "Flamengo"},
			{ID: "T2", Name: "Fluminense"},
		},
		Competitions: []types.Competition{
			{ID: "C1", Name: "Brasileirao", Season: "2023", Type: types.LeagueCompetition},
			{ID: "C1", Name: "Brasileirao", Season: "2024", Type: types.LeagueCompetition},
		},
		Matches: []types.Match{
			{ID: "M1", Date: day("2023-05-01"), HomeTeamID: "T1", AwayTeamID: "T2",
				HomeScore: intPtr(1), AwayScore: intPtr(0), CompetitionID: "C1",
				Season: "2023", Status: types.MatchCompleted},
			{ID: "M2", Date: day("2024-05-01"), HomeTeamID: "T1", AwayTeamID: "T2",
				HomeScore: intPtr(4), AwayScore: intPtr(0), CompetitionID: "C1",
				Season: "2024", Status: types.MatchCompleted},
		},
	}
}

func TestCompetitionStandingsScopedToSeason(t *testing.T) {
	svc := NewService(driver.NewMemoryDriver(twoEditionDataset()), Options{
		Now: func() time.Time { return fixedNow },
	})

	// Only the 2023 edition's single 1-0 win may count; the 4-0 from the
	// 2024 edition of the same competition ID must stay out.
	result, qerr := svc.CompetitionStandings(context.Background(), StandingsRequest{
		CompetitionID: "C1", Season: "2023",
	})
	require.Nil(t, qerr)
	require.Len(t, result.Table, 2)
	assert.Equal(t, "Flamengo", result.Table[0].TeamName)
	assert.Equal(t, 3, result.Table[0].Points)
	assert.Equal(t, 1, result.Table[0].GoalsFor)
}

func TestCompetitionMatchesScopedToSeason(t *testing.T) {
	svc := NewService(driver.NewMemoryDriver(twoEditionDataset()), Options{
		Now: func() time.Time { return fixedNow },
	})

	result, qerr := svc.CompetitionMatches(context.Background(), CompetitionMatchesRequest{
		CompetitionID: "C1", Season: "2024",
	})
	require.Nil(t, qerr)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "M2", result.Matches[0].ID)
}

func TestHeadToHeadSeasonScopedToEdition(t *testing.T) {
	svc := NewService(driver.NewMemoryDriver(twoEditionDataset()), Options{
		Now: func() time.Time { return fixedNow },
	})

	result, qerr := svc.HeadToHead(context.Background(), HeadToHeadRequest{
		Team1ID: "T1", Team2ID: "T2", Season: "2024",
	})
	require.Nil(t, qerr)
	assert.Equal(t, 1, result.Record.Matches)
	assert.Equal(t, 4, result.Record.Team1Goals)
}

func TestCompetitionStandingsValidation(t *testing.T) {
	svc := newTestService(Options{})
	ctx := context.Background()

	_, qerr := svc.CompetitionStandings(ctx, StandingsRequest{Season: "2023"})
	require.NotNil(t, qerr)
	assert.Equal(t, KindInvalidParameter, qerr.Kind)

	_, qerr = svc.CompetitionStandings(ctx, StandingsRequest{CompetitionID: "C1"})
	require.NotNil(t, qerr)
	assert.Equal(t, KindInvalidParameter, qerr.Kind)

	_, qerr = svc.CompetitionStandings(ctx, StandingsRequest{CompetitionID: "C9", Season: "2023"})
	require.NotNil(t, qerr)
	assert.Equal(t, KindNotFound, qerr.Kind)

	// Right competition, wrong season.
	_, qerr = svc.CompetitionStandings(ctx, StandingsRequest{CompetitionID: "C1", Season: "1999"})
	require.NotNil(t, qerr)
	assert.Equal(t, KindNotFound, qerr.Kind)
}

func TestTopScorers(t *testing.T) {
	svc := newTestService(Options{})

	result, qerr := svc.TopScorers(context.Background(), TopScorersRequest{
		CompetitionID: "C1", Season: "2023",
	})
	require.Nil(t, qerr)
	require.NotEmpty(t, result.Scorers)

	top := result.Scorers[0]
	assert.Equal(t, "Pedro", top.PlayerName)
	assert.Equal(t, 3, top.Goals)
	assert.Equal(t, 1, top.Rank)

	// The own goal in M3 credits nobody: Gomez must not appear.
	for _, row := range result.Scorers {
		assert.NotEqual(t, "P5", row.PlayerID)
	}

	// One goal each, but Arrascaeta's assist ranks him above the others.
	assert.Equal(t, "Arrascaeta", result.Scorers[1].PlayerName)
}

func TestTopScorersLimit(t *testing.T) {
	svc := newTestService(Options{})

	result, qerr := svc.TopScorers(context.Background(), TopScorersRequest{
		CompetitionID: "C1", Season: "2023", Limit: 1,
	})
	require.Nil(t, qerr)
	require.Len(t, result.Scorers, 1)
	assert.True(t, result.Meta.Truncated)
}

func TestHeadToHead(t *testing.T) {
	svc := newTestService(Options{})

	result, qerr := svc.HeadToHead(context.Background(), HeadToHeadRequest{
		Team1ID: "T1", Team2ID: "T2",
	})
	require.Nil(t, qerr)
	assert.Equal(t, 1, result.Record.Matches)
	assert.Equal(t, 1, result.Record.Team1Wins)
	assert.Equal(t, 0, result.Record.Team2Wins)
	assert.Equal(t, 3, result.Record.Team1Goals)
	assert.Equal(t, 1, result.Record.Team2Goals)
	require.Len(t, result.RecentMatches, 1)
	assert.Equal(t, "M1", result.RecentMatches[0].ID)
}

func TestHeadToHeadNeverMet(t *testing.T) {
	svc := newTestService(Options{})

	// T1 and T3 only have a scheduled fixture; the completed record is zero
	// but the query succeeds.
	result, qerr := svc.HeadToHead(context.Background(), HeadToHeadRequest{
		Team1ID: "T2", Team2ID: "T2x",
	})
	require.NotNil(t, qerr)
	assert.Equal(t, KindNotFound, qerr.Kind)

	result, qerr = svc.HeadToHead(context.Background(), HeadToHeadRequest{
		Team1ID: "T1", Team2ID: "T3",
	})
	require.Nil(t, qerr)
	assert.Equal(t, 1, result.Record.Matches) // M3 completed, M4 scheduled
}

func TestHeadToHeadValidation(t *testing.T) {
	svc := newTestService(Options{})
	ctx := context.Background()

	_, qerr := svc.HeadToHead(ctx, HeadToHeadRequest{Team1ID: "T1", Team2ID: "T1"})
	require.NotNil(t, qerr)
	assert.Equal(t, KindInvalidParameter, qerr.Kind)

	rng := types.Interval{Start: day("2023-01-01")}
	_, qerr = svc.HeadToHead(ctx, HeadToHeadRequest{
		Team1ID: "T1", Team2ID: "T2", Season: "2023", DateRange: &rng,
	})
	require.NotNil(t, qerr)
	assert.Equal(t, KindInvalidParameter, qerr.Kind)
}

func TestRivalryStats(t *testing.T) {
	svc := newTestService(Options{})

	result, qerr := svc.RivalryStats(context.Background(), RivalryRequest{
		Team1ID: "T1", Team2ID: "T2",
	})
	require.Nil(t, qerr)
	assert.Greater(t, result.Score.Score, 0.0)
	assert.NotEmpty(t, result.Score.Label)
	require.Len(t, result.Team1BiggestWin, 1)
	assert.Equal(t, "M1", result.Team1BiggestWin[0].Match.ID)
	assert.Empty(t, result.Team2BiggestWin)

	// Scorers across the pairing's meetings only: M1 alone here.
	require.Len(t, result.TopScorers, 3)
	assert.Equal(t, "Pedro", result.TopScorers[0].PlayerName)
	assert.Equal(t, 2, result.TopScorers[0].Goals)
	assert.Equal(t, "Arrascaeta", result.TopScorers[1].PlayerName)
}

func TestRivalryStatsNoMeetings(t *testing.T) {
	dataset := fixtureDataset()
	dataset.Teams = append(dataset.Teams, types.Team{ID: "T9", Name: "Santos"})
	svc := NewService(driver.NewMemoryDriver(dataset), Options{
		Now: func() time.Time { return fixedNow },
	})

	// Unlike head-to-head, a pairing that never met cannot be scored.
	_, qerr := svc.RivalryStats(context.Background(), RivalryRequest{
		Team1ID: "T1", Team2ID: "T9",
	})
	require.NotNil(t, qerr)
	assert.Equal(t, KindInsufficientData, qerr.Kind)
}

func TestCommonTeammates(t *testing.T) {
	svc := newTestService(Options{})

	result, qerr := svc.CommonTeammates(context.Background(), TeammatesRequest{
		Player1ID: "P1", Player2ID: "P2",
	})
	require.Nil(t, qerr)
	require.Len(t, result.Teammates, 1)

	teammate := result.Teammates[0]
	assert.Equal(t, "Arrascaeta", teammate.Player.Name)
	require.Len(t, teammate.WithPlayer1, 1)
	require.Len(t, teammate.WithPlayer2, 1)
	assert.Equal(t, "Flamengo", teammate.WithPlayer1[0].TeamName)
	// Arrascaeta's overlap with Gerson ends when Gerson left.
	assert.Equal(t, day("2023-06-30"), teammate.WithPlayer2[0].To)
}

func TestCommonTeammatesNone(t *testing.T) {
	svc := newTestService(Options{})

	// Pedro and Gomez never shared a club.
	result, qerr := svc.CommonTeammates(context.Background(), TeammatesRequest{
		Player1ID: "P1", Player2ID: "P5",
	})
	require.Nil(t, qerr)
	assert.Empty(t, result.Teammates)
}

func TestCommonTeammatesRequireSharedClub(t *testing.T) {
	// Leandro overlapped Zico at Flamengo and Junior at Udinese, but the
	// three were never at one club together.
	dataset := driver.Dataset{
		Players: []types.Player{
			{ID: "P1", Name: "Zico", Position: types.Midfielder},
			{ID: "P2", Name: "Junior", Position: types.Defender},
			{ID: "P3", Name: "Leandro", Position: types.Defender},
		},
		Teams: []types.Team{
			{ID: "T1", Name: "Flamengo"},
			{ID: "T2", Name: "Udinese"},
		},
		Memberships: []types.Membership{
			{PlayerID: "P1", TeamID: "T1", Start: day("1980-01-01"), End: dayPtr("1983-06-30")},
			{PlayerID: "P2", TeamID: "T2", Start: day("1984-01-01")},
			{PlayerID: "P3", TeamID: "T1", Start: day("1980-01-01"), End: dayPtr("1981-01-01")},
			{PlayerID: "P3", TeamID: "T2", Start: day("1984-01-01")},
		},
	}
	svc := NewService(driver.NewMemoryDriver(dataset), Options{
		Now: func() time.Time { return fixedNow },
	})

	result, qerr := svc.CommonTeammates(context.Background(), TeammatesRequest{
		Player1ID: "P1", Player2ID: "P2",
	})
	require.Nil(t, qerr)
	assert.Empty(t, result.Teammates)
}

func TestCommonTeammatesLimit(t *testing.T) {
	dataset := driver.Dataset{
		Players: []types.Player{
			{ID: "S1", Name: "Zico", Position: types.Midfielder},
			{ID: "S2", Name: "Junior", Position: types.Defender},
			{ID: "X1", Name: "Adilio", Position: types.Midfielder},
			{ID: "X2", Name: "Tita", Position: types.Forward},
		},
		Teams: []types.Team{{ID: "T1", Name: "Flamengo"}},
		Memberships: []types.Membership{
			{PlayerID: "S1", TeamID: "T1", Start: day("1980-01-01"), End: dayPtr("1990-01-01")},
			{PlayerID: "S2", TeamID: "T1", Start: day("1980-01-01"), End: dayPtr("1990-01-01")},
			{PlayerID: "X1", TeamID: "T1", Start: day("1982-01-01"), End: dayPtr("1984-01-01")},
			{PlayerID: "X2", TeamID: "T1", Start: day("1982-01-01"), End: dayPtr("1984-01-01")},
		},
	}
	svc := NewService(driver.NewMemoryDriver(dataset), Options{
		Now: func() time.Time { return fixedNow },
	})

	result, qerr := svc.CommonTeammates(context.Background(), TeammatesRequest{
		Player1ID: "S1", Player2ID: "S2", Limit: 1,
	})
	require.Nil(t, qerr)
	require.Len(t, result.Teammates, 1)
	assert.Equal(t, "Adilio", result.Teammates[0].Player.Name)
	assert.True(t, result.Meta.Truncated)
}

func TestCareerPathMatch(t *testing.T) {
	svc := newTestService(Options{})

	// Players who appeared for both Flamengo and Fluminense: only Gerson.
	result, qerr := svc.CareerPathMatch(context.Background(), CareerPathRequest{
		Criteria: pattern.Criteria{Teams: []string{"T1", "T2"}},
	})
	require.Nil(t, qerr)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "Gerson", result.Matches[0].Player.Name)
}

func TestCareerPathMatchNoCriteria(t *testing.T) {
	svc := newTestService(Options{})

	_, qerr := svc.CareerPathMatch(context.Background(), CareerPathRequest{})
	require.NotNil(t, qerr)
	assert.Equal(t, KindInvalidParameter, qerr.Kind)
}

func TestTeamForm(t *testing.T) {
	svc := newTestService(Options{})

	result, qerr := svc.TeamForm(context.Background(), FormRequest{TeamID: "T1"})
	require.Nil(t, qerr)
	assert.Equal(t, []string{"W", "W"}, result.Form.Results)
	assert.Equal(t, 6, result.Form.Points)
	assert.Equal(t, 100.0, result.Form.WinPercent)
}

func TestSearchPlayers(t *testing.T) {
	svc := newTestService(Options{})

	result, qerr := svc.SearchPlayers(context.Background(), SearchPlayersRequest{Name: "pedr"})
	require.Nil(t, qerr)
	require.Len(t, result.Players, 1)
	assert.Equal(t, "Pedro", result.Players[0].Name)

	result, qerr = svc.SearchPlayers(context.Background(), SearchPlayersRequest{
		Name: "a", Nationality: "Argentina",
	})
	require.Nil(t, qerr)
	require.Len(t, result.Players, 2)
	assert.Equal(t, "Cano", result.Players[0].Name)
	assert.Equal(t, "Flaco", result.Players[1].Name)

	// Team filter keeps anyone with a stint at the team, current or past.
	result, qerr = svc.SearchPlayers(context.Background(), SearchPlayersRequest{
		Name: "a", TeamID: "T1",
	})
	require.Nil(t, qerr)
	require.Len(t, result.Players, 1)
	assert.Equal(t, "Arrascaeta", result.Players[0].Name)
}

func TestSearchPlayersTeamFilterBeforeLimit(t *testing.T) {
	// The only T1 member shares a surname with two players listed before
	// him; a capped fetch would never reach him.
	dataset := driver.Dataset{
		Players: []types.Player{
			{ID: "P1", Name: "Silva Primeiro", Position: types.Forward},
			{ID: "P2", Name: "Silva Segundo", Position: types.Forward},
			{ID: "P3", Name: "Silva Terceiro", Position: types.Forward},
		},
		Teams: []types.Team{{ID: "T1", Name: "Flamengo"}},
		Memberships: []types.Membership{
			{PlayerID: "P3", TeamID: "T1", Start: day("2020-01-01")},
		},
	}
	svc := NewService(driver.NewMemoryDriver(dataset), Options{
		Now: func() time.Time { return fixedNow },
	})

	result, qerr := svc.SearchPlayers(context.Background(), SearchPlayersRequest{
		Name: "Silva", TeamID: "T1", Limit: 1,
	})
	require.Nil(t, qerr)
	require.Len(t, result.Players, 1)
	assert.Equal(t, "Silva Terceiro", result.Players[0].Name)
	assert.False(t, result.Meta.Truncated)
}

func TestSearchTeams(t *testing.T) {
	svc := newTestService(Options{})

	result, qerr := svc.SearchTeams(context.Background(), SearchTeamsRequest{
		Name: "Flu", City: "Rio de Janeiro",
	})
	require.Nil(t, qerr)
	require.Len(t, result.Teams, 1)
	assert.Equal(t, "Fluminense", result.Teams[0].Name)
}

func TestPlayerStats(t *testing.T) {
	svc := newTestService(Options{})

	result, qerr := svc.PlayerStats(context.Background(), PlayerStatsRequest{PlayerID: "P3"})
	require.Nil(t, qerr)
	assert.Equal(t, 1, result.Goals)
	assert.Equal(t, 1, result.Assists)
	assert.Equal(t, 1, result.YellowCards)
	assert.Equal(t, 1, result.RedCards)

	// An own goal counts for nobody's tally but shows up by type.
	result, qerr = svc.PlayerStats(context.Background(), PlayerStatsRequest{PlayerID: "P5"})
	require.Nil(t, qerr)
	assert.Equal(t, 0, result.Goals)
	assert.Equal(t, 1, result.GoalsByType[string(types.OwnGoal)])
}

func TestPlayerCareer(t *testing.T) {
	svc := newTestService(Options{})

	result, qerr := svc.PlayerCareer(context.Background(), CareerRequest{PlayerID: "P2"})
	require.Nil(t, qerr)
	require.Len(t, result.Stints, 2)
	assert.Equal(t, "Flamengo", result.Stints[0].TeamName)
	assert.False(t, result.Stints[0].Current)
	assert.Equal(t, "Fluminense", result.Stints[1].TeamName)
	assert.True(t, result.Stints[1].Current)
	require.Len(t, result.Moves, 1)
	assert.Equal(t, "T2", result.Moves[0].ToTeamID)

	// A limit caps the stint list and flags the cut.
	result, qerr = svc.PlayerCareer(context.Background(), CareerRequest{PlayerID: "P2", Limit: 1})
	require.Nil(t, qerr)
	require.Len(t, result.Stints, 1)
	assert.Equal(t, "Flamengo", result.Stints[0].TeamName)
	assert.True(t, result.Meta.Truncated)
}

func TestTeamStats(t *testing.T) {
	svc := newTestService(Options{})

	result, qerr := svc.TeamStats(context.Background(), TeamStatsRequest{TeamID: "T2"})
	require.Nil(t, qerr)
	assert.Equal(t, 2, result.Stats.Played)
	assert.Equal(t, 0, result.Stats.Wins)
	assert.Equal(t, 1, result.Stats.Draws)
	assert.Equal(t, 1, result.Stats.Losses)
	assert.Equal(t, 1, result.Stats.GoalsFor)
	assert.Equal(t, 3, result.Stats.GoalsAgainst)
	assert.Equal(t, 1, result.Points)
	assert.Equal(t, 0.0, result.WinRate)
}

func TestTeamRoster(t *testing.T) {
	svc := newTestService(Options{})

	result, qerr := svc.TeamRoster(context.Background(), RosterRequest{TeamID: "T1"})
	require.Nil(t, qerr)
	require.Len(t, result.Roster, 2)
	// Gerson left mid-2023; only Pedro (9) and Arrascaeta (14) remain.
	assert.Equal(t, "Pedro", result.Roster[0].Player.Name)
	assert.Equal(t, "Arrascaeta", result.Roster[1].Player.Name)

	// As of early 2023 Gerson was still there.
	asOf := day("2023-03-01")
	result, qerr = svc.TeamRoster(context.Background(), RosterRequest{TeamID: "T1", AsOf: &asOf})
	require.Nil(t, qerr)
	require.Len(t, result.Roster, 3)

	result, qerr = svc.TeamRoster(context.Background(), RosterRequest{TeamID: "T1", Limit: 1})
	require.Nil(t, qerr)
	require.Len(t, result.Roster, 1)
	assert.Equal(t, "Pedro", result.Roster[0].Player.Name)
	assert.True(t, result.Meta.Truncated)
}

func TestCompetitionMatches(t *testing.T) {
	svc := newTestService(Options{})

	result, qerr := svc.CompetitionMatches(context.Background(), CompetitionMatchesRequest{
		CompetitionID: "C1", Season: "2023",
	})
	require.Nil(t, qerr)
	require.Len(t, result.Matches, 4)
	// Newest first: the scheduled December fixture leads.
	assert.Equal(t, "M4", result.Matches[0].ID)

	result, qerr = svc.CompetitionMatches(context.Background(), CompetitionMatchesRequest{
		CompetitionID: "C1", Season: "2023", TeamID: "T2",
	})
	require.Nil(t, qerr)
	require.Len(t, result.Matches, 2)
	for _, m := range result.Matches {
		assert.True(t, m.HomeTeamID == "T2" || m.AwayTeamID == "T2")
	}
}

func TestMatchDetails(t *testing.T) {
	svc := newTestService(Options{})

	result, qerr := svc.MatchDetails(context.Background(), MatchDetailsRequest{MatchID: "M3"})
	require.Nil(t, qerr)
	assert.Equal(t, "Palmeiras", result.HomeTeam.Name)
	assert.Equal(t, "Flamengo", result.AwayTeam.Name)
	require.Len(t, result.Scorers, 3)
	assert.Equal(t, "Flaco", result.Scorers[0].Player.Name)
	assert.Equal(t, "Pedro", result.Scorers[1].Player.Name)
	assert.True(t, result.Scorers[2].OwnGoal)
	require.Len(t, result.Cards, 1)
	assert.Equal(t, types.RedCard, result.Cards[0].Type)
}

func TestMatchDetailsNotFound(t *testing.T) {
	svc := newTestService(Options{})

	_, qerr := svc.MatchDetails(context.Background(), MatchDetailsRequest{MatchID: "M99"})
	require.NotNil(t, qerr)
	assert.Equal(t, KindNotFound, qerr.Kind)
}

func TestNotFoundSuggestions(t *testing.T) {
	svc := newTestService(Options{})

	// The miss carries name suggestions matched by fragment.
	_, qerr := svc.TeamForm(context.Background(), FormRequest{TeamID: "Fla"})
	require.NotNil(t, qerr)
	require.Equal(t, KindNotFound, qerr.Kind)
	require.NotNil(t, qerr.Details)
	assert.Contains(t, qerr.Details["suggestions"], "Flamengo")
}
