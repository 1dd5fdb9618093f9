package futgraph_test

import (
	"context"
	"testing"
	"time"

	"github.com/futgraph/futgraph"
	"github.com/futgraph/futgraph/pkg/driver"
	"github.com/futgraph/futgraph/pkg/query"
	"github.com/futgraph/futgraph/pkg/types"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func smallDataset() driver.Dataset {
	home, away := 2, 0
	return driver.Dataset{
		Players: []types.Player{
			{ID: "P1", Name: "Zico", Nationality: "Brazil", Position: types.Midfielder},
		},
		Teams: []types.Team{
			{ID: "T1", Name: "Flamengo"},
			{ID: "T2", Name: "Botafogo"},
		},
		Competitions: []types.Competition{
			{ID: "C1", Name: "Carioca", Season: "1981", Type: types.LeagueCompetition},
		},
		Matches: []types.Match{
			{ID: "M1", Date: time.Date(1981, 5, 3, 0, 0, 0, 0, time.UTC),
				HomeTeamID: "T1", AwayTeamID: "T2",
				HomeScore: &home, AwayScore: &away,
				CompetitionID: "C1", Season: "1981", Status: types.MatchCompleted},
		},
		Goals: []types.GoalEvent{
			{PlayerID: "P1", MatchID: "M1", TeamID: "T1", Minute: 12},
			{PlayerID: "P1", MatchID: "M1", TeamID: "T1", Minute: 67},
		},
	}
}

func TestClientRoundTrip(t *testing.T) {
	store := driver.NewMemoryDriver(smallDataset())
	client, err := futgraph.NewClient(store, &futgraph.Config{Now: fixedClock}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close(context.Background())

	standings, qerr := client.CompetitionStandings(context.Background(), query.StandingsRequest{
		CompetitionID: "C1", Season: "1981",
	})
	if qerr != nil {
		t.Fatalf("CompetitionStandings: %v", qerr)
	}
	if len(standings.Table) != 2 {
		t.Fatalf("table has %d rows, want 2", len(standings.Table))
	}
	if standings.Table[0].TeamName != "Flamengo" || standings.Table[0].Points != 3 {
		t.Errorf("top row = %+v, want Flamengo on 3 points", standings.Table[0])
	}

	scorers, qerr := client.TopScorers(context.Background(), query.TopScorersRequest{
		CompetitionID: "C1", Season: "1981",
	})
	if qerr != nil {
		t.Fatalf("TopScorers: %v", qerr)
	}
	if len(scorers.Scorers) != 1 || scorers.Scorers[0].Goals != 2 {
		t.Fatalf("scorers = %+v, want Zico with 2 goals", scorers.Scorers)
	}
}

func TestClientErrorKinds(t *testing.T) {
	store := driver.NewMemoryDriver(smallDataset())
	client, err := futgraph.NewClient(store, &futgraph.Config{Now: fixedClock}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close(context.Background())

	_, qerr := client.TeamForm(context.Background(), query.FormRequest{TeamID: "nowhere"})
	if qerr == nil || qerr.Kind != query.KindNotFound {
		t.Fatalf("qerr = %v, want not_found", qerr)
	}

	_, qerr = client.CompetitionStandings(context.Background(), query.StandingsRequest{})
	if qerr == nil || qerr.Kind != query.KindInvalidParameter {
		t.Fatalf("qerr = %v, want invalid_parameter", qerr)
	}
}
