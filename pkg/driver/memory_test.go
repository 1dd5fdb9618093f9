package driver

import (
	"context"
	"testing"
	"time"

	"github.com/futgraph/futgraph/pkg/types"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testDataset() Dataset {
	end := day("2021-06-30")
	hs, as := 2, 1
	return Dataset{
		Players: []types.Player{
			{ID: "P1", Name: "Neymar", Nationality: "Brazilian", Position: types.Forward},
			{ID: "P2", Name: "Ganso", Nationality: "Brazilian", Position: types.Midfielder},
			{ID: "P3", Name: "Messi", Nationality: "Argentine", Position: types.Forward},
		},
		Teams: []types.Team{
			{ID: "T1", Name: "Santos", City: "Santos"},
			{ID: "T2", Name: "Barcelona", City: "Barcelona"},
		},
		Matches: []types.Match{
			{
				ID: "M1", Date: day("2021-03-07"), HomeTeamID: "T1", AwayTeamID: "T2",
				HomeScore: &hs, AwayScore: &as, CompetitionID: "C1", Status: types.MatchCompleted,
			},
		},
		Competitions: []types.Competition{
			{ID: "C1", Name: "Campeonato Paulista", Season: "2021", Type: types.LeagueCompetition},
		},
		Memberships: []types.Membership{
			{PlayerID: "P1", TeamID: "T1", Start: day("2009-01-01"), End: &end},
			{PlayerID: "P2", TeamID: "T1", Start: day("2008-01-01")},
			{PlayerID: "P3", TeamID: "T2", Start: day("2004-10-01")},
		},
		Goals: []types.GoalEvent{
			{PlayerID: "P1", MatchID: "M1", TeamID: "T1", Minute: 12, Type: types.OpenPlayGoal},
			{PlayerID: "P1", MatchID: "M1", TeamID: "T1", Minute: 55, Type: types.PenaltyGoal},
		},
	}
}

func TestMemoryDriverFetchNodes(t *testing.T) {
	d := NewMemoryDriver(testDataset())
	ctx := context.Background()

	tests := []struct {
		name    string
		label   string
		filters Filters
		limit   int
		want    int
	}{
		{"all players", LabelPlayer, nil, 0, 3},
		{"equality filter", LabelPlayer, Filters{"nationality": Eq("Argentine")}, 0, 1},
		{"substring filter", LabelTeam, Filters{"name": Contains("sant")}, 0, 1},
		{"limit applies", LabelPlayer, nil, 2, 2},
		{"no matches", LabelPlayer, Filters{"name": Contains("zidane")}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := d.FetchNodes(ctx, tt.label, tt.filters, tt.limit)
			if err != nil {
				t.Fatalf("FetchNodes() error = %v", err)
			}
			if len(records) != tt.want {
				t.Errorf("FetchNodes() returned %d records, want %d", len(records), tt.want)
			}
		})
	}

	if _, err := d.FetchNodes(ctx, "Referee", nil, 0); err == nil {
		t.Error("expected error for unknown label")
	}
}

func TestMemoryDriverFetchRelationships(t *testing.T) {
	d := NewMemoryDriver(testDataset())
	ctx := context.Background()

	records, err := d.FetchRelationships(ctx, RelPlaysFor, LabelPlayer, LabelTeam,
		Filters{"end_id": Eq("T1")}, 0)
	if err != nil {
		t.Fatalf("FetchRelationships() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 memberships at T1, got %d", len(records))
	}
	for _, rec := range records {
		if _, ok := AsString(rec["start_id"]); !ok {
			t.Error("relationship record missing start_id")
		}
		if _, ok := AsTime(rec["from_date"]); !ok {
			t.Error("relationship record missing from_date")
		}
	}

	if _, err := d.FetchRelationships(ctx, RelPlaysFor, LabelTeam, LabelPlayer, nil, 0); err == nil {
		t.Error("expected error for reversed endpoint labels")
	}
}

func TestMemoryDriverFetchPattern(t *testing.T) {
	d := NewMemoryDriver(testDataset())
	ctx := context.Background()

	records, err := d.FetchPattern(ctx, PatternSpec{
		StartLabel: LabelPlayer,
		RelTypes:   []string{RelScoredIn},
		EndLabel:   LabelMatch,
		EndFilters: Filters{"match_id": Eq("M1")},
	})
	if err != nil {
		t.Fatalf("FetchPattern() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 goal patterns, got %d", len(records))
	}

	start, ok := AsRecord(records[0]["start"])
	if !ok {
		t.Fatal("pattern record missing start leg")
	}
	if name, _ := AsString(start["name"]); name != "Neymar" {
		t.Errorf("start leg name = %q, want Neymar", name)
	}
}

func TestMemoryDriverContextCancelled(t *testing.T) {
	d := NewMemoryDriver(testDataset())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := d.FetchNodes(ctx, LabelPlayer, nil, 0); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestAsTime(t *testing.T) {
	want := day("2021-06-30")

	if got, ok := AsTime(want); !ok || !got.Equal(want) {
		t.Error("AsTime should pass through time.Time")
	}
	if got, ok := AsTime("2021-06-30"); !ok || !got.Equal(want) {
		t.Error("AsTime should parse date strings")
	}
	if _, ok := AsTime(42); ok {
		t.Error("AsTime should reject non-temporal values")
	}
}

func TestAsInt(t *testing.T) {
	for _, v := range []any{3, int64(3), float64(3)} {
		if n, ok := AsInt(v); !ok || n != 3 {
			t.Errorf("AsInt(%T) = %d, %v", v, n, ok)
		}
	}
	if _, ok := AsInt("3"); ok {
		t.Error("AsInt should reject strings")
	}
}
