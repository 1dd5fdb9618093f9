package engine

import (
	"errors"
	"reflect"
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

func completed(id, home, away string, hs, as int, date string) types.Match {
	h, a := hs, as
	return types.Match{
		ID: id, Date: day(date), HomeTeamID: home, AwayTeamID: away,
		HomeScore: &h, AwayScore: &a, Status: types.MatchCompleted,
	}
}

func scheduled(id, home, away, date string) types.Match {
	return types.Match{
		ID: id, Date: day(date), HomeTeamID: home, AwayTeamID: away,
		Status: types.MatchScheduled,
	}
}

var teamNames = map[string]string{
	"A": "Atlético", "B": "Botafogo", "C": "Corinthians", "D": "Desportivo",
}

func TestComputeStandingsScenario(t *testing.T) {
	// A: 2 wins 1 draw, GF 5 GA 2. B: 1 draw 2 losses, GF 2 GA 5.
	matches := []types.Match{
		completed("M1", "A", "B", 2, 0, "2023-05-01"),
		completed("M2", "B", "A", 1, 2, "2023-05-08"),
		completed("M3", "A", "B", 1, 1, "2023-05-15"),
		scheduled("M4", "A", "B", "2023-06-01"), // ignored
	}

	table := ComputeStandings(matches, teamNames)
	if len(table) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table))
	}

	a := table[0]
	if a.TeamID != "A" || a.Points != 7 || a.GoalDifference() != 3 {
		t.Errorf("row A = %+v (points %d, GD %d), want points=7 GD=+3", a, a.Points, a.GoalDifference())
	}
	if a.Wins != 2 || a.Draws != 1 || a.Losses != 0 || a.GoalsFor != 5 || a.GoalsAgainst != 2 {
		t.Errorf("row A record = %+v", a)
	}

	b := table[1]
	if b.TeamID != "B" || b.Points != 1 || b.GoalDifference() != -3 {
		t.Errorf("row B = %+v (points %d, GD %d), want points=1 GD=-3", b, b.Points, b.GoalDifference())
	}
	if a.Position != 1 || b.Position != 2 {
		t.Errorf("positions = %d, %d", a.Position, b.Position)
	}
}

func TestComputeStandingsTieBreaks(t *testing.T) {
	// C and D finish with identical points, GD, and GF; name decides.
	matches := []types.Match{
		completed("M1", "C", "A", 2, 0, "2023-05-01"),
		completed("M2", "D", "A", 2, 0, "2023-05-02"),
	}

	table := ComputeStandings(matches, teamNames)
	if table[0].TeamName != "Corinthians" || table[1].TeamName != "Desportivo" {
		t.Errorf("tied rows not ordered by name: %s, %s", table[0].TeamName, table[1].TeamName)
	}
}

func TestComputeStandingsDeterministic(t *testing.T) {
	matches := []types.Match{
		completed("M1", "A", "B", 1, 1, "2023-05-01"),
		completed("M2", "C", "D", 2, 2, "2023-05-01"),
		completed("M3", "A", "C", 0, 0, "2023-05-08"),
		completed("M4", "B", "D", 3, 1, "2023-05-08"),
	}

	first := ComputeStandings(matches, teamNames)
	for i := 0; i < 20; i++ {
		if got := ComputeStandings(matches, teamNames); !reflect.DeepEqual(got, first) {
			t.Fatalf("standings not deterministic on run %d", i)
		}
	}
}

func TestComputeStandingsWinLossBalance(t *testing.T) {
	matches := []types.Match{
		completed("M1", "A", "B", 2, 1, "2023-05-01"),
		completed("M2", "C", "D", 0, 3, "2023-05-01"),
		completed("M3", "A", "C", 1, 1, "2023-05-08"),
		completed("M4", "B", "D", 2, 2, "2023-05-08"),
		completed("M5", "D", "A", 4, 0, "2023-05-15"),
	}

	var wins, losses, draws int
	for _, row := range ComputeStandings(matches, teamNames) {
		wins += row.Wins
		losses += row.Losses
		draws += row.Draws
	}

	if wins != losses {
		t.Errorf("total wins %d != total losses %d", wins, losses)
	}
	if draws%2 != 0 {
		t.Errorf("total draws %d should be even", draws)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		num, den int
		want     float64
	}{
		{1, 3, 33.3},
		{2, 3, 66.7},
		{3, 3, 100},
		{0, 5, 0},
	}
	for _, tt := range tests {
		got, err := Percent(tt.num, tt.den)
		if err != nil {
			t.Fatalf("Percent(%d, %d) error = %v", tt.num, tt.den, err)
		}
		if got != tt.want {
			t.Errorf("Percent(%d, %d) = %v, want %v", tt.num, tt.den, got, tt.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("Percent(%d, %d) = %v out of [0, 100]", tt.num, tt.den, got)
		}
	}

	if _, err := Percent(1, 0); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("zero denominator should be ErrInsufficientData, got %v", err)
	}
}
