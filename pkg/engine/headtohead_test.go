package engine

import (
	"testing"

	"github.com/futgraph/futgraph/pkg/types"
)

func derbyMatches() []types.Match {
	return []types.Match{
		completed("M1", "FLA", "FLU", 3, 1, "2022-02-02"),
		completed("M2", "FLU", "FLA", 2, 2, "2022-06-19"),
		completed("M3", "FLA", "FLU", 0, 1, "2022-10-02"),
		completed("M4", "FLU", "FLA", 0, 4, "2023-03-12"),
		completed("M5", "FLA", "BOT", 2, 0, "2023-04-01"), // different fixture, ignored
		scheduled("M6", "FLA", "FLU", "2023-11-05"),       // not completed, ignored
	}
}

func TestComputeHeadToHead(t *testing.T) {
	h2h := ComputeHeadToHead("FLA", "FLU", derbyMatches())

	if h2h.Matches != 4 {
		t.Fatalf("matches = %d, want 4", h2h.Matches)
	}
	if h2h.Team1Wins != 2 || h2h.Team2Wins != 1 || h2h.Draws != 1 {
		t.Errorf("W/D/L = %d/%d/%d, want 2/1/1", h2h.Team1Wins, h2h.Draws, h2h.Team2Wins)
	}
	if h2h.Team1Goals != 9 || h2h.Team2Goals != 4 {
		t.Errorf("goals = %d:%d, want 9:4", h2h.Team1Goals, h2h.Team2Goals)
	}
}

// Counts derived by direct aggregation must equal counts derived by walking
// the raw match list.
func TestHeadToHeadRoundTrip(t *testing.T) {
	matches := derbyMatches()
	h2h := ComputeHeadToHead("FLA", "FLU", matches)

	var wins1, wins2, draws, goals1, goals2, total int
	for _, m := range matches {
		if !m.Completed() {
			continue
		}
		if !(m.HomeTeamID == "FLA" && m.AwayTeamID == "FLU") &&
			!(m.HomeTeamID == "FLU" && m.AwayTeamID == "FLA") {
			continue
		}
		g1, _ := m.ScoreFor("FLA")
		g2, _ := m.ScoreFor("FLU")
		total++
		goals1 += g1
		goals2 += g2
		switch {
		case g1 > g2:
			wins1++
		case g2 > g1:
			wins2++
		default:
			draws++
		}
	}

	if h2h.Matches != total || h2h.Team1Wins != wins1 || h2h.Team2Wins != wins2 ||
		h2h.Draws != draws || h2h.Team1Goals != goals1 || h2h.Team2Goals != goals2 {
		t.Errorf("aggregated %+v disagrees with raw walk (%d, %d/%d/%d, %d:%d)",
			h2h, total, wins1, draws, wins2, goals1, goals2)
	}
}

func TestHeadToHeadSymmetry(t *testing.T) {
	matches := derbyMatches()
	ab := ComputeHeadToHead("FLA", "FLU", matches)
	ba := ComputeHeadToHead("FLU", "FLA", matches)

	if ab.Team1Wins != ba.Team2Wins || ab.Team2Wins != ba.Team1Wins ||
		ab.Draws != ba.Draws || ab.Matches != ba.Matches ||
		ab.Team1Goals != ba.Team2Goals || ab.Team2Goals != ba.Team1Goals {
		t.Errorf("head-to-head not symmetric: %+v vs %+v", ab, ba)
	}
}

func TestBiggestWins(t *testing.T) {
	wins := BiggestWins("FLA", derbyMatches(), 2)
	if len(wins) != 2 {
		t.Fatalf("expected 2 wins, got %d", len(wins))
	}
	if wins[0].Match.ID != "M4" || wins[0].Margin != 4 {
		t.Errorf("biggest win = %s margin %d, want M4 margin 4", wins[0].Match.ID, wins[0].Margin)
	}
	if wins[1].Margin > wins[0].Margin {
		t.Error("wins not sorted by margin")
	}
}

func TestComputeTeamStats(t *testing.T) {
	stats := ComputeTeamStats("FLA", derbyMatches())

	if stats.Played != 5 {
		t.Fatalf("played = %d, want 5", stats.Played)
	}
	if stats.Wins != 3 || stats.Draws != 1 || stats.Losses != 1 {
		t.Errorf("W/D/L = %d/%d/%d, want 3/1/1", stats.Wins, stats.Draws, stats.Losses)
	}
	if stats.Points() != 10 {
		t.Errorf("points = %d, want 10", stats.Points())
	}
	if stats.HomeMatches != 3 || stats.AwayMatches != 2 {
		t.Errorf("home/away split = %d/%d, want 3/2", stats.HomeMatches, stats.AwayMatches)
	}

	rate, err := stats.WinRate()
	if err != nil {
		t.Fatalf("WinRate() error = %v", err)
	}
	if rate != 60 {
		t.Errorf("win rate = %v, want 60", rate)
	}

	empty := ComputeTeamStats("XXX", derbyMatches())
	if _, err := empty.WinRate(); err == nil {
		t.Error("win rate over zero matches should be an error")
	}
}
