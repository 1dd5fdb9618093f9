package engine

import (
	"errors"
	"testing"

	"github.com/futgraph/futgraph/pkg/types"
)

func TestComputeRivalryScoreZeroMatches(t *testing.T) {
	asOf := day("2023-06-01")

	if _, err := ComputeRivalryScore(nil, asOf); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("zero matches should be ErrInsufficientData, got %v", err)
	}

	// Only non-completed matches is still insufficient.
	matches := []types.Match{scheduled("M1", "A", "B", "2023-07-01")}
	if _, err := ComputeRivalryScore(matches, asOf); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("scheduled-only history should be ErrInsufficientData, got %v", err)
	}
}

func TestComputeRivalryScoreBoundsAndLabels(t *testing.T) {
	asOf := day("2023-06-01")

	// One old match, no attendance: minimal score, moderate label.
	sparse := []types.Match{completed("M1", "A", "B", 1, 0, "1990-05-01")}
	got, err := ComputeRivalryScore(sparse, asOf)
	if err != nil {
		t.Fatalf("ComputeRivalryScore() error = %v", err)
	}
	if got.Label != RivalryModerate {
		t.Errorf("sparse history label = %s, want moderate", got.Label)
	}

	// Dense recent well-attended history: high score, intense label.
	var dense []types.Match
	for i := 0; i < 60; i++ {
		m := completed("M", "A", "B", 2, 1, "2021-05-01")
		m.ID = m.ID + string(rune('A'+i%26))
		m.Attendance = 65000
		dense = append(dense, m)
	}
	got, err = ComputeRivalryScore(dense, asOf)
	if err != nil {
		t.Fatalf("ComputeRivalryScore() error = %v", err)
	}
	if got.Score < 0 || got.Score > 10 {
		t.Errorf("score %v out of [0, 10]", got.Score)
	}
	if got.Label != RivalryIntense {
		t.Errorf("dense history label = %s (score %v), want intense", got.Label, got.Score)
	}
}

func TestComputeRivalryScoreRecencyWeighting(t *testing.T) {
	asOf := day("2023-06-01")

	old := make([]types.Match, 0, 20)
	recent := make([]types.Match, 0, 20)
	for i := 0; i < 20; i++ {
		suffix := string(rune('A' + i%26))
		old = append(old, completed("MO"+suffix, "A", "B", 1, 0, "1995-05-01"))
		recent = append(recent, completed("MR"+suffix, "A", "B", 1, 0, "2022-05-01"))
	}

	oldScore, err := ComputeRivalryScore(old, asOf)
	if err != nil {
		t.Fatal(err)
	}
	recentScore, err := ComputeRivalryScore(recent, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if recentScore.Score <= oldScore.Score {
		t.Errorf("recent matches should weigh higher: recent %v <= old %v", recentScore.Score, oldScore.Score)
	}
}
