// Package export writes analytics snapshots to Parquet files, one directory
// per result shape, for downstream analysis outside the graph store.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/futgraph/futgraph/pkg/engine"
)

// ParquetExporter handles writing computed tables to Parquet files
type ParquetExporter struct {
	baseDir string
}

// NewParquetExporter creates a new Parquet exporter. baseDir is the
// directory where parquet files will be stored.
func NewParquetExporter(baseDir string) (*ParquetExporter, error) {
	// Ensure directories exist
	dirs := []string{"standings", "scorers", "head_to_head"}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(baseDir, d), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}

	return &ParquetExporter{baseDir: baseDir}, nil
}

// ParquetStandingRow is the schema for one league table row in Parquet
type ParquetStandingRow struct {
	CompetitionID string    `parquet:"competition_id"`
	Season        string    `parquet:"season"`
	Position      int       `parquet:"position"`
	TeamID        string    `parquet:"team_id"`
	TeamName      string    `parquet:"team_name"`
	Played        int       `parquet:"played"`
	Wins          int       `parquet:"wins"`
	Draws         int       `parquet:"draws"`
	Losses        int       `parquet:"losses"`
	GoalsFor      int       `parquet:"goals_for"`
	GoalsAgainst  int       `parquet:"goals_against"`
	GoalDiff      int       `parquet:"goal_difference"`
	Points        int       `parquet:"points"`
	ExportedAt    time.Time `parquet:"exported_at"`
}

// ParquetScorerRow is the schema for one leaderboard row in Parquet
type ParquetScorerRow struct {
	CompetitionID string    `parquet:"competition_id"`
	Season        string    `parquet:"season"`
	Rank          int       `parquet:"rank"`
	PlayerID      string    `parquet:"player_id"`
	PlayerName    string    `parquet:"player_name"`
	Position      string    `parquet:"position"`
	TeamName      string    `parquet:"team_name"`
	Goals         int       `parquet:"goals"`
	Assists       int       `parquet:"assists"`
	ExportedAt    time.Time `parquet:"exported_at"`
}

// ParquetHeadToHead is the schema for one pairing record in Parquet
type ParquetHeadToHead struct {
	Team1ID    string    `parquet:"team1_id"`
	Team2ID    string    `parquet:"team2_id"`
	Matches    int       `parquet:"total_matches"`
	Team1Wins  int       `parquet:"team1_wins"`
	Team2Wins  int       `parquet:"team2_wins"`
	Draws      int       `parquet:"draws"`
	Team1Goals int       `parquet:"team1_goals"`
	Team2Goals int       `parquet:"team2_goals"`
	ExportedAt time.Time `parquet:"exported_at"`
}

// WriteStandings writes a computed league table as one Parquet file.
func (w *ParquetExporter) WriteStandings(competitionID, season string, table []engine.StandingRow) (string, error) {
	if len(table) == 0 {
		return "", fmt.Errorf("empty standings table")
	}

	now := time.Now().UTC()
	rows := make([]ParquetStandingRow, 0, len(table))
	for _, r := range table {
		rows = append(rows, ParquetStandingRow{
			CompetitionID: competitionID,
			Season:        season,
			Position:      r.Position,
			TeamID:        r.TeamID,
			TeamName:      r.TeamName,
			Played:        r.Played,
			Wins:          r.Wins,
			Draws:         r.Draws,
			Losses:        r.Losses,
			GoalsFor:      r.GoalsFor,
			GoalsAgainst:  r.GoalsAgainst,
			GoalDiff:      r.GoalDifference(),
			Points:        r.Points,
			ExportedAt:    now,
		})
	}

	path := w.filename("standings", competitionID, now)
	if err := parquet.WriteFile(path, rows); err != nil {
		return "", fmt.Errorf("failed to write standings file: %w", err)
	}
	return path, nil
}

// WriteScorers writes a computed leaderboard as one Parquet file.
func (w *ParquetExporter) WriteScorers(competitionID, season string, scorers []engine.ScorerRow) (string, error) {
	if len(scorers) == 0 {
		return "", fmt.Errorf("empty scorer leaderboard")
	}

	now := time.Now().UTC()
	rows := make([]ParquetScorerRow, 0, len(scorers))
	for _, r := range scorers {
		rows = append(rows, ParquetScorerRow{
			CompetitionID: competitionID,
			Season:        season,
			Rank:          r.Rank,
			PlayerID:      r.PlayerID,
			PlayerName:    r.PlayerName,
			Position:      string(r.Position),
			TeamName:      r.TeamName,
			Goals:         r.Goals,
			Assists:       r.Assists,
			ExportedAt:    now,
		})
	}

	path := w.filename("scorers", competitionID, now)
	if err := parquet.WriteFile(path, rows); err != nil {
		return "", fmt.Errorf("failed to write scorers file: %w", err)
	}
	return path, nil
}

// WriteHeadToHead writes one pairing record as a Parquet file.
func (w *ParquetExporter) WriteHeadToHead(record engine.HeadToHead) (string, error) {
	now := time.Now().UTC()
	rows := []ParquetHeadToHead{{
		Team1ID:    record.Team1ID,
		Team2ID:    record.Team2ID,
		Matches:    record.Matches,
		Team1Wins:  record.Team1Wins,
		Team2Wins:  record.Team2Wins,
		Draws:      record.Draws,
		Team1Goals: record.Team1Goals,
		Team2Goals: record.Team2Goals,
		ExportedAt: now,
	}}

	pairing := record.Team1ID + "_" + record.Team2ID
	path := w.filename("head_to_head", pairing, now)
	if err := parquet.WriteFile(path, rows); err != nil {
		return "", fmt.Errorf("failed to write head-to-head file: %w", err)
	}
	return path, nil
}

func (w *ParquetExporter) filename(kind, key string, now time.Time) string {
	name := fmt.Sprintf("%s_%s_%d.parquet", key, now.Format("20060102_150405"), now.UnixNano())
	return filepath.Join(w.baseDir, kind, name)
}
