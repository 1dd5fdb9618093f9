package futgraph

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/futgraph/futgraph/pkg/config"
	"github.com/futgraph/futgraph/pkg/export"
	"github.com/futgraph/futgraph/pkg/query"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export competition snapshots to Parquet files",
	Long: `Compute the standings table and top-scorer leaderboard for a
competition season and write them as Parquet files for offline analysis.`,
	RunE: runExport,
}

var (
	exportCompetition string
	exportSeason      string
	exportOutputDir   string
	exportLimit       int
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportCompetition, "competition", "", "Competition ID to export")
	exportCmd.Flags().StringVar(&exportSeason, "season", "", "Season label, e.g. 2023")
	exportCmd.Flags().StringVar(&exportOutputDir, "output-dir", "./futgraph-export", "Directory for Parquet output")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 50, "Maximum scorer rows to export")

	exportCmd.MarkFlagRequired("competition")
	exportCmd.MarkFlagRequired("season")

	// Database flags shared with the server command
	exportCmd.Flags().String("db-driver", "neo4j", "Database driver (neo4j)")
	exportCmd.Flags().String("db-uri", "bolt://localhost:7687", "Database URI")
	exportCmd.Flags().String("db-username", "neo4j", "Database username")
	exportCmd.Flags().String("db-password", "", "Database password")
	exportCmd.Flags().String("db-database", "neo4j", "Database name")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	overrideConfigWithFlags(cmd, cfg)

	client, err := initializeFutGraph(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize FutGraph: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	defer client.Close(context.Background())

	exporter, err := export.NewParquetExporter(exportOutputDir)
	if err != nil {
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	standings, qerr := client.CompetitionStandings(ctx, query.StandingsRequest{
		CompetitionID: exportCompetition,
		Season:        exportSeason,
	})
	if qerr != nil {
		return fmt.Errorf("standings query failed: %w", qerr)
	}
	path, err := exporter.WriteStandings(exportCompetition, exportSeason, standings.Table)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote standings: %s\n", path)

	scorers, qerr := client.TopScorers(ctx, query.TopScorersRequest{
		CompetitionID: exportCompetition,
		Season:        exportSeason,
		Limit:         exportLimit,
	})
	if qerr != nil {
		return fmt.Errorf("top scorers query failed: %w", qerr)
	}
	path, err = exporter.WriteScorers(exportCompetition, exportSeason, scorers.Scorers)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote top scorers: %s\n", path)

	return nil
}
