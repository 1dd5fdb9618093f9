package futgraph

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	futgraphlib "github.com/futgraph/futgraph"
	"github.com/futgraph/futgraph/pkg/config"
	"github.com/futgraph/futgraph/pkg/driver"
	futgraphLogger "github.com/futgraph/futgraph/pkg/logger"
	"github.com/futgraph/futgraph/pkg/query"
	"github.com/futgraph/futgraph/pkg/server"
	"github.com/futgraph/futgraph/pkg/telemetry"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the FutGraph HTTP server",
	Long: `Start the FutGraph HTTP server to provide REST API access to the
football knowledge graph.

The server provides endpoints for:
- Competition standings, top scorers, and fixture lists
- Team records, rosters, form, head-to-head, and rivalry queries
- Player search, stats, careers, common teammates, and career-path matching
- Health checks

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServer,
}

var (
	serverHost string
	serverPort int
	serverMode string
)

func init() {
	rootCmd.AddCommand(serverCmd)

	// Server-specific flags
	serverCmd.Flags().StringVar(&serverHost, "host", "localhost", "Server host")
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")
	serverCmd.Flags().StringVar(&serverMode, "mode", "debug", "Server mode (debug, release, test)")

	// Database flags
	serverCmd.Flags().String("db-driver", "neo4j", "Database driver (neo4j)")
	serverCmd.Flags().String("db-uri", "bolt://localhost:7687", "Database URI")
	serverCmd.Flags().String("db-username", "neo4j", "Database username")
	serverCmd.Flags().String("db-password", "", "Database password")
	serverCmd.Flags().String("db-database", "neo4j", "Database name")

	// Query flags
	serverCmd.Flags().Int64("max-in-flight", 0, "Maximum concurrently executing queries")
	serverCmd.Flags().Int("request-timeout-ms", 0, "Per-query timeout in milliseconds")

	// Telemetry flags
	serverCmd.Flags().Bool("telemetry", false, "Enable Parquet query telemetry")
	serverCmd.Flags().String("telemetry-parquet-path", "", "Path to directory for telemetry output")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	overrideConfigWithFlags(cmd, cfg)

	// Validate configuration
	if err := validateServerConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize FutGraph
	fmt.Println("Initializing FutGraph...")
	client, err := initializeFutGraph(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize FutGraph: %w", err)
	}

	// Create and setup server
	srv := server.New(cfg, client)
	srv.Setup()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal: %v\n", sig)

		// Create shutdown context with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Shutdown server
		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		if err := client.Close(shutdownCtx); err != nil {
			return fmt.Errorf("driver shutdown error: %w", err)
		}

		fmt.Println("Server stopped gracefully")
		return nil
	}
}

func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	// Server flags
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serverMode
	}

	// Database flags
	if cmd.Flags().Changed("db-driver") {
		cfg.Database.Driver, _ = cmd.Flags().GetString("db-driver")
	}
	if cmd.Flags().Changed("db-uri") {
		cfg.Database.URI, _ = cmd.Flags().GetString("db-uri")
	}
	if cmd.Flags().Changed("db-username") {
		cfg.Database.Username, _ = cmd.Flags().GetString("db-username")
	}
	if cmd.Flags().Changed("db-password") {
		cfg.Database.Password, _ = cmd.Flags().GetString("db-password")
	}
	if cmd.Flags().Changed("db-database") {
		cfg.Database.Database, _ = cmd.Flags().GetString("db-database")
	}

	// Query flags
	if cmd.Flags().Changed("max-in-flight") {
		cfg.Query.MaxInFlight, _ = cmd.Flags().GetInt64("max-in-flight")
	}
	if cmd.Flags().Changed("request-timeout-ms") {
		cfg.Query.RequestTimeoutMS, _ = cmd.Flags().GetInt("request-timeout-ms")
	}

	// Telemetry flags
	if cmd.Flags().Changed("telemetry") {
		cfg.Telemetry.Enabled, _ = cmd.Flags().GetBool("telemetry")
	}
	if cmd.Flags().Changed("telemetry-parquet-path") {
		cfg.Telemetry.ParquetPath, _ = cmd.Flags().GetString("telemetry-parquet-path")
	}
}

func validateServerConfig(cfg *config.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}

	if cfg.Database.URI == "" {
		return fmt.Errorf("database URI is required")
	}
	return nil
}

func initializeFutGraph(cfg *config.Config) (*futgraphlib.Client, error) {
	logger := slog.New(buildLogHandler(cfg))

	// Initialize database driver
	var graphDriver driver.GraphDriver
	switch cfg.Database.Driver {
	case "neo4j":
		neo, err := driver.NewNeo4jDriver(cfg.Database.URI, cfg.Database.Username,
			cfg.Database.Password, cfg.Database.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
		}
		graphDriver = neo
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	if cfg.CircuitBreaker.Enabled {
		settings := driver.DefaultBreakerSettings()
		if cfg.CircuitBreaker.MaxRequests > 0 {
			settings.MaxRequests = cfg.CircuitBreaker.MaxRequests
		}
		if cfg.CircuitBreaker.Interval > 0 {
			settings.Interval = time.Duration(cfg.CircuitBreaker.Interval) * time.Second
		}
		if cfg.CircuitBreaker.Timeout > 0 {
			settings.Timeout = time.Duration(cfg.CircuitBreaker.Timeout) * time.Second
		}
		if cfg.CircuitBreaker.ReadyToTripRatio > 0 {
			settings.ReadyToTripRatio = cfg.CircuitBreaker.ReadyToTripRatio
		}
		graphDriver = driver.NewBreakerDriver(graphDriver, settings)
	}

	// Initialize query telemetry
	var recorder query.Recorder
	if cfg.Telemetry.Enabled && cfg.Telemetry.ParquetPath != "" {
		queryRecorder, err := telemetry.NewQueryRecorder(cfg.Telemetry.ParquetPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create telemetry recorder: %w", err)
		}
		recorder = queryRecorder
	}

	clientConfig := &futgraphlib.Config{
		MaxInFlight:    cfg.Query.MaxInFlight,
		RequestTimeout: time.Duration(cfg.Query.RequestTimeoutMS) * time.Millisecond,
		Recorder:       recorder,
	}
	return futgraphlib.NewClient(graphDriver, clientConfig, logger)
}

// buildLogHandler wires the colorized terminal handler, wrapped with Parquet
// error capture when telemetry is enabled.
func buildLogHandler(cfg *config.Config) slog.Handler {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler = futgraphLogger.NewColorHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	if cfg.Telemetry.Enabled && cfg.Telemetry.ParquetPath != "" {
		if parquetHandler, err := telemetry.NewParquetHandler(handler, cfg.Telemetry.ParquetPath); err == nil {
			handler = parquetHandler
		}
	}
	return handler
}
