package futgraph

import (
	"context"
	"log/slog"
	"time"

	"github.com/futgraph/futgraph/pkg/driver"
	"github.com/futgraph/futgraph/pkg/query"
)

// FutGraph is the main interface for querying a football knowledge graph.
// Every operation validates its request, answers from the graph store, and
// fails with a *query.Error classified by kind.
type FutGraph interface {
	// CompetitionStandings computes the league table of a competition season.
	CompetitionStandings(ctx context.Context, req query.StandingsRequest) (*query.StandingsResult, *query.Error)

	// TopScorers ranks the goal scorers of a competition season.
	TopScorers(ctx context.Context, req query.TopScorersRequest) (*query.TopScorersResult, *query.Error)

	// HeadToHead aggregates the completed fixtures between two teams.
	HeadToHead(ctx context.Context, req query.HeadToHeadRequest) (*query.HeadToHeadResult, *query.Error)

	// CommonTeammates finds players whose tenures overlapped both subjects'.
	CommonTeammates(ctx context.Context, req query.TeammatesRequest) (*query.TeammatesResult, *query.Error)

	// RivalryStats scores the intensity of a team pairing.
	RivalryStats(ctx context.Context, req query.RivalryRequest) (*query.RivalryResult, *query.Error)

	// CareerPathMatch finds players whose careers satisfy a criteria
	// conjunction.
	CareerPathMatch(ctx context.Context, req query.CareerPathRequest) (*query.CareerPathResult, *query.Error)

	// TeamForm summarizes a team's most recent completed matches.
	TeamForm(ctx context.Context, req query.FormRequest) (*query.FormResult, *query.Error)

	// SearchPlayers finds players by name fragment.
	SearchPlayers(ctx context.Context, req query.SearchPlayersRequest) (*query.SearchPlayersResult, *query.Error)

	// SearchTeams finds teams by name fragment.
	SearchTeams(ctx context.Context, req query.SearchTeamsRequest) (*query.SearchTeamsResult, *query.Error)

	// PlayerStats aggregates a player's scoring and discipline record.
	PlayerStats(ctx context.Context, req query.PlayerStatsRequest) (*query.PlayerStatsResult, *query.Error)

	// PlayerCareer lists a player's club history in chronological order.
	PlayerCareer(ctx context.Context, req query.CareerRequest) (*query.CareerResult, *query.Error)

	// TeamStats aggregates a team's playing record with venue splits.
	TeamStats(ctx context.Context, req query.TeamStatsRequest) (*query.TeamStatsResult, *query.Error)

	// TeamRoster lists a team's squad at a point in time.
	TeamRoster(ctx context.Context, req query.RosterRequest) (*query.RosterResult, *query.Error)

	// CompetitionMatches lists the fixtures of a competition season.
	CompetitionMatches(ctx context.Context, req query.CompetitionMatchesRequest) (*query.CompetitionMatchesResult, *query.Error)

	// MatchDetails resolves one match with its scoring and discipline
	// timeline.
	MatchDetails(ctx context.Context, req query.MatchDetailsRequest) (*query.MatchDetailsResult, *query.Error)

	// Close closes the underlying store connection.
	Close(ctx context.Context) error
}

// Config holds client configuration.
type Config struct {
	// MaxInFlight caps concurrently executing queries.
	MaxInFlight int64
	// RequestTimeout bounds each query attempt.
	RequestTimeout time.Duration
	// RetryBackoff is the pause before the single store-timeout retry.
	RetryBackoff time.Duration
	// Recorder receives one event per completed query.
	Recorder query.Recorder
	// Now overrides the query clock, mainly for tests.
	Now func() time.Time
}

// Client is the main implementation of the FutGraph interface.
type Client struct {
	*query.Service

	store  driver.GraphDriver
	logger *slog.Logger
}

// NewClient creates a client over the given graph driver.
func NewClient(store driver.GraphDriver, config *Config, logger *slog.Logger) (*Client, error) {
	if config == nil {
		config = &Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	service := query.NewService(store, query.Options{
		MaxInFlight:    config.MaxInFlight,
		RequestTimeout: config.RequestTimeout,
		RetryBackoff:   config.RetryBackoff,
		Logger:         logger,
		Recorder:       config.Recorder,
		Now:            config.Now,
	})
	return &Client{Service: service, store: store, logger: logger}, nil
}

// GetDriver returns the underlying graph driver.
func (c *Client) GetDriver() driver.GraphDriver {
	return c.store
}

// Close closes the underlying store connection.
func (c *Client) Close(ctx context.Context) error {
	return c.store.Close(ctx)
}

var _ FutGraph = (*Client)(nil)
