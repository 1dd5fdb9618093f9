package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/futgraph/futgraph"
	"github.com/futgraph/futgraph/pkg/config"
	"github.com/futgraph/futgraph/pkg/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	router   *gin.Engine
	futgraph futgraph.FutGraph
	server   *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, client futgraph.FutGraph) *Server {
	return &Server{
		config:   cfg,
		futgraph: client,
	}
}

// Setup sets up the server routes and middleware
func (s *Server) Setup() {
	// Set gin mode
	gin.SetMode(s.config.Server.Mode)

	// Create router
	s.router = gin.New()

	// Add middleware
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())

	// Setup routes
	s.setupRoutes()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
}

// setupRoutes sets up all the routes
func (s *Server) setupRoutes() {
	// Create handlers
	healthHandler := handlers.NewHealthHandler(s.futgraph)
	queryHandler := handlers.NewQueryHandler(s.futgraph)

	// Health endpoints
	s.router.GET("/health", healthHandler.HealthCheck)
	s.router.GET("/ready", healthHandler.ReadinessCheck)
	s.router.GET("/live", healthHandler.LivenessCheck)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		competitions := v1.Group("/competitions")
		{
			competitions.POST("/standings", queryHandler.CompetitionStandings)
			competitions.POST("/top-scorers", queryHandler.TopScorers)
			competitions.POST("/matches", queryHandler.CompetitionMatches)
		}

		teams := v1.Group("/teams")
		{
			teams.POST("/search", queryHandler.SearchTeams)
			teams.POST("/stats", queryHandler.TeamStats)
			teams.POST("/roster", queryHandler.TeamRoster)
			teams.POST("/form", queryHandler.TeamForm)
			teams.POST("/head-to-head", queryHandler.HeadToHead)
			teams.POST("/rivalry", queryHandler.RivalryStats)
		}

		players := v1.Group("/players")
		{
			players.POST("/search", queryHandler.SearchPlayers)
			players.POST("/stats", queryHandler.PlayerStats)
			players.POST("/career", queryHandler.PlayerCareer)
			players.POST("/common-teammates", queryHandler.CommonTeammates)
			players.POST("/career-path", queryHandler.CareerPathMatch)
		}

		v1.POST("/matches/details", queryHandler.MatchDetails)
	}
}

// Router returns the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the server
func (s *Server) Start() error {
	fmt.Printf("Starting server on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	fmt.Println("Stopping server...")
	return s.server.Shutdown(ctx)
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
