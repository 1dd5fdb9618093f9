package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/futgraph/futgraph"
	"github.com/futgraph/futgraph/pkg/query"
)

// Build information - can be set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// HealthHandler handles health check requests
type HealthHandler struct {
	futgraph futgraph.FutGraph
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(g futgraph.FutGraph) *HealthHandler {
	return &HealthHandler{
		futgraph: g,
	}
}

// HealthCheck handles GET /health - basic liveness check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "futgraph",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// LivenessCheck handles GET /live - Kubernetes liveness probe endpoint
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"service":   "futgraph",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck handles GET /ready - verifies the graph store answers
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	response := gin.H{
		"status":    "ready",
		"service":   "futgraph",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    gin.H{},
	}
	checks := response["checks"].(gin.H)
	allHealthy := true

	if h.futgraph != nil {
		// Probe the store with a lookup that misses. A not-found answer means
		// the store is reachable; store-level kinds mean it is not.
		start := time.Now()
		_, qerr := h.futgraph.TeamForm(ctx, query.FormRequest{TeamID: "readiness-probe"})
		duration := time.Since(start)

		status := gin.H{"status": "healthy", "duration": duration.String()}
		if qerr != nil {
			switch qerr.Kind {
			case query.KindStoreUnavailable, query.KindStoreTimeout, query.KindCancelled:
				status["status"] = "unhealthy"
				status["error"] = qerr.Message
				allHealthy = false
			}
		}
		checks["database"] = status
	} else {
		checks["database"] = gin.H{
			"status": "unhealthy",
			"error":  "futgraph client not initialized",
		}
		allHealthy = false
	}

	if !allHealthy {
		response["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}
