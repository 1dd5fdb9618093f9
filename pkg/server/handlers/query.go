package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/futgraph/futgraph"
	"github.com/futgraph/futgraph/pkg/query"
)

// QueryHandler handles analytics query requests
type QueryHandler struct {
	futgraph futgraph.FutGraph
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(g futgraph.FutGraph) *QueryHandler {
	return &QueryHandler{
		futgraph: g,
	}
}

// writeError renders a query error with its mapped status code.
func writeError(c *gin.Context, qerr *query.Error) {
	c.JSON(qerr.HTTPStatus(), gin.H{"error": qerr})
}

// handle decodes the request body into req, runs the operation, and renders
// either the result or the classified error.
func handle[Req any, Res any](c *gin.Context, op func(Req) (Res, *query.Error)) {
	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &query.Error{
			Kind:    query.KindInvalidParameter,
			Message: "invalid request body: " + err.Error(),
		})
		return
	}
	result, qerr := op(req)
	if qerr != nil {
		writeError(c, qerr)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CompetitionStandings handles POST /api/v1/competitions/standings
func (h *QueryHandler) CompetitionStandings(c *gin.Context) {
	handle(c, func(req query.StandingsRequest) (*query.StandingsResult, *query.Error) {
		return h.futgraph.CompetitionStandings(c.Request.Context(), req)
	})
}

// TopScorers handles POST /api/v1/competitions/top-scorers
func (h *QueryHandler) TopScorers(c *gin.Context) {
	handle(c, func(req query.TopScorersRequest) (*query.TopScorersResult, *query.Error) {
		return h.futgraph.TopScorers(c.Request.Context(), req)
	})
}

// CompetitionMatches handles POST /api/v1/competitions/matches
func (h *QueryHandler) CompetitionMatches(c *gin.Context) {
	handle(c, func(req query.CompetitionMatchesRequest) (*query.CompetitionMatchesResult, *query.Error) {
		return h.futgraph.CompetitionMatches(c.Request.Context(), req)
	})
}

// HeadToHead handles POST /api/v1/teams/head-to-head
func (h *QueryHandler) HeadToHead(c *gin.Context) {
	handle(c, func(req query.HeadToHeadRequest) (*query.HeadToHeadResult, *query.Error) {
		return h.futgraph.HeadToHead(c.Request.Context(), req)
	})
}

// RivalryStats handles POST /api/v1/teams/rivalry
func (h *QueryHandler) RivalryStats(c *gin.Context) {
	handle(c, func(req query.RivalryRequest) (*query.RivalryResult, *query.Error) {
		return h.futgraph.RivalryStats(c.Request.Context(), req)
	})
}

// TeamForm handles POST /api/v1/teams/form
func (h *QueryHandler) TeamForm(c *gin.Context) {
	handle(c, func(req query.FormRequest) (*query.FormResult, *query.Error) {
		return h.futgraph.TeamForm(c.Request.Context(), req)
	})
}

// SearchTeams handles POST /api/v1/teams/search
func (h *QueryHandler) SearchTeams(c *gin.Context) {
	handle(c, func(req query.SearchTeamsRequest) (*query.SearchTeamsResult, *query.Error) {
		return h.futgraph.SearchTeams(c.Request.Context(), req)
	})
}

// TeamStats handles POST /api/v1/teams/stats
func (h *QueryHandler) TeamStats(c *gin.Context) {
	handle(c, func(req query.TeamStatsRequest) (*query.TeamStatsResult, *query.Error) {
		return h.futgraph.TeamStats(c.Request.Context(), req)
	})
}

// TeamRoster handles POST /api/v1/teams/roster
func (h *QueryHandler) TeamRoster(c *gin.Context) {
	handle(c, func(req query.RosterRequest) (*query.RosterResult, *query.Error) {
		return h.futgraph.TeamRoster(c.Request.Context(), req)
	})
}

// SearchPlayers handles POST /api/v1/players/search
func (h *QueryHandler) SearchPlayers(c *gin.Context) {
	handle(c, func(req query.SearchPlayersRequest) (*query.SearchPlayersResult, *query.Error) {
		return h.futgraph.SearchPlayers(c.Request.Context(), req)
	})
}

// PlayerStats handles POST /api/v1/players/stats
func (h *QueryHandler) PlayerStats(c *gin.Context) {
	handle(c, func(req query.PlayerStatsRequest) (*query.PlayerStatsResult, *query.Error) {
		return h.futgraph.PlayerStats(c.Request.Context(), req)
	})
}

// PlayerCareer handles POST /api/v1/players/career
func (h *QueryHandler) PlayerCareer(c *gin.Context) {
	handle(c, func(req query.CareerRequest) (*query.CareerResult, *query.Error) {
		return h.futgraph.PlayerCareer(c.Request.Context(), req)
	})
}

// CommonTeammates handles POST /api/v1/players/common-teammates
func (h *QueryHandler) CommonTeammates(c *gin.Context) {
	handle(c, func(req query.TeammatesRequest) (*query.TeammatesResult, *query.Error) {
		return h.futgraph.CommonTeammates(c.Request.Context(), req)
	})
}

// CareerPathMatch handles POST /api/v1/players/career-path
func (h *QueryHandler) CareerPathMatch(c *gin.Context) {
	handle(c, func(req query.CareerPathRequest) (*query.CareerPathResult, *query.Error) {
		return h.futgraph.CareerPathMatch(c.Request.Context(), req)
	})
}

// MatchDetails handles POST /api/v1/matches/details
func (h *QueryHandler) MatchDetails(c *gin.Context) {
	handle(c, func(req query.MatchDetailsRequest) (*query.MatchDetailsResult, *query.Error) {
		return h.futgraph.MatchDetails(c.Request.Context(), req)
	})
}
