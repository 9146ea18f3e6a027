package controller

import (
	"ctchen222/tictactoe-minimax/internal/api/response"
	"ctchen222/tictactoe-minimax/internal/events"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatsSource reports aggregated session counters.
type StatsSource interface {
	Stats() events.StatsSnapshot
}

type StatsController struct {
	source StatsSource
}

func NewStatsController(source StatsSource) *StatsController {
	return &StatsController{source: source}
}

func (sc *StatsController) Stats(c *gin.Context) {
	response.SuccessResponse(c, http.StatusOK, sc.source.Stats())
}
