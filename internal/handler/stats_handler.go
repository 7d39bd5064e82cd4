package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marwan404/StudyHub/internal/service"
)

type StatsHandler struct {
	statsService  *service.StatsService
	streakService *service.StreakService
}

func NewStatsHandler(statsService *service.StatsService, streakService *service.StreakService) *StatsHandler {
	return &StatsHandler{
		statsService:  statsService,
		streakService: streakService,
	}
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, apiErr := h.statsService.Get(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *StatsHandler) GetStreak(c *gin.Context) {
	record, apiErr := h.streakService.Get(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": record})
}
