package controllers

import (
	"net/http"

	"github.com/iccir919/habit-tracker/services"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

func (ctl *StatsController) User(c *gin.Context) {
	stats, err := ctl.stats.UserStats(c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (ctl *StatsController) Habit(c *gin.Context) {
	habitID, ok := paramID(c, "habitId")
	if !ok {
		return
	}

	stats, err := ctl.stats.HabitStats(c.GetUint("userID"), habitID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
