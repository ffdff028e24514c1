package controllers

import (
	"net/http"
	"strconv"

	"github.com/iccir919/habit-tracker/services"

	"github.com/gin-gonic/gin"
)

type LogController struct {
	logs *services.LogService
}

func NewLogController(logs *services.LogService) *LogController {
	return &LogController{logs: logs}
}

func (ctl *LogController) Upsert(c *gin.Context) {
	habitID, ok := paramID(c, "habitId")
	if !ok {
		return
	}

	var input services.UpsertLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := ctl.logs.Upsert(c.GetUint("userID"), habitID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (ctl *LogController) Delete(c *gin.Context) {
	habitID, ok := paramID(c, "habitId")
	if !ok {
		return
	}

	if err := ctl.logs.Delete(c.GetUint("userID"), habitID, c.Query("date")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Log deleted successfully"})
}

func (ctl *LogController) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date is required"})
		return
	}

	logs, err := ctl.logs.ListByDate(c.GetUint("userID"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (ctl *LogController) ListForHabit(c *gin.Context) {
	habitID, ok := paramID(c, "habitId")
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	logs, err := ctl.logs.ListForHabit(c.GetUint("userID"), habitID, c.Query("startDate"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (ctl *LogController) DailySummary(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date is required"})
		return
	}

	summary, err := ctl.logs.DailySummary(c.GetUint("userID"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
