package controllers

import (
	"net/http"

	"github.com/iccir919/habit-tracker/services"

	"github.com/gin-gonic/gin"
)

type TimeEntryController struct {
	entries *services.TimeEntryService
}

func NewTimeEntryController(entries *services.TimeEntryService) *TimeEntryController {
	return &TimeEntryController{entries: entries}
}

type AddTimeEntryInput struct {
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

func (ctl *TimeEntryController) Add(c *gin.Context) {
	habitID, ok := paramID(c, "habitId")
	if !ok {
		return
	}

	var input AddTimeEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ctl.entries.Add(c.GetUint("userID"), habitID, c.Param("date"),
		input.StartTime, input.EndTime)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (ctl *TimeEntryController) List(c *gin.Context) {
	logID, ok := paramID(c, "logId")
	if !ok {
		return
	}

	entries, err := ctl.entries.List(c.GetUint("userID"), logID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (ctl *TimeEntryController) Delete(c *gin.Context) {
	entryID, ok := paramID(c, "entryId")
	if !ok {
		return
	}

	result, err := ctl.entries.Delete(c.GetUint("userID"), entryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Time entry deleted successfully",
		"totalDuration": result.TotalDuration,
		"isCompleted":   result.IsCompleted,
	})
}
