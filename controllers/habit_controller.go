package controllers

import (
	"net/http"
	"strconv"

	"github.com/iccir919/habit-tracker/services"

	"github.com/gin-gonic/gin"
)

type HabitController struct {
	habits *services.HabitService
}

func NewHabitController(habits *services.HabitService) *HabitController {
	return &HabitController{habits: habits}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func (ctl *HabitController) Create(c *gin.Context) {
	var input services.CreateHabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := ctl.habits.Create(c.GetUint("userID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, habit)
}

func (ctl *HabitController) List(c *gin.Context) {
	active := c.Query("active") != "false"
	archived := c.Query("archived") == "true"

	habits, err := ctl.habits.List(c.GetUint("userID"), active, archived)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

func (ctl *HabitController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	habit, err := ctl.habits.Get(c.GetUint("userID"), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

func (ctl *HabitController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input services.UpdateHabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := ctl.habits.Update(c.GetUint("userID"), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

func (ctl *HabitController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctl.habits.Delete(c.GetUint("userID"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Habit deleted successfully"})
}
