package routes

import (
	"github.com/iccir919/habit-tracker/controllers"
	"github.com/iccir919/habit-tracker/middlewares"
	"github.com/iccir919/habit-tracker/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires services to their controllers and registers all routes.
func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	authCtl := controllers.NewAuthController(services.NewAuthService(db))
	habitCtl := controllers.NewHabitController(services.NewHabitService(db))
	logCtl := controllers.NewLogController(services.NewLogService(db))
	entryCtl := controllers.NewTimeEntryController(services.NewTimeEntryService(db))
	statsCtl := controllers.NewStatsController(services.NewStatsService(db))

	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.GET("/me", middlewares.AuthMiddleware(), authCtl.Me)
	}

	habits := r.Group("/habits")
	habits.Use(middlewares.AuthMiddleware())
	{
		habits.GET("", habitCtl.List)
		habits.POST("", habitCtl.Create)
		habits.GET("/:id", habitCtl.Get)
		habits.PUT("/:id", habitCtl.Update)
		habits.DELETE("/:id", habitCtl.Delete)
	}

	logs := r.Group("/logs")
	logs.Use(middlewares.AuthMiddleware())
	{
		logs.GET("/daily", logCtl.DailySummary)
		logs.GET("", logCtl.ListByDate)
		logs.GET("/habit/:habitId", logCtl.ListForHabit)
		logs.POST("/habit/:habitId", logCtl.Upsert)
		logs.DELETE("/habit/:habitId", logCtl.Delete)
	}

	entries := r.Group("/time-entries")
	entries.Use(middlewares.AuthMiddleware())
	{
		entries.GET("/log/:logId", entryCtl.List)
		entries.POST("/habit/:habitId/date/:date", entryCtl.Add)
		entries.DELETE("/:entryId", entryCtl.Delete)
	}

	stats := r.Group("/stats")
	stats.Use(middlewares.AuthMiddleware())
	{
		stats.GET("/user", statsCtl.User)
		stats.GET("/habit/:habitId", statsCtl.Habit)
	}

	return r
}
