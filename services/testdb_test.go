package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/iccir919/habit-tracker/config"
	"github.com/iccir919/habit-tracker/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database with the full schema. The
// shared-cache DSN keeps every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, Password: "hashed"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func createHabit(t *testing.T, db *gorm.DB, userID uint, name, trackingType string, targetDuration int) *models.Habit {
	t.Helper()
	habit := models.Habit{
		UserID:         userID,
		Name:           name,
		TrackingType:   trackingType,
		TargetDuration: targetDuration,
		TargetDays:     models.TargetDays{},
		Active:         true,
	}
	if err := db.Create(&habit).Error; err != nil {
		t.Fatalf("create habit: %v", err)
	}
	return &habit
}

func seedLog(t *testing.T, db *gorm.DB, userID, habitID uint, date string, completed bool, duration int) *models.HabitLog {
	t.Helper()
	log := models.HabitLog{
		UserID:    userID,
		HabitID:   habitID,
		Date:      date,
		Completed: completed,
		Duration:  duration,
	}
	if err := db.Create(&log).Error; err != nil {
		t.Fatalf("seed log for %s: %v", date, err)
	}
	return &log
}
