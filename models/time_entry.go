package models

import (
	"gorm.io/gorm"
)

// TimeEntry is one start/end segment contributing to a duration habit's
// daily total. Times are HH:MM wall clock on the owning log's calendar day.
type TimeEntry struct {
	gorm.Model
	HabitLogID      uint   `gorm:"index;not null" json:"habit_log_id"`
	StartTime       string `gorm:"not null" json:"start_time"`
	EndTime         string `gorm:"not null" json:"end_time"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
}
