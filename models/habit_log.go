package models

import (
	"gorm.io/gorm"
)

// HabitLog is the single record of a habit's outcome for one calendar day.
// Date is a timezone-naive YYYY-MM-DD string; the composite unique index on
// (habit_id, date) is the last line of defense against a duplicate-log race.
type HabitLog struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	HabitID   uint   `gorm:"not null;uniqueIndex:idx_habit_log_day" json:"habit_id"`
	Date      string `gorm:"size:10;not null;index;uniqueIndex:idx_habit_log_day" json:"date"`
	Completed bool   `gorm:"default:false" json:"completed"`
	Duration  int    `gorm:"default:0" json:"duration"` // minutes; sum of entries for duration habits
	Notes     string `json:"notes"`

	Entries []TimeEntry `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
