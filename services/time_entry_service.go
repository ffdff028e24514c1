package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/iccir919/habit-tracker/models"
	"github.com/iccir919/habit-tracker/utils"

	"gorm.io/gorm"
)

// TimeEntryService owns the time-entry sub-ledger of duration habits. Every
// mutation recomputes the owning log's duration and completed flag inside
// the same transaction, so the cached total never diverges from the sum of
// the entries.
type TimeEntryService struct {
	db *gorm.DB
}

func NewTimeEntryService(db *gorm.DB) *TimeEntryService {
	return &TimeEntryService{db: db}
}

// TimeEntryResult reports the day's recomputed state after a mutation.
type TimeEntryResult struct {
	Entry         *models.TimeEntry `json:"entry,omitempty"`
	TotalDuration int               `json:"totalDuration"`
	IsCompleted   bool              `json:"isCompleted"`
}

const clockFormat = "15:04"

// minutesBetween returns the whole minutes from start to end on one
// calendar day.
func minutesBetween(start, end string) (int, error) {
	st, err := time.Parse(clockFormat, start)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid start time", ErrInvalidInput)
	}
	et, err := time.Parse(clockFormat, end)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid end time", ErrInvalidInput)
	}
	return int(et.Sub(st).Round(time.Minute) / time.Minute), nil
}

// Add inserts a time entry for (habit, date), creating the daily log first
// if the day has none yet. The interval is validated before anything is
// written: a rejected call leaves no log and no entry behind.
func (s *TimeEntryService) Add(userID, habitID uint, rawDate, startTime, endTime string) (*TimeEntryResult, error) {
	date, err := utils.NormalizeDate(rawDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	minutes, err := minutesBetween(startTime, endTime)
	if err != nil {
		return nil, err
	}
	if minutes <= 0 {
		return nil, fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
	}

	var habit models.Habit
	if err := s.db.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: habit %d", ErrNotFound, habitID)
		}
		return nil, err
	}

	result := &TimeEntryResult{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var log models.HabitLog
		err := tx.Where("habit_id = ? AND date = ?", habitID, date).First(&log).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log = models.HabitLog{UserID: userID, HabitID: habitID, Date: date}
			if err := tx.Create(&log).Error; err != nil {
				return fmt.Errorf("create log: %w", err)
			}
		} else if err != nil {
			return err
		}

		entry := models.TimeEntry{
			HabitLogID:      log.ID,
			StartTime:       startTime,
			EndTime:         endTime,
			DurationMinutes: minutes,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("create time entry: %w", err)
		}

		total, completed, err := recomputeLog(tx, &log, habit.TargetDuration)
		if err != nil {
			return err
		}

		result.Entry = &entry
		result.TotalDuration = total
		result.IsCompleted = completed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// List returns a log's entries ordered by start time ascending.
func (s *TimeEntryService) List(userID, logID uint) ([]models.TimeEntry, error) {
	var log models.HabitLog
	err := s.db.Where("id = ? AND user_id = ?", logID, userID).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: log %d", ErrNotFound, logID)
		}
		return nil, err
	}

	var entries []models.TimeEntry
	if err := s.db.
		Where("habit_log_id = ?", log.ID).
		Order("start_time ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes an entry and recomputes the owning log's totals in the
// same transaction. Ownership is checked transitively through the log.
func (s *TimeEntryService) Delete(userID, entryID uint) (*TimeEntryResult, error) {
	var entry models.TimeEntry
	if err := s.db.First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: time entry %d", ErrNotFound, entryID)
		}
		return nil, err
	}

	var log models.HabitLog
	if err := s.db.First(&log, entry.HabitLogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: log %d", ErrNotFound, entry.HabitLogID)
		}
		return nil, err
	}
	if log.UserID != userID {
		return nil, fmt.Errorf("%w: time entry %d", ErrUnauthorized, entryID)
	}

	var habit models.Habit
	if err := s.db.First(&habit, log.HabitID).Error; err != nil {
		return nil, err
	}

	result := &TimeEntryResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&entry).Error; err != nil {
			return fmt.Errorf("delete time entry: %w", err)
		}

		total, completed, err := recomputeLog(tx, &log, habit.TargetDuration)
		if err != nil {
			return err
		}
		result.TotalDuration = total
		result.IsCompleted = completed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// recomputeLog refreshes the log's cached duration and completed flag from
// the surviving entries. A zero target only completes at zero duration via
// the >= comparison, matching direct completion toggles.
func recomputeLog(tx *gorm.DB, log *models.HabitLog, targetDuration int) (int, bool, error) {
	var total int
	err := tx.Model(&models.TimeEntry{}).
		Where("habit_log_id = ?", log.ID).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, false, err
	}

	completed := total >= targetDuration
	err = tx.Model(log).
		Updates(map[string]interface{}{"duration": total, "completed": completed}).Error
	if err != nil {
		return 0, false, fmt.Errorf("update log totals: %w", err)
	}
	return total, completed, nil
}
