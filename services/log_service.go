package services

import (
	"errors"
	"fmt"

	"github.com/iccir919/habit-tracker/models"
	"github.com/iccir919/habit-tracker/utils"

	"gorm.io/gorm"
)

// LogService reconciles the single daily log row per (habit, date).
type LogService struct {
	db *gorm.DB
}

func NewLogService(db *gorm.DB) *LogService {
	return &LogService{db: db}
}

// UpsertLogInput carries a partial update; nil fields are left untouched on
// an existing log and default on a new one.
type UpsertLogInput struct {
	Date      string  `json:"date"`
	Completed *bool   `json:"completed"`
	Duration  *int    `json:"duration"`
	Notes     *string `json:"notes"`
}

// Upsert creates or updates the log for (habit, date). After the call
// exactly one row exists for the pair; a concurrent insert losing the race
// against the unique index is retried as an update instead of surfacing a
// duplicate to the caller.
func (s *LogService) Upsert(userID, habitID uint, in UpsertLogInput) (*models.HabitLog, error) {
	if in.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if in.Duration != nil && *in.Duration < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}
	date, err := utils.NormalizeDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if _, err := s.habit(userID, habitID); err != nil {
		return nil, err
	}

	log, err := s.find(habitID, date)
	if err == nil {
		return s.apply(log, in)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	log = &models.HabitLog{
		UserID:  userID,
		HabitID: habitID,
		Date:    date,
	}
	if in.Completed != nil {
		log.Completed = *in.Completed
	}
	if in.Duration != nil {
		log.Duration = *in.Duration
	}
	if in.Notes != nil {
		log.Notes = *in.Notes
	}

	if createErr := s.db.Create(log).Error; createErr != nil {
		// Lost an insert race for the same (habit, date); the unique index
		// rejected the duplicate. Re-read and update that row instead.
		existing, findErr := s.find(habitID, date)
		if findErr != nil {
			return nil, fmt.Errorf("%w: duplicate daily log for %s", ErrConflict, date)
		}
		return s.apply(existing, in)
	}
	return log, nil
}

// Delete removes the log for (habit, date).
func (s *LogService) Delete(userID, habitID uint, rawDate string) error {
	if rawDate == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date, err := utils.NormalizeDate(rawDate)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	result := s.db.Unscoped().
		Where("user_id = ? AND habit_id = ? AND date = ?", userID, habitID, date).
		Delete(&models.HabitLog{})
	if result.Error != nil {
		return fmt.Errorf("delete log: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: no log for habit %d on %s", ErrNotFound, habitID, date)
	}
	return nil
}

// ListByDate returns all of the user's logs for one day.
func (s *LogService) ListByDate(userID uint, rawDate string) ([]models.HabitLog, error) {
	date, err := utils.NormalizeDate(rawDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	var logs []models.HabitLog
	if err := s.db.Where("user_id = ? AND date = ?", userID, date).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListForHabit returns a habit's logs newest first, optionally bounded below
// by startDate. limit <= 0 defaults to 30.
func (s *LogService) ListForHabit(userID, habitID uint, startDate string, limit int) ([]models.HabitLog, error) {
	if _, err := s.habit(userID, habitID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 30
	}

	query := s.db.Where("user_id = ? AND habit_id = ?", userID, habitID)
	if startDate != "" {
		date, err := utils.NormalizeDate(startDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		query = query.Where("date >= ?", date)
	}

	var logs []models.HabitLog
	if err := query.Order("date DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// SummaryItem pairs a habit with its log for one day, if any. Scheduled
// reflects the habit's weekday set for that day.
type SummaryItem struct {
	models.Habit
	Log       *models.HabitLog `json:"log"`
	Scheduled bool             `json:"scheduled"`
}

type DailySummary struct {
	Date   string        `json:"date"`
	Habits []SummaryItem `json:"habits"`
}

// DailySummary returns every active habit with its log for the given day.
func (s *LogService) DailySummary(userID uint, rawDate string) (*DailySummary, error) {
	date, err := utils.NormalizeDate(rawDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	day, err := utils.ParseDay(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	var habits []models.Habit
	if err := s.db.
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at ASC").
		Find(&habits).Error; err != nil {
		return nil, err
	}

	logs, err := s.ListByDate(userID, date)
	if err != nil {
		return nil, err
	}
	byHabit := make(map[uint]*models.HabitLog, len(logs))
	for i := range logs {
		byHabit[logs[i].HabitID] = &logs[i]
	}

	summary := &DailySummary{Date: date, Habits: make([]SummaryItem, 0, len(habits))}
	for _, habit := range habits {
		summary.Habits = append(summary.Habits, SummaryItem{
			Habit:     habit,
			Log:       byHabit[habit.ID],
			Scheduled: habit.ScheduledOn(day.Weekday()),
		})
	}
	return summary, nil
}

func (s *LogService) habit(userID, habitID uint) (*models.Habit, error) {
	var habit models.Habit
	err := s.db.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: habit %d", ErrNotFound, habitID)
		}
		return nil, err
	}
	return &habit, nil
}

func (s *LogService) find(habitID uint, date string) (*models.HabitLog, error) {
	var log models.HabitLog
	err := s.db.Where("habit_id = ? AND date = ?", habitID, date).First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *LogService) apply(log *models.HabitLog, in UpsertLogInput) (*models.HabitLog, error) {
	if in.Completed != nil {
		log.Completed = *in.Completed
	}
	if in.Duration != nil {
		log.Duration = *in.Duration
	}
	if in.Notes != nil {
		log.Notes = *in.Notes
	}
	if err := s.db.Save(log).Error; err != nil {
		return nil, fmt.Errorf("update log: %w", err)
	}
	return log, nil
}
