package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/iccir919/habit-tracker/models"

	"gorm.io/gorm"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type HabitService struct {
	db *gorm.DB
}

func NewHabitService(db *gorm.DB) *HabitService {
	return &HabitService{db: db}
}

type CreateHabitInput struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	TrackingType   string            `json:"tracking_type"`
	TargetDuration *int              `json:"target_duration"`
	TargetDays     models.TargetDays `json:"target_days"`
	Category       string            `json:"category"`
	Color          string            `json:"color"`
	Icon           string            `json:"icon"`
}

type UpdateHabitInput struct {
	Name           *string            `json:"name"`
	Description    *string            `json:"description"`
	TrackingType   *string            `json:"tracking_type"`
	TargetDuration *int               `json:"target_duration"`
	TargetDays     *models.TargetDays `json:"target_days"`
	Category       *string            `json:"category"`
	Color          *string            `json:"color"`
	Icon           *string            `json:"icon"`
	Active         *bool              `json:"active"`
	Archived       *bool              `json:"archived"`
}

func validTrackingType(t string) bool {
	return t == models.TrackingCompletion || t == models.TrackingDuration
}

func (s *HabitService) Create(userID uint, in CreateHabitInput) (*models.Habit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !validTrackingType(in.TrackingType) {
		return nil, fmt.Errorf("%w: invalid tracking type", ErrInvalidInput)
	}
	if in.TrackingType == models.TrackingDuration {
		if in.TargetDuration == nil || *in.TargetDuration < 1 {
			return nil, fmt.Errorf("%w: target duration must be positive", ErrInvalidInput)
		}
	}
	if in.Color != "" && !colorPattern.MatchString(in.Color) {
		return nil, fmt.Errorf("%w: invalid color format", ErrInvalidInput)
	}

	habit := models.Habit{
		UserID:       userID,
		Name:         name,
		Description:  in.Description,
		TrackingType: in.TrackingType,
		TargetDays:   in.TargetDays,
		Category:     in.Category,
		Color:        in.Color,
		Icon:         in.Icon,
		Active:       true,
	}
	if in.TargetDuration != nil {
		habit.TargetDuration = *in.TargetDuration
	}
	if habit.TargetDays == nil {
		habit.TargetDays = models.TargetDays{}
	}
	if habit.Color == "" {
		habit.Color = "#3b82f6"
	}

	if err := s.db.Create(&habit).Error; err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}
	return &habit, nil
}

// List returns the user's habits filtered by active/archived state, newest
// first.
func (s *HabitService) List(userID uint, active, archived bool) ([]models.Habit, error) {
	var habits []models.Habit
	err := s.db.
		Where("user_id = ? AND active = ? AND archived = ?", userID, active, archived).
		Order("created_at DESC").
		Find(&habits).Error
	if err != nil {
		return nil, err
	}
	return habits, nil
}

// Get returns the habit only when it belongs to the user.
func (s *HabitService) Get(userID, habitID uint) (*models.Habit, error) {
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

func (s *HabitService) Update(userID, habitID uint, in UpdateHabitInput) (*models.Habit, error) {
	habit, err := s.Get(userID, habitID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		habit.Name = name
	}
	if in.Description != nil {
		habit.Description = *in.Description
	}
	if in.TrackingType != nil {
		if !validTrackingType(*in.TrackingType) {
			return nil, fmt.Errorf("%w: invalid tracking type", ErrInvalidInput)
		}
		habit.TrackingType = *in.TrackingType
	}
	if in.TargetDuration != nil {
		habit.TargetDuration = *in.TargetDuration
	}
	if habit.TrackingType == models.TrackingDuration && habit.TargetDuration < 1 {
		return nil, fmt.Errorf("%w: target duration must be positive", ErrInvalidInput)
	}
	if in.TargetDays != nil {
		habit.TargetDays = *in.TargetDays
	}
	if in.Category != nil {
		habit.Category = *in.Category
	}
	if in.Color != nil {
		if !colorPattern.MatchString(*in.Color) {
			return nil, fmt.Errorf("%w: invalid color format", ErrInvalidInput)
		}
		habit.Color = *in.Color
	}
	if in.Icon != nil {
		habit.Icon = *in.Icon
	}
	if in.Active != nil {
		habit.Active = *in.Active
	}
	if in.Archived != nil {
		habit.Archived = *in.Archived
	}

	if err := s.db.Save(habit).Error; err != nil {
		return nil, fmt.Errorf("update habit: %w", err)
	}
	return habit, nil
}

// Delete hard-deletes a habit with its logs and their time entries in one
// transaction.
func (s *HabitService) Delete(userID, habitID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Unscoped().
			Where("id = ? AND user_id = ?", habitID, userID).
			Delete(&models.Habit{})
		if result.Error != nil {
			return fmt.Errorf("delete habit: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: habit %d", ErrNotFound, habitID)
		}

		var logIDs []uint
		if err := tx.Model(&models.HabitLog{}).
			Where("habit_id = ?", habitID).
			Pluck("id", &logIDs).Error; err != nil {
			return err
		}
		if len(logIDs) > 0 {
			if err := tx.Unscoped().
				Where("habit_log_id IN ?", logIDs).
				Delete(&models.TimeEntry{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().
			Where("habit_id = ?", habitID).
			Delete(&models.HabitLog{}).Error; err != nil {
			return err
		}
		return nil
	})
}
