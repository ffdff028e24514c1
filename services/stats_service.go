package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/iccir919/habit-tracker/models"
	"github.com/iccir919/habit-tracker/utils"

	"gorm.io/gorm"
)

// StatsService derives streaks and summary statistics from the log history.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

type HabitStreak struct {
	HabitID       uint   `json:"habitId"`
	HabitName     string `json:"habitName"`
	HabitIcon     string `json:"habitIcon"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
}

type UserStats struct {
	TotalHabits    int           `json:"totalHabits"`
	TotalDays      int           `json:"totalDays"`
	TotalLogs      int           `json:"totalLogs"`
	TodayCompleted int           `json:"todayCompleted"`
	TodayTotal     int           `json:"todayTotal"`
	CompletionRate int           `json:"completionRate"`
	TotalMinutes   int           `json:"totalMinutes"`
	TotalHours     int           `json:"totalHours"`
	Streaks        []HabitStreak `json:"streaks"`
}

type RecentLog struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Duration  int    `json:"duration"`
}

type HabitStats struct {
	HabitName        string      `json:"habitName"`
	TotalCompletions int         `json:"totalCompletions"`
	CurrentStreak    int         `json:"currentStreak"`
	LongestStreak    int         `json:"longestStreak"`
	CompletionRate   int         `json:"completionRate"`
	RecentLogs       []RecentLog `json:"recentLogs"`
}

// CalculateStreak walks the habit's logs backward from today and returns the
// current and longest consecutive-completion streaks.
//
// The walk keeps an expected date that steps back one day at a time. A log
// matching the expected date extends the running streak when completed and
// closes it when not; a log falling strictly before the expected date is a
// gap that closes the run and restarts the walk just before that log. The
// current streak takes the first nonzero run closed by an incomplete day or
// gap, or the final run when none was. A missing log for today itself does
// not end the current streak until a dated log lands strictly before the
// expected date.
func (s *StatsService) CalculateStreak(habitID uint) (Streak, error) {
	var logs []models.HabitLog
	err := s.db.
		Select("date", "completed").
		Where("habit_id = ?", habitID).
		Order("date DESC").
		Find(&logs).Error
	if err != nil {
		return Streak{}, err
	}
	if len(logs) == 0 {
		return Streak{}, nil
	}

	now := time.Now()
	expected := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	var current, longest, temp int
	for _, log := range logs {
		day, err := utils.ParseDay(log.Date)
		if err != nil {
			return Streak{}, fmt.Errorf("bad log date %q: %w", log.Date, err)
		}

		switch {
		case day.Equal(expected):
			if log.Completed {
				temp++
				if temp > longest {
					longest = temp
				}
			} else {
				if current == 0 {
					current = temp
				}
				temp = 0
			}
			expected = expected.AddDate(0, 0, -1)

		case day.Before(expected):
			if current == 0 {
				current = temp
			}
			temp = 0
			if log.Completed {
				temp = 1
			}
			expected = day.AddDate(0, 0, -1)
		}
	}

	if current == 0 {
		current = temp
	}
	return Streak{Current: current, Longest: longest}, nil
}

// UserStats composes the per-user dashboard summary.
func (s *StatsService) UserStats(userID uint) (*UserStats, error) {
	stats := &UserStats{Streaks: []HabitStreak{}}

	var habits []models.Habit
	err := s.db.
		Where("user_id = ? AND active = ?", userID, true).
		Find(&habits).Error
	if err != nil {
		return nil, err
	}
	stats.TotalHabits = len(habits)

	var totalLogs int64
	if err := s.db.Model(&models.HabitLog{}).
		Where("user_id = ?", userID).
		Count(&totalLogs).Error; err != nil {
		return nil, err
	}
	stats.TotalLogs = int(totalLogs)

	var totalDays int64
	if err := s.db.Model(&models.HabitLog{}).
		Where("user_id = ?", userID).
		Distinct("date").
		Count(&totalDays).Error; err != nil {
		return nil, err
	}
	stats.TotalDays = int(totalDays)

	today := utils.Today()
	stats.TodayTotal = len(habits)
	if len(habits) > 0 {
		habitIDs := make([]uint, 0, len(habits))
		for _, h := range habits {
			habitIDs = append(habitIDs, h.ID)
		}
		var todayCompleted int64
		if err := s.db.Model(&models.HabitLog{}).
			Where("user_id = ? AND date = ? AND completed = ? AND habit_id IN ?",
				userID, today, true, habitIDs).
			Count(&todayCompleted).Error; err != nil {
			return nil, err
		}
		stats.TodayCompleted = int(todayCompleted)
	}

	rate, err := s.completionRate(s.db.Where("user_id = ?", userID))
	if err != nil {
		return nil, err
	}
	stats.CompletionRate = rate

	var totalMinutes int
	if err := s.db.Model(&models.HabitLog{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&totalMinutes).Error; err != nil {
		return nil, err
	}
	stats.TotalMinutes = totalMinutes
	stats.TotalHours = int(math.Round(float64(totalMinutes) / 60))

	for _, habit := range habits {
		streak, err := s.CalculateStreak(habit.ID)
		if err != nil {
			return nil, err
		}
		stats.Streaks = append(stats.Streaks, HabitStreak{
			HabitID:       habit.ID,
			HabitName:     habit.Name,
			HabitIcon:     habit.Icon,
			CurrentStreak: streak.Current,
			LongestStreak: streak.Longest,
		})
	}
	sort.SliceStable(stats.Streaks, func(i, j int) bool {
		return stats.Streaks[i].CurrentStreak > stats.Streaks[j].CurrentStreak
	})

	return stats, nil
}

// HabitStats composes the per-habit summary.
func (s *StatsService) HabitStats(userID, habitID uint) (*HabitStats, error) {
	var habit models.Habit
	err := s.db.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: habit %d", ErrNotFound, habitID)
		}
		return nil, err
	}

	stats := &HabitStats{HabitName: habit.Name, RecentLogs: []RecentLog{}}

	var completions int64
	if err := s.db.Model(&models.HabitLog{}).
		Where("habit_id = ? AND completed = ?", habitID, true).
		Count(&completions).Error; err != nil {
		return nil, err
	}
	stats.TotalCompletions = int(completions)

	streak, err := s.CalculateStreak(habitID)
	if err != nil {
		return nil, err
	}
	stats.CurrentStreak = streak.Current
	stats.LongestStreak = streak.Longest

	rate, err := s.completionRate(s.db.Where("habit_id = ?", habitID))
	if err != nil {
		return nil, err
	}
	stats.CompletionRate = rate

	var recent []models.HabitLog
	if err := s.db.
		Where("habit_id = ? AND date >= ?", habitID, utils.DaysAgo(7)).
		Order("date DESC").
		Find(&recent).Error; err != nil {
		return nil, err
	}
	for _, log := range recent {
		stats.RecentLogs = append(stats.RecentLogs, RecentLog{
			Date:      log.Date,
			Completed: log.Completed,
			Duration:  log.Duration,
		})
	}

	return stats, nil
}

// completionRate is the rounded percentage of completed logs over the
// trailing 30 days within the given scope; 0 when the window is empty.
func (s *StatsService) completionRate(scope *gorm.DB) (int, error) {
	since := utils.DaysAgo(30)

	var total, completed int64
	if err := scope.Session(&gorm.Session{}).Model(&models.HabitLog{}).
		Where("date >= ?", since).
		Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	if err := scope.Session(&gorm.Session{}).Model(&models.HabitLog{}).
		Where("date >= ? AND completed = ?", since, true).
		Count(&completed).Error; err != nil {
		return 0, err
	}
	return int(math.Round(float64(completed) / float64(total) * 100)), nil
}
