package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	TrackingCompletion = "completion"
	TrackingDuration   = "duration"
)

// TargetDays is the set of weekdays a habit applies to, stored as a JSON
// array of lowercase day names ("monday"..."sunday"). Empty means every day.
type TargetDays []string

func (d TargetDays) Value() (driver.Value, error) {
	if d == nil {
		d = TargetDays{}
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *TargetDays) Scan(value interface{}) error {
	if value == nil {
		*d = TargetDays{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported target_days column type %T", value)
	}
	if len(raw) == 0 {
		*d = TargetDays{}
		return nil
	}
	return json.Unmarshal(raw, d)
}

// Contains reports whether the given weekday is in the set. An empty set
// matches every day.
func (d TargetDays) Contains(day time.Weekday) bool {
	if len(d) == 0 {
		return true
	}
	name := strings.ToLower(day.String())
	for _, td := range d {
		if strings.ToLower(td) == name {
			return true
		}
	}
	return false
}

type Habit struct {
	gorm.Model
	UserID         uint       `gorm:"index;not null" json:"user_id"`
	Name           string     `gorm:"not null" json:"name"`
	Description    string     `json:"description"`
	TrackingType   string     `gorm:"not null" json:"tracking_type"` // completion | duration
	TargetDuration int        `json:"target_duration"`               // minutes per day, duration habits only
	TargetDays     TargetDays `gorm:"type:text" json:"target_days"`
	Category       string     `json:"category"`
	Color          string     `gorm:"default:#3b82f6" json:"color"`
	Icon           string     `json:"icon"`
	Active         bool       `gorm:"default:true" json:"active"`
	Archived       bool       `gorm:"default:false" json:"archived"`

	Logs []HabitLog `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// ScheduledOn reports whether the habit is scheduled for the given weekday.
func (h *Habit) ScheduledOn(day time.Weekday) bool {
	return h.TargetDays.Contains(day)
}
