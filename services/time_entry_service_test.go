package services

import (
	"errors"
	"testing"

	"github.com/iccir919/habit-tracker/models"
)

func TestAddEntryCreatesLogAndRecomputes(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "entry@test.dev")
	habit := createHabit(t, db, user.ID, "Practice", models.TrackingDuration, 45)
	svc := NewTimeEntryService(db)

	result, err := svc.Add(user.ID, habit.ID, "2026-08-20", "10:00", "10:30")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if result.Entry == nil || result.Entry.DurationMinutes != 30 {
		t.Fatalf("entry duration wrong: %+v", result.Entry)
	}
	if result.TotalDuration != 30 || result.IsCompleted {
		t.Errorf("after one entry: total=%d completed=%v, want 30/false",
			result.TotalDuration, result.IsCompleted)
	}

	result, err = svc.Add(user.ID, habit.ID, "2026-08-20", "18:00", "18:30")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if result.TotalDuration != 60 || !result.IsCompleted {
		t.Errorf("after two entries: total=%d completed=%v, want 60/true",
			result.TotalDuration, result.IsCompleted)
	}

	// The cached fields on the log must match the recomputed totals.
	var log models.HabitLog
	if err := db.Where("habit_id = ? AND date = ?", habit.ID, "2026-08-20").First(&log).Error; err != nil {
		t.Fatalf("reload log: %v", err)
	}
	if log.Duration != 60 || !log.Completed {
		t.Errorf("log cache: duration=%d completed=%v, want 60/true", log.Duration, log.Completed)
	}

	var count int64
	if err := db.Model(&models.HabitLog{}).
		Where("habit_id = ? AND date = ?", habit.ID, "2026-08-20").
		Count(&count).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 1 {
		t.Errorf("found %d logs for the day, want 1", count)
	}
}

func TestAddEntryRejectsBackwardIntervalWithoutSideEffects(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "entry@test.dev")
	habit := createHabit(t, db, user.ID, "Practice", models.TrackingDuration, 45)
	svc := NewTimeEntryService(db)

	cases := []struct {
		name       string
		start, end string
	}{
		{"end before start", "10:00", "09:00"},
		{"zero length", "10:00", "10:00"},
		{"malformed start", "25:99", "10:00"},
		{"malformed end", "10:00", "banana"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Add(user.ID, habit.ID, "2026-08-20", tc.start, tc.end); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}

	var logs, entries int64
	db.Model(&models.HabitLog{}).Count(&logs)
	db.Model(&models.TimeEntry{}).Count(&entries)
	if logs != 0 || entries != 0 {
		t.Errorf("rejected adds left %d logs and %d entries behind", logs, entries)
	}
}

func TestDeleteEntryRecomputes(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "entry@test.dev")
	habit := createHabit(t, db, user.ID, "Practice", models.TrackingDuration, 45)
	svc := NewTimeEntryService(db)

	first, err := svc.Add(user.ID, habit.ID, "2026-08-20", "10:00", "10:30")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(user.ID, habit.ID, "2026-08-20", "11:00", "11:30"); err != nil {
		t.Fatalf("add: %v", err)
	}

	result, err := svc.Delete(user.ID, first.Entry.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if result.TotalDuration != 30 || result.IsCompleted {
		t.Errorf("after delete: total=%d completed=%v, want 30/false",
			result.TotalDuration, result.IsCompleted)
	}

	var log models.HabitLog
	if err := db.Where("habit_id = ? AND date = ?", habit.ID, "2026-08-20").First(&log).Error; err != nil {
		t.Fatalf("reload log: %v", err)
	}
	if log.Duration != 30 || log.Completed {
		t.Errorf("stale cache after delete: duration=%d completed=%v", log.Duration, log.Completed)
	}
}

func TestDeleteEntryOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@test.dev")
	intruder := createUser(t, db, "intruder@test.dev")
	habit := createHabit(t, db, owner.ID, "Practice", models.TrackingDuration, 45)
	svc := NewTimeEntryService(db)

	result, err := svc.Add(owner.ID, habit.ID, "2026-08-20", "10:00", "10:30")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := svc.Delete(intruder.ID, result.Entry.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("foreign delete: got %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Delete(owner.ID, result.Entry.ID+99); !errors.Is(err, ErrNotFound) {
		t.Errorf("absent entry: got %v, want ErrNotFound", err)
	}
}

func TestListEntriesOrderedByStartTime(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "entry@test.dev")
	habit := createHabit(t, db, user.ID, "Practice", models.TrackingDuration, 45)
	svc := NewTimeEntryService(db)

	for _, span := range [][2]string{{"14:00", "14:20"}, {"08:00", "08:15"}, {"10:30", "11:00"}} {
		if _, err := svc.Add(user.ID, habit.ID, "2026-08-20", span[0], span[1]); err != nil {
			t.Fatalf("add %v: %v", span, err)
		}
	}

	var log models.HabitLog
	if err := db.Where("habit_id = ? AND date = ?", habit.ID, "2026-08-20").First(&log).Error; err != nil {
		t.Fatalf("load log: %v", err)
	}

	entries, err := svc.List(user.ID, log.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, want := range []string{"08:00", "10:30", "14:00"} {
		if entries[i].StartTime != want {
			t.Errorf("entries[%d].StartTime = %q, want %q", i, entries[i].StartTime, want)
		}
	}

	intruder := createUser(t, db, "intruder@test.dev")
	if _, err := svc.List(intruder.ID, log.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign list: got %v, want ErrNotFound", err)
	}
}

func TestOverlappingEntriesAreAccepted(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "entry@test.dev")
	habit := createHabit(t, db, user.ID, "Practice", models.TrackingDuration, 60)
	svc := NewTimeEntryService(db)

	if _, err := svc.Add(user.ID, habit.ID, "2026-08-20", "10:00", "10:30"); err != nil {
		t.Fatalf("add: %v", err)
	}
	result, err := svc.Add(user.ID, habit.ID, "2026-08-20", "10:15", "10:45")
	if err != nil {
		t.Fatalf("overlapping add: %v", err)
	}
	if result.TotalDuration != 60 {
		t.Errorf("total = %d, want 60 (overlap counts twice)", result.TotalDuration)
	}
}

func TestZeroTargetCompletesOnAnyEntry(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "entry@test.dev")
	habit := createHabit(t, db, user.ID, "Practice", models.TrackingDuration, 0)
	svc := NewTimeEntryService(db)

	result, err := svc.Add(user.ID, habit.ID, "2026-08-20", "10:00", "10:05")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !result.IsCompleted {
		t.Error("missing target treated as 0, so any duration should satisfy >=")
	}
}
