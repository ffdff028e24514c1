package models

import (
	"testing"
	"time"
)

func TestTargetDaysContains(t *testing.T) {
	cases := []struct {
		name string
		days TargetDays
		day  time.Weekday
		want bool
	}{
		{"empty set matches any day", TargetDays{}, time.Monday, true},
		{"nil set matches any day", nil, time.Sunday, true},
		{"member day", TargetDays{"monday", "friday"}, time.Friday, true},
		{"non-member day", TargetDays{"monday", "friday"}, time.Tuesday, false},
		{"case insensitive", TargetDays{"Saturday"}, time.Saturday, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.days.Contains(tc.day); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.day, got, tc.want)
			}
		})
	}
}

func TestTargetDaysRoundTrip(t *testing.T) {
	days := TargetDays{"monday", "wednesday"}
	value, err := days.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var scanned TargetDays
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(scanned) != 2 || scanned[0] != "monday" || scanned[1] != "wednesday" {
		t.Errorf("round trip gave %v", scanned)
	}

	var fromNil TargetDays
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if fromNil == nil || len(fromNil) != 0 {
		t.Errorf("nil column should scan to an empty set, got %v", fromNil)
	}
}
