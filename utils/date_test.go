package utils

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	local := time.Date(2026, 8, 20, 21, 30, 0, 0, time.Local)

	cases := []struct {
		name  string
		in    string
		want  string
		isErr bool
	}{
		{"plain day passes through", "2026-08-20", "2026-08-20", false},
		{"timestamp collapses to local day", local.Format(time.RFC3339), "2026-08-20", false},
		{"garbage", "yesterday", "", true},
		{"day with bad month", "2026-13-01", "", true},
		{"empty", "", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeDate(tc.in)
			if tc.isErr {
				if err == nil {
					t.Errorf("NormalizeDate(%q) = %q, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeDate(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseDayIsLocalMidnight(t *testing.T) {
	day, err := ParseDay("2026-08-20")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if day.Hour() != 0 || day.Location() != time.Local {
		t.Errorf("got %v, want local midnight", day)
	}
	if day.Format(DayFormat) != "2026-08-20" {
		t.Errorf("round trip gave %s", day.Format(DayFormat))
	}
}

func TestDaysAgoOrdering(t *testing.T) {
	if Today() != DaysAgo(0) {
		t.Errorf("Today() = %s, DaysAgo(0) = %s", Today(), DaysAgo(0))
	}
	if !(DaysAgo(1) < Today()) {
		t.Error("day strings must order lexicographically")
	}
}
