package utils

import (
	"errors"
	"regexp"
	"time"
)

const DayFormat = "2006-01-02"

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeDate collapses any incoming date value to a timezone-naive
// YYYY-MM-DD calendar day. Plain day strings pass through untouched;
// timestamps are converted to the local calendar day they fall on. Every
// boundary that accepts a date goes through here — mixing normalization
// strategies is how duplicate daily logs happen.
func NormalizeDate(value string) (string, error) {
	if dayPattern.MatchString(value) {
		if _, err := time.ParseInLocation(DayFormat, value, time.Local); err != nil {
			return "", errors.New("invalid date")
		}
		return value, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", errors.New("invalid date")
	}
	return t.In(time.Local).Format(DayFormat), nil
}

// ParseDay parses a normalized YYYY-MM-DD string to local midnight.
func ParseDay(day string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, day, time.Local)
}

// Today returns the current local calendar day as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(DayFormat)
}

// DaysAgo returns the local calendar day n days before today.
func DaysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format(DayFormat)
}
