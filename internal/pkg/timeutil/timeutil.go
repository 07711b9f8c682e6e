package timeutil

import (
	"fmt"
	"math"
	"time"
)

// LoadZone resolves an IANA zone name. A bad name is a configuration
// problem; callers decide how to surface it.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("timezone name is empty")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// LocalDate returns the calendar date of an instant as observed in loc,
// truncated to local midnight.
func LocalDate(instant time.Time, loc *time.Location) time.Time {
	local := instant.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// ParseClock parses a wall-clock string in "15:04" or "15:04:05" form.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// CombineDateAndClock places a wall-clock time on a calendar date in loc.
func CombineDateAndClock(date time.Time, hour, minute int, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
}

// MinutesBetween returns b-a in whole minutes, rounded to the nearest
// minute with ties away from zero.
func MinutesBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Minutes()))
}

// ClockBefore reports whether the local time of day of t is strictly
// before hour:minute.
func ClockBefore(t time.Time, hour, minute int) bool {
	if t.Hour() != hour {
		return t.Hour() < hour
	}
	return t.Minute() < minute
}

// ClockAfter reports whether the local time of day of t is strictly
// after hour:minute.
func ClockAfter(t time.Time, hour, minute int) bool {
	if t.Hour() != hour {
		return t.Hour() > hour
	}
	return t.Minute() > minute
}
