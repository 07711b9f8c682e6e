package settings

import (
	"context"
	"time"
)

// SettingsRepository provides access to the singleton WorkSettings row.
type SettingsRepository interface {
	// Current returns the one WorkSettings row. Missing row is a
	// deployment error, surfaced as ErrSettingsNotFound.
	Current(ctx context.Context) (WorkSettings, error)

	// Save updates the singleton row in place.
	Save(ctx context.Context, settings WorkSettings) (WorkSettings, error)
}

// HolidayRepository manages the per-date holiday calendar.
type HolidayRepository interface {
	// IsHoliday reports whether date (local calendar date) is a holiday.
	IsHoliday(ctx context.Context, date time.Time) (bool, error)

	// ListRange returns holidays with from <= date <= to.
	ListRange(ctx context.Context, from, to time.Time) ([]Holiday, error)

	// Upsert inserts or replaces the holiday for its date.
	Upsert(ctx context.Context, holiday Holiday) (Holiday, error)
}
