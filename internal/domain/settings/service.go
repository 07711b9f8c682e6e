package settings

import (
	"context"
	"time"
)

// SettingsService is the administrative surface for the singleton
// configuration and the holiday calendar.
type SettingsService interface {
	GetWorkSettings(ctx context.Context) (WorkSettings, error)
	UpdateWorkSettings(ctx context.Context, req UpdateWorkSettingsRequest) (WorkSettings, error)
	ListHolidays(ctx context.Context, from, to time.Time) ([]Holiday, error)
	UpsertHoliday(ctx context.Context, req UpsertHolidayRequest) (Holiday, error)
}
