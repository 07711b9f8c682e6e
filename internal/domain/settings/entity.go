package settings

import (
	"time"
)

// WorkSettings is the organization-wide attendance configuration. Exactly
// one row exists; every evaluation reads a single snapshot of it.
type WorkSettings struct {
	ID       string
	Timezone string

	OrdinaryStart           string // "HH:MM" wall clock
	OrdinaryEnd             string
	OrdinaryRequiredMinutes int
	OrdinaryGraceMinutes    int

	// Short-day override keyed by weekday (Friday in production data).
	ShortDayWeekday         *time.Weekday
	ShortDayStart           string
	ShortDayEnd             string
	ShortDayRequiredMinutes int
	ShortDayGraceMinutes    int

	Workdays []time.Weekday

	// Geofence is disabled when the office coordinates are unset.
	OfficeLatitude     *float64
	OfficeLongitude    *float64
	OfficeRadiusMeters *float64

	OvertimeRateWorkday      float64
	OvertimeRateHoliday      float64
	OvertimeThresholdMinutes int

	EarliestCheckInEnabled bool
	EarliestCheckIn        string // "HH:MM"
	LatestCheckOutEnabled  bool
	LatestCheckOut         string // "HH:MM"

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWorkday reports whether d is a configured working weekday.
func (s WorkSettings) IsWorkday(d time.Weekday) bool {
	for _, w := range s.Workdays {
		if w == d {
			return true
		}
	}
	return false
}

// GeofenceConfigured reports whether an office coordinate and radius are set.
func (s WorkSettings) GeofenceConfigured() bool {
	return s.OfficeLatitude != nil && s.OfficeLongitude != nil && s.OfficeRadiusMeters != nil
}

// Holiday marks a single calendar date as non-working. At most one holiday
// exists per date.
type Holiday struct {
	ID        string
	Date      time.Time
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
