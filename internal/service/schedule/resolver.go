package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/pkg/timeutil"
)

// DaySchedule is the effective attendance expectation for one local
// calendar date. On non-workdays and holidays the time fields are zeroed;
// callers must skip lateness and overtime math for those days.
type DaySchedule struct {
	IsWorkday bool
	IsHoliday bool

	StartHour       int
	StartMinute     int
	RequiredMinutes int
	GraceMinutes    int
}

// HasExpectations reports whether the day carries lateness/overtime
// expectations at all.
func (d DaySchedule) HasExpectations() bool {
	return d.IsWorkday && !d.IsHoliday
}

// ResolveDay resolves the schedule for a local calendar date from a
// settings snapshot. The short-day override (Friday in production data)
// applies by weekday and replaces start, required and grace wholesale.
func ResolveDay(ctx context.Context, s settings.WorkSettings, holidays settings.HolidayRepository, localDate time.Time) (DaySchedule, error) {
	day := DaySchedule{
		IsWorkday: s.IsWorkday(localDate.Weekday()),
	}

	isHoliday, err := holidays.IsHoliday(ctx, localDate)
	if err != nil {
		return DaySchedule{}, fmt.Errorf("failed to resolve holiday for %s: %w", localDate.Format("2006-01-02"), err)
	}
	day.IsHoliday = isHoliday

	if !day.HasExpectations() {
		return day, nil
	}

	start := s.OrdinaryStart
	day.RequiredMinutes = s.OrdinaryRequiredMinutes
	day.GraceMinutes = s.OrdinaryGraceMinutes
	if s.ShortDayWeekday != nil && localDate.Weekday() == *s.ShortDayWeekday {
		start = s.ShortDayStart
		day.RequiredMinutes = s.ShortDayRequiredMinutes
		day.GraceMinutes = s.ShortDayGraceMinutes
	}

	day.StartHour, day.StartMinute, err = timeutil.ParseClock(start)
	if err != nil {
		return DaySchedule{}, err
	}

	return day, nil
}
