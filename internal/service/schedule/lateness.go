package schedule

import (
	"context"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/pkg/timeutil"
)

// LatenessResult classifies one check-in instant against a settings
// snapshot. MinutesLate counts from the scheduled start plus grace,
// rounded to the nearest minute with ties away from zero.
type LatenessResult struct {
	IsWorkday   bool
	IsHoliday   bool
	IsLate      bool
	MinutesLate int

	// EarliestCheckoutLocal is check-in plus the required minutes for the
	// day (flexible shift: counted from the actual check-in, not the
	// scheduled start). Nil on non-workdays and holidays.
	EarliestCheckoutLocal *time.Time

	LocalDate time.Time
	Day       DaySchedule
}

// Evaluator combines the schedule resolver with the zone conversion. It
// holds the holiday lookup only; settings are passed per call so every
// evaluation uses one consistent snapshot.
type Evaluator struct {
	holidays settings.HolidayRepository
}

func NewEvaluator(holidays settings.HolidayRepository) *Evaluator {
	return &Evaluator{holidays: holidays}
}

// EvaluateLateness converts the instant to the settings timezone and
// classifies it. A malformed timezone is a ConfigurationError; lateness
// math is never computed against a defaulted zone.
func (e *Evaluator) EvaluateLateness(ctx context.Context, s settings.WorkSettings, checkInUTC time.Time) (LatenessResult, error) {
	loc, err := timeutil.LoadZone(s.Timezone)
	if err != nil {
		return LatenessResult{}, &attendance.ConfigurationError{Setting: "timezone", Err: err}
	}

	local := checkInUTC.In(loc)
	localDate := timeutil.LocalDate(checkInUTC, loc)

	day, err := ResolveDay(ctx, s, e.holidays, localDate)
	if err != nil {
		return LatenessResult{}, err
	}

	result := LatenessResult{
		IsWorkday: day.IsWorkday,
		IsHoliday: day.IsHoliday,
		LocalDate: localDate,
		Day:       day,
	}

	if !day.HasExpectations() {
		return result, nil
	}

	baseStart := timeutil.CombineDateAndClock(localDate, day.StartHour, day.StartMinute, loc)
	lateDelta := timeutil.MinutesBetween(baseStart, local) - day.GraceMinutes
	if lateDelta > 0 {
		result.IsLate = true
		result.MinutesLate = lateDelta
	}

	earliest := local.Add(time.Duration(day.RequiredMinutes) * time.Minute)
	result.EarliestCheckoutLocal = &earliest

	return result, nil
}

// ResolveDay exposes the day resolution for callers that already have a
// local date, such as the check-out path.
func (e *Evaluator) ResolveDay(ctx context.Context, s settings.WorkSettings, localDate time.Time) (DaySchedule, error) {
	return ResolveDay(ctx, s, e.holidays, localDate)
}
