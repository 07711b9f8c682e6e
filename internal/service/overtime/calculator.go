package overtime

import (
	"math"

	"github.com/presensia/attendance-backend-go/internal/domain/settings"
)

// Result is the overtime accrual for one completed day.
type Result struct {
	OvertimeMinutes int
	OvertimeAmount  float64
}

// Round2 rounds a non-negative amount to 2 decimal places, half up.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// Calculate derives accrued overtime from total worked minutes. Minutes
// accrue only past requiredMinutes plus the configured threshold; the
// amount applies the holiday or workday rate to the hourly wage. A zero
// wage yields zero output rather than an error: overtime is a derived
// enrichment, not a precondition of check-out.
func Calculate(s settings.WorkSettings, workMinutes, requiredMinutes int, isHoliday bool, hourlyWage float64) Result {
	if hourlyWage <= 0 {
		return Result{}
	}

	minutes := workMinutes - requiredMinutes - s.OvertimeThresholdMinutes
	if minutes <= 0 {
		return Result{}
	}

	rate := s.OvertimeRateWorkday
	if isHoliday {
		rate = s.OvertimeRateHoliday
	}

	amount := Round2(float64(minutes) / 60 * hourlyWage * rate)

	return Result{
		OvertimeMinutes: minutes,
		OvertimeAmount:  amount,
	}
}

// ExcessMinutes is the raw overtime-eligible minutes for one day, used by
// the potential-overtime report before wage data is applied.
func ExcessMinutes(s settings.WorkSettings, workMinutes, requiredMinutes int) int {
	minutes := workMinutes - requiredMinutes - s.OvertimeThresholdMinutes
	if minutes < 0 {
		return 0
	}
	return minutes
}
