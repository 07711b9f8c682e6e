package settings

import (
	"time"

	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

// UpdateWorkSettingsRequest carries the full admin-editable configuration.
// The settings row is a singleton, so updates always replace every field.
type UpdateWorkSettingsRequest struct {
	Timezone string `json:"timezone"`

	OrdinaryStart           string `json:"ordinary_start"`
	OrdinaryEnd             string `json:"ordinary_end"`
	OrdinaryRequiredMinutes int    `json:"ordinary_required_minutes"`
	OrdinaryGraceMinutes    int    `json:"ordinary_grace_minutes"`

	ShortDayWeekday         *int   `json:"short_day_weekday"`
	ShortDayStart           string `json:"short_day_start"`
	ShortDayEnd             string `json:"short_day_end"`
	ShortDayRequiredMinutes int    `json:"short_day_required_minutes"`
	ShortDayGraceMinutes    int    `json:"short_day_grace_minutes"`

	Workdays []int `json:"workdays"`

	OfficeLatitude     *float64 `json:"office_latitude"`
	OfficeLongitude    *float64 `json:"office_longitude"`
	OfficeRadiusMeters *float64 `json:"office_radius_meters"`

	OvertimeRateWorkday      float64 `json:"overtime_rate_workday"`
	OvertimeRateHoliday      float64 `json:"overtime_rate_holiday"`
	OvertimeThresholdMinutes int     `json:"overtime_threshold_minutes"`

	EarliestCheckInEnabled bool   `json:"earliest_check_in_enabled"`
	EarliestCheckIn        string `json:"earliest_check_in"`
	LatestCheckOutEnabled  bool   `json:"latest_check_out_enabled"`
	LatestCheckOut         string `json:"latest_check_out"`
}

func (r *UpdateWorkSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone is required",
		})
	} else if _, err := time.LoadLocation(r.Timezone); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA zone name",
		})
	}

	clockFields := map[string]string{
		"ordinary_start": r.OrdinaryStart,
		"ordinary_end":   r.OrdinaryEnd,
	}
	for field, value := range clockFields {
		if !validator.IsValidClock(value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "must be a wall-clock time in HH:MM form",
			})
		}
	}

	if r.ShortDayWeekday != nil {
		if *r.ShortDayWeekday < 0 || *r.ShortDayWeekday > 6 {
			errs = append(errs, validator.ValidationError{
				Field:   "short_day_weekday",
				Message: "must be a weekday index between 0 (Sunday) and 6 (Saturday)",
			})
		}
		if !validator.IsValidClock(r.ShortDayStart) {
			errs = append(errs, validator.ValidationError{
				Field:   "short_day_start",
				Message: "must be a wall-clock time in HH:MM form",
			})
		}
		if r.ShortDayRequiredMinutes <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "short_day_required_minutes",
				Message: "must be positive when a short day is configured",
			})
		}
	}

	if len(r.Workdays) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "workdays",
			Message: "at least one workday is required",
		})
	}
	for _, w := range r.Workdays {
		if w < 0 || w > 6 {
			errs = append(errs, validator.ValidationError{
				Field:   "workdays",
				Message: "weekday indices must be between 0 (Sunday) and 6 (Saturday)",
			})
			break
		}
	}

	if r.OrdinaryRequiredMinutes <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "ordinary_required_minutes",
			Message: "must be positive",
		})
	}
	if r.OrdinaryGraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "ordinary_grace_minutes",
			Message: "must not be negative",
		})
	}
	if r.OvertimeThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_threshold_minutes",
			Message: "must not be negative",
		})
	}
	if r.OvertimeRateWorkday < 0 || r.OvertimeRateHoliday < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_rate",
			Message: "rates must not be negative",
		})
	}

	if r.OfficeLatitude != nil && !validator.IsValidLatitude(*r.OfficeLatitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "office_latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.OfficeLongitude != nil && !validator.IsValidLongitude(*r.OfficeLongitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "office_longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.EarliestCheckInEnabled && !validator.IsValidClock(r.EarliestCheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "earliest_check_in",
			Message: "must be a wall-clock time in HH:MM form when the bound is enabled",
		})
	}
	if r.LatestCheckOutEnabled && !validator.IsValidClock(r.LatestCheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "latest_check_out",
			Message: "must be a wall-clock time in HH:MM form when the bound is enabled",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity maps the request onto an existing settings row, preserving its ID.
func (r *UpdateWorkSettingsRequest) ToEntity(existing WorkSettings) WorkSettings {
	out := existing
	out.Timezone = r.Timezone
	out.OrdinaryStart = r.OrdinaryStart
	out.OrdinaryEnd = r.OrdinaryEnd
	out.OrdinaryRequiredMinutes = r.OrdinaryRequiredMinutes
	out.OrdinaryGraceMinutes = r.OrdinaryGraceMinutes

	out.ShortDayWeekday = nil
	if r.ShortDayWeekday != nil {
		w := time.Weekday(*r.ShortDayWeekday)
		out.ShortDayWeekday = &w
	}
	out.ShortDayStart = r.ShortDayStart
	out.ShortDayEnd = r.ShortDayEnd
	out.ShortDayRequiredMinutes = r.ShortDayRequiredMinutes
	out.ShortDayGraceMinutes = r.ShortDayGraceMinutes

	out.Workdays = make([]time.Weekday, 0, len(r.Workdays))
	for _, w := range r.Workdays {
		out.Workdays = append(out.Workdays, time.Weekday(w))
	}

	out.OfficeLatitude = r.OfficeLatitude
	out.OfficeLongitude = r.OfficeLongitude
	out.OfficeRadiusMeters = r.OfficeRadiusMeters

	out.OvertimeRateWorkday = r.OvertimeRateWorkday
	out.OvertimeRateHoliday = r.OvertimeRateHoliday
	out.OvertimeThresholdMinutes = r.OvertimeThresholdMinutes

	out.EarliestCheckInEnabled = r.EarliestCheckInEnabled
	out.EarliestCheckIn = r.EarliestCheckIn
	out.LatestCheckOutEnabled = r.LatestCheckOutEnabled
	out.LatestCheckOut = r.LatestCheckOut
	return out
}

// UpsertHolidayRequest creates or replaces the holiday for a date.
type UpsertHolidayRequest struct {
	Date string `json:"date"`
	Note string `json:"note"`
}

func (r *UpsertHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD form",
		})
	}
	if validator.IsEmpty(r.Note) {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
