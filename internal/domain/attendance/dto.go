package attendance

import (
	"time"

	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string    `json:"-"` // from JWT claims
	At         time.Time `json:"-"` // instant, UTC; zero means "now"
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	Accuracy   *float64  `json:"accuracy"`
	SourceIP   *string   `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be provided together",
		})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	EmployeeID string    `json:"-"`
	At         time.Time `json:"-"`
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	Accuracy   *float64  `json:"accuracy"`
	SourceIP   *string   `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be provided together",
		})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckInResponse struct {
	RecordID       string `json:"record_id"`
	DateLocal      string `json:"date_local"`
	CheckInAt      string `json:"check_in_at"` // RFC3339, UTC
	WithinGeofence bool   `json:"within_geofence"`
	IsHoliday      bool   `json:"is_holiday"`
	IsLate         bool   `json:"is_late"`
	MinutesLate    int    `json:"minutes_late"`
}

type CheckOutResponse struct {
	RecordID         string  `json:"record_id"`
	CheckOutAt       string  `json:"check_out_at"`
	TotalWorkMinutes int     `json:"total_work_minutes"`
	OvertimeMinutes  int     `json:"overtime_minutes"`
	OvertimeAmount   float64 `json:"overtime_amount"`
}

// PotentialOvertimeDay is one report row: a completed day whose worked
// minutes exceed the requirement plus threshold and which no overtime
// request references yet.
type PotentialOvertimeDay struct {
	DateLocal       string  `json:"date_local"`
	WorkMinutes     int     `json:"work_minutes"`
	RequiredMinutes int     `json:"required_minutes"`
	OvertimeMinutes int     `json:"overtime_minutes"`
	OvertimeHours   float64 `json:"overtime_hours"`
	OvertimeAmount  float64 `json:"overtime_amount"`
	IsHoliday       bool    `json:"is_holiday"`
}
