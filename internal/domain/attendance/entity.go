package attendance

import (
	"time"
)

// AttendanceRecord is the per-day attendance row for one employee. It is
// identified by (EmployeeID, DateLocal) and unique on that pair; a second
// check-in on the same local day overwrites the check-in fields instead of
// creating a second row.
type AttendanceRecord struct {
	ID         string
	EmployeeID string

	// DateLocal is the calendar date as observed in Timezone, not the UTC
	// date of the underlying instants.
	DateLocal time.Time
	Timezone  string // captured at creation

	CheckInAt  *time.Time // absolute instant, stored UTC
	CheckOutAt *time.Time

	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckInAccuracy   *float64
	CheckInIP         *string
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckOutAccuracy  *float64
	CheckOutIP        *string

	IsHoliday      bool
	WithinGeofence bool
	MinutesLate    int

	TotalWorkMinutes int
	OvertimeMinutes  int
	OvertimeAmount   float64

	OvertimeApproved   bool
	OvertimeApprovedBy *string
	OvertimeApprovedAt *time.Time

	// Set when a manual overtime request references this day.
	OvertimeRequestID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasOpenSession reports whether the record has a check-in that can be
// checked out against. Check-out stays revisable until an external export
// process locks the record.
func (r AttendanceRecord) HasOpenSession() bool {
	return r.CheckInAt != nil
}
