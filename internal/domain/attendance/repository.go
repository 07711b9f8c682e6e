package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The
// store guarantees uniqueness on (employee_id, date_local); UpsertCheckIn
// relies on it to collapse racing check-ins into one row.
type AttendanceRepository interface {
	// UpsertCheckIn creates the record for (record.EmployeeID,
	// record.DateLocal) or, if one exists, overwrites its check-in fields
	// and evaluation results. Check-out fields are left untouched.
	UpsertCheckIn(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)

	// GetByEmployeeAndDate returns the record for a local calendar date.
	// ErrRecordNotFound when absent.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, dateLocal time.Time) (AttendanceRecord, error)

	// UpdateCheckOut persists check-out fields and derived work/overtime
	// values of an existing record.
	UpdateCheckOut(ctx context.Context, record AttendanceRecord) error

	// ListCompletedInRange returns records with both check-in and
	// check-out whose DateLocal lies in [from, to], ordered by date.
	ListCompletedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]AttendanceRecord, error)

	// LinkOvertimeRequest stamps the overtime request covering a local
	// date onto the employee's record for that date. ErrRecordNotFound
	// when no record exists for the day.
	LinkOvertimeRequest(ctx context.Context, employeeID string, dateLocal time.Time, requestID string) error

	// MarkOvertimeApproved records final approval of the day's overtime
	// on the attendance record. ErrRecordNotFound when absent.
	MarkOvertimeApproved(ctx context.Context, employeeID string, dateLocal time.Time, approverID string, at time.Time) error
}
