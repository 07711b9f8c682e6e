package attendance

import (
	"context"
	"time"
)

// LatenessPrecheck is the read-only evaluation of one instant against the
// current settings, used by precheck/report endpoints.
type LatenessPrecheck struct {
	IsWorkday             bool    `json:"is_workday"`
	IsHoliday             bool    `json:"is_holiday"`
	IsLate                bool    `json:"is_late"`
	MinutesLate           int     `json:"minutes_late"`
	EarliestCheckoutLocal *string `json:"earliest_checkout_local"` // RFC3339 in the settings zone
}

// AttendanceService owns the per-day attendance record lifecycle.
type AttendanceService interface {
	// CheckIn opens (or idempotently re-opens) the session for the
	// employee's current local day.
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)

	// CheckOut closes the open session and computes worked minutes and
	// overtime. Check-out may be repeated; later calls revise the record.
	CheckOut(ctx context.Context, req CheckOutRequest) (CheckOutResponse, error)

	// EvaluateLateness classifies an instant without touching any record.
	EvaluateLateness(ctx context.Context, instantUTC time.Time) (LatenessPrecheck, error)

	// PotentialOvertime scans completed records in [from, to] that lack a
	// linked overtime request and exceed the overtime threshold.
	PotentialOvertime(ctx context.Context, employeeID string, from, to time.Time) ([]PotentialOvertimeDay, error)
}
