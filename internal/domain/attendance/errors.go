package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrNoOpenSession      = errors.New("no open attendance session: check in first")
	ErrRecordNotFound     = errors.New("attendance record not found")
	ErrVersionConflict    = errors.New("attendance record was modified concurrently")
	ErrEmployeeNotOnShift = errors.New("no attendance expectations for this date")
)

// TimeRestrictionError rejects a check-in or check-out that falls outside
// a configured hard wall-clock bound. The message names the boundary so it
// can be shown to the user as-is.
type TimeRestrictionError struct {
	Op       string // "check-in" or "check-out"
	Boundary string // "HH:MM" in the settings timezone
	Earliest bool   // true: operation attempted before Boundary
}

func (e *TimeRestrictionError) Error() string {
	if e.Earliest {
		return fmt.Sprintf("%s is not allowed before %s", e.Op, e.Boundary)
	}
	return fmt.Sprintf("%s is not allowed after %s", e.Op, e.Boundary)
}

// ConfigurationError marks settings that make evaluation impossible, such
// as a malformed timezone. It is never silently defaulted.
type ConfigurationError struct {
	Setting string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Setting, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
