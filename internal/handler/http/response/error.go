package response

import (
	"errors"
	"net/http"

	"github.com/presensia/attendance-backend-go/internal/domain/approval"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/employee"
	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Time restriction violations are user-correctable; surface the
	// boundary message as-is.
	var restriction *attendance.TimeRestrictionError
	if errors.As(err, &restriction) {
		UnprocessableEntity(w, restriction.Error())
		return
	}

	var config *attendance.ConfigurationError
	if errors.As(err, &config) {
		InternalServerError(w, config.Error())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrNoOpenSession):
		Conflict(w, "No open attendance session, check in first")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Approval domain errors
	case errors.Is(err, approval.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, approval.ErrInvalidTransition):
		Conflict(w, "Request is not in a state that allows this action")
	case errors.Is(err, approval.ErrUnauthorized):
		Forbidden(w, "You are not authorized for this approval action")
	case errors.Is(err, approval.ErrRejectionReasonRequired):
		BadRequest(w, "A rejection reason is required", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		InternalServerError(w, "Work settings have not been configured")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
