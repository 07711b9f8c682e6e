package approval

import (
	"regexp"
	"time"

	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// APPROVAL DTOs
// ========================================

type CreateOvertimeRequest struct {
	EmployeeID      string  `json:"-"` // from JWT claims
	Date            string  `json:"date"` // YYYY-MM-DD, local
	HoursRequested  float64 `json:"hours_requested"`
	WorkDescription string  `json:"work_description"`
}

func (r *CreateOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD form",
		})
	}
	if r.HoursRequested <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_requested",
			Message: "hours_requested must be positive",
		})
	}
	if r.HoursRequested > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_requested",
			Message: "hours_requested must not exceed 24",
		})
	}
	if validator.IsEmpty(r.WorkDescription) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_description",
			Message: "work_description is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

var periodRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type CreateMonthlySummaryRequest struct {
	EmployeeID        string `json:"-"`
	Period            string `json:"period"` // YYYY-MM
	IncludeAttendance bool   `json:"include_attendance"`
	IncludeOvertime   bool   `json:"include_overtime"`
	IncludeLateness   bool   `json:"include_lateness"`
	Priority          string `json:"priority"`
}

func (r *CreateMonthlySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if !periodRegex.MatchString(r.Period) {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be in YYYY-MM form",
		})
	}
	if !r.IncludeAttendance && !r.IncludeOvertime && !r.IncludeLateness {
		errs = append(errs, validator.ValidationError{
			Field:   "scope",
			Message: "at least one of the include flags must be set",
		})
	}
	if r.Priority != "" && r.Priority != "normal" && r.Priority != "high" {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be normal or high",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RejectRequest carries the mandatory rejection reason.
type RejectRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	if validator.IsEmpty(r.Reason) {
		return ErrRejectionReasonRequired
	}
	return nil
}

// StatusResponse is the shared transition result for both request types.
type StatusResponse struct {
	RequestID        string  `json:"request_id"`
	Status           string  `json:"status"`
	Level1ApproverID *string `json:"level1_approver_id,omitempty"`
	Level1ApprovedAt *string `json:"level1_approved_at,omitempty"` // RFC3339 UTC
	FinalApproverID  *string `json:"final_approver_id,omitempty"`
	FinalApprovedAt  *string `json:"final_approved_at,omitempty"`
	RejectionReason  *string `json:"rejection_reason,omitempty"`
	RejectionStage   *string `json:"rejection_stage,omitempty"`
}

func formatInstant(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// NewStatusResponse snapshots the workflow fields of any approvable request.
func NewStatusResponse(id string, status Status, l1ID *string, l1At *time.Time, finID *string, finAt *time.Time, reason *string, stage *RejectionStage) StatusResponse {
	resp := StatusResponse{
		RequestID:        id,
		Status:           string(status),
		Level1ApproverID: l1ID,
		Level1ApprovedAt: formatInstant(l1At),
		FinalApproverID:  finID,
		FinalApprovedAt:  formatInstant(finAt),
		RejectionReason:  reason,
	}
	if stage != nil {
		s := string(*stage)
		resp.RejectionStage = &s
	}
	return resp
}
