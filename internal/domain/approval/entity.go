package approval

import (
	"time"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusLevel1Approved Status = "level1_approved"
	StatusApproved       Status = "approved"
	StatusRejected       Status = "rejected"
	StatusCancelled      Status = "cancelled"
)

// Terminal reports whether no further transition may leave the status.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// RejectionStage records which approval level a rejection happened at.
// It is audit metadata only; the terminal status is always rejected.
type RejectionStage string

const (
	RejectionStageLevel1 RejectionStage = "level1"
	RejectionStageFinal  RejectionStage = "final"
)

// Approval is one approver's sign-off.
type Approval struct {
	ApproverID string
	At         time.Time
}

// Approvable is the narrow capability surface the two-level state machine
// operates on. OvertimeRequest and MonthlySummaryRequest both satisfy it;
// the machine never sees their payloads.
type Approvable interface {
	RequestID() string
	RequesterID() string

	CurrentStatus() Status
	SetStatus(Status)

	Level1() *Approval
	SetLevel1(Approval)
	Final() *Approval
	SetFinal(Approval)

	SetRejection(reason string, stage RejectionStage)
}

// OvertimeRequest asks for payout of manually reported overtime.
type OvertimeRequest struct {
	ID              string
	EmployeeID      string
	Date            time.Time // local attendance date the overtime was worked
	HoursRequested  float64
	WorkDescription string
	Amount          float64 // derived at creation from wage and rate

	Status           Status
	Level1ApproverID *string
	Level1ApprovedAt *time.Time
	FinalApproverID  *string
	FinalApprovedAt  *time.Time
	RejectionReason  *string
	RejectionStage   *RejectionStage

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *OvertimeRequest) RequestID() string     { return r.ID }
func (r *OvertimeRequest) RequesterID() string   { return r.EmployeeID }
func (r *OvertimeRequest) CurrentStatus() Status { return r.Status }
func (r *OvertimeRequest) SetStatus(s Status)    { r.Status = s }

func (r *OvertimeRequest) Level1() *Approval {
	if r.Level1ApproverID == nil || r.Level1ApprovedAt == nil {
		return nil
	}
	return &Approval{ApproverID: *r.Level1ApproverID, At: *r.Level1ApprovedAt}
}

func (r *OvertimeRequest) SetLevel1(a Approval) {
	r.Level1ApproverID = &a.ApproverID
	r.Level1ApprovedAt = &a.At
}

func (r *OvertimeRequest) Final() *Approval {
	if r.FinalApproverID == nil || r.FinalApprovedAt == nil {
		return nil
	}
	return &Approval{ApproverID: *r.FinalApproverID, At: *r.FinalApprovedAt}
}

func (r *OvertimeRequest) SetFinal(a Approval) {
	r.FinalApproverID = &a.ApproverID
	r.FinalApprovedAt = &a.At
}

func (r *OvertimeRequest) SetRejection(reason string, stage RejectionStage) {
	r.RejectionReason = &reason
	r.RejectionStage = &stage
}

// MonthlySummaryRequest asks for an exported attendance summary for one
// month. Export itself happens downstream; the request only carries the
// approval workflow and scope flags.
type MonthlySummaryRequest struct {
	ID         string
	EmployeeID string
	Period     string // "YYYY-MM"

	IncludeAttendance bool
	IncludeOvertime   bool
	IncludeLateness   bool
	Priority          string // normal | high

	Status           Status
	Level1ApproverID *string
	Level1ApprovedAt *time.Time
	FinalApproverID  *string
	FinalApprovedAt  *time.Time
	RejectionReason  *string
	RejectionStage   *RejectionStage

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *MonthlySummaryRequest) RequestID() string     { return r.ID }
func (r *MonthlySummaryRequest) RequesterID() string   { return r.EmployeeID }
func (r *MonthlySummaryRequest) CurrentStatus() Status { return r.Status }
func (r *MonthlySummaryRequest) SetStatus(s Status)    { r.Status = s }

func (r *MonthlySummaryRequest) Level1() *Approval {
	if r.Level1ApproverID == nil || r.Level1ApprovedAt == nil {
		return nil
	}
	return &Approval{ApproverID: *r.Level1ApproverID, At: *r.Level1ApprovedAt}
}

func (r *MonthlySummaryRequest) SetLevel1(a Approval) {
	r.Level1ApproverID = &a.ApproverID
	r.Level1ApprovedAt = &a.At
}

func (r *MonthlySummaryRequest) Final() *Approval {
	if r.FinalApproverID == nil || r.FinalApprovedAt == nil {
		return nil
	}
	return &Approval{ApproverID: *r.FinalApproverID, At: *r.FinalApprovedAt}
}

func (r *MonthlySummaryRequest) SetFinal(a Approval) {
	r.FinalApproverID = &a.ApproverID
	r.FinalApprovedAt = &a.At
}

func (r *MonthlySummaryRequest) SetRejection(reason string, stage RejectionStage) {
	r.RejectionReason = &reason
	r.RejectionStage = &stage
}
