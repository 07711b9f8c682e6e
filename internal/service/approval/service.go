package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/approval"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/employee"
	"github.com/presensia/attendance-backend-go/internal/domain/notification"
	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/service/overtime"
	"github.com/presensia/attendance-backend-go/internal/service/schedule"
)

type ApprovalServiceImpl struct {
	overtimeRepo   approval.OvertimeRequestRepository
	summaryRepo    approval.MonthlySummaryRequestRepository
	attendanceRepo attendance.AttendanceRepository
	employee.EmployeeRepository
	settingsRepo settings.SettingsRepository
	evaluator    *schedule.Evaluator
	notifier     notification.Notifier
	logger       *slog.Logger
}

func NewApprovalService(
	overtimeRepo approval.OvertimeRequestRepository,
	summaryRepo approval.MonthlySummaryRequestRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo settings.SettingsRepository,
	evaluator *schedule.Evaluator,
	notifier notification.Notifier,
	logger *slog.Logger,
) approval.ApprovalService {
	return &ApprovalServiceImpl{
		overtimeRepo:       overtimeRepo,
		summaryRepo:        summaryRepo,
		attendanceRepo:     attendanceRepo,
		EmployeeRepository: employeeRepo,
		settingsRepo:       settingsRepo,
		evaluator:          evaluator,
		notifier:           notifier,
		logger:             logger,
	}
}

// CreateOvertimeRequest implements approval.ApprovalService. The payout
// amount is derived at creation from the requester's hourly wage and the
// rate for the worked date, so approvers see what they are approving.
func (s *ApprovalServiceImpl) CreateOvertimeRequest(ctx context.Context, req approval.CreateOvertimeRequest) (approval.OvertimeRequest, error) {
	if err := req.Validate(); err != nil {
		return approval.OvertimeRequest{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return approval.OvertimeRequest{}, fmt.Errorf("failed to load employee: %w", err)
	}

	snap, err := s.settingsRepo.Current(ctx)
	if err != nil {
		return approval.OvertimeRequest{}, fmt.Errorf("failed to load work settings: %w", err)
	}

	day, err := s.evaluator.ResolveDay(ctx, snap, date)
	if err != nil {
		return approval.OvertimeRequest{}, err
	}

	rate := snap.OvertimeRateWorkday
	if day.IsHoliday || !day.IsWorkday {
		rate = snap.OvertimeRateHoliday
	}

	wage := emp.HourlyWage()
	if wage == 0 {
		s.logger.Warn("employee has no base salary, overtime request amount degraded to zero",
			"employee_id", emp.ID, "date", req.Date)
	}

	entity := approval.OvertimeRequest{
		EmployeeID:      req.EmployeeID,
		Date:            date,
		HoursRequested:  req.HoursRequested,
		WorkDescription: req.WorkDescription,
		Amount:          overtime.Round2(req.HoursRequested * wage * rate),
		Status:          approval.StatusPending,
	}

	created, err := s.overtimeRepo.Create(ctx, entity)
	if err != nil {
		return approval.OvertimeRequest{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	// The linked day drops out of the potential-overtime report. A request
	// may also cover a day with no attendance record, e.g. remote work
	// logged manually; that is not an error.
	if err := s.attendanceRepo.LinkOvertimeRequest(ctx, created.EmployeeID, created.Date, created.ID); err != nil {
		if !errors.Is(err, attendance.ErrRecordNotFound) {
			return approval.OvertimeRequest{}, fmt.Errorf("failed to link attendance record: %w", err)
		}
		s.logger.Warn("no attendance record for requested overtime date",
			"employee_id", created.EmployeeID, "date", req.Date)
	}

	return created, nil
}

// CreateMonthlySummaryRequest implements approval.ApprovalService.
func (s *ApprovalServiceImpl) CreateMonthlySummaryRequest(ctx context.Context, req approval.CreateMonthlySummaryRequest) (approval.MonthlySummaryRequest, error) {
	if err := req.Validate(); err != nil {
		return approval.MonthlySummaryRequest{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return approval.MonthlySummaryRequest{}, fmt.Errorf("failed to load employee: %w", err)
	}

	priority := req.Priority
	if priority == "" {
		priority = "normal"
	}

	entity := approval.MonthlySummaryRequest{
		EmployeeID:        req.EmployeeID,
		Period:            req.Period,
		IncludeAttendance: req.IncludeAttendance,
		IncludeOvertime:   req.IncludeOvertime,
		IncludeLateness:   req.IncludeLateness,
		Priority:          priority,
		Status:            approval.StatusPending,
	}

	created, err := s.summaryRepo.Create(ctx, entity)
	if err != nil {
		return approval.MonthlySummaryRequest{}, fmt.Errorf("failed to create monthly summary request: %w", err)
	}

	return created, nil
}

// authorizeLevel1 checks division-scoped authority of the actor over the
// requester. Evaluated before the transition, never inside it.
func (s *ApprovalServiceImpl) authorizeLevel1(ctx context.Context, requesterID, actorID string) error {
	actor, err := s.EmployeeRepository.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to load approver: %w", err)
	}
	requester, err := s.EmployeeRepository.GetByID(ctx, requesterID)
	if err != nil {
		return fmt.Errorf("failed to load requester: %w", err)
	}
	if !actor.HasDivisionAuthorityOver(requester.DivisionID) {
		return approval.ErrUnauthorized
	}
	return nil
}

// authorizeFinal checks organization-wide authority of the actor.
func (s *ApprovalServiceImpl) authorizeFinal(ctx context.Context, actorID string) error {
	actor, err := s.EmployeeRepository.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to load approver: %w", err)
	}
	if !actor.HasOrgAuthority() {
		return approval.ErrUnauthorized
	}
	return nil
}

// authorizeReject accepts either approval authority: division approvers
// reject at the level-1 stage, org approvers at either stage.
func (s *ApprovalServiceImpl) authorizeReject(ctx context.Context, requesterID, actorID string) error {
	actor, err := s.EmployeeRepository.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to load rejecter: %w", err)
	}
	requester, err := s.EmployeeRepository.GetByID(ctx, requesterID)
	if err != nil {
		return fmt.Errorf("failed to load requester: %w", err)
	}
	if !actor.HasDivisionAuthorityOver(requester.DivisionID) && !actor.HasOrgAuthority() {
		return approval.ErrUnauthorized
	}
	return nil
}

// mapSaveError folds an optimistic version conflict into the transition
// error the loser of an approval race must see.
func mapSaveError(err error) error {
	if errors.Is(err, approval.ErrVersionConflict) {
		return approval.ErrInvalidTransition
	}
	return err
}

func (s *ApprovalServiceImpl) notifyOutcome(ctx context.Context, requesterID string, t notification.Type, requestID string) {
	s.notifier.Enqueue(ctx, notification.Notification{
		RecipientID: requesterID,
		Type:        t,
		Title:       "Request status changed",
		Message:     fmt.Sprintf("Your request %s is now %s", requestID, t),
		Data:        map[string]interface{}{"request_id": requestID},
	})
}

func overtimeStatus(r approval.OvertimeRequest) approval.StatusResponse {
	return approval.NewStatusResponse(r.ID, r.Status,
		r.Level1ApproverID, r.Level1ApprovedAt,
		r.FinalApproverID, r.FinalApprovedAt,
		r.RejectionReason, r.RejectionStage)
}

func summaryStatus(r approval.MonthlySummaryRequest) approval.StatusResponse {
	return approval.NewStatusResponse(r.ID, r.Status,
		r.Level1ApproverID, r.Level1ApprovedAt,
		r.FinalApproverID, r.FinalApprovedAt,
		r.RejectionReason, r.RejectionStage)
}

// ApproveOvertimeLevel1 implements approval.ApprovalService.
func (s *ApprovalServiceImpl) ApproveOvertimeLevel1(ctx context.Context, requestID, actorID string) (approval.StatusResponse, error) {
	req, err := s.overtimeRepo.GetByID(ctx, requestID)
	if err != nil {
		return approval.StatusResponse{}, err
	}
	if err := s.authorizeLevel1(ctx, req.EmployeeID, actorID); err != nil {
		return approval.StatusResponse{}, err
	}
	if err := ApplyLevel1(&req, approval.Approval{ApproverID: actorID, At: time.Now().UTC()}); err != nil {
		return approval.StatusResponse{}, err
	}
	saved, err := s.overtimeRepo.Save(ctx, req)
	if err != nil {
		return approval.StatusResponse{}, mapSaveError(err)
	}
	s.notifyOutcome(ctx, saved.EmployeeID, notification.TypeRequestLevel1Approved, saved.ID)
	return overtimeStatus(saved), nil
}

// ApproveOvertimeFinal implements approval.ApprovalService.
func (s *ApprovalServiceImpl) ApproveOvertimeFinal(ctx context.Context, requestID, actorID string) (approval.StatusResponse, error) {
	req, err := s.overtimeRepo.GetByID(ctx, requestID)
	if err != nil {
		return approval.StatusResponse{}, err
	}
	if err := s.authorizeFinal(ctx, actorID); err != nil {
		return approval.StatusResponse{}, err
	}
	grant := approval.Approval{ApproverID: actorID, At: time.Now().UTC()}
	if err := ApplyFinal(&req, grant); err != nil {
		return approval.StatusResponse{}, err
	}
	saved, err := s.overtimeRepo.Save(ctx, req)
	if err != nil {
		return approval.StatusResponse{}, mapSaveError(err)
	}
	// The approval stamp on the attendance record is informational; the
	// request stays the source of truth when the day has no record.
	if err := s.attendanceRepo.MarkOvertimeApproved(ctx, saved.EmployeeID, saved.Date, grant.ApproverID, grant.At); err != nil && !errors.Is(err, attendance.ErrRecordNotFound) {
		s.logger.Warn("failed to stamp overtime approval on attendance record",
			"request_id", saved.ID, "error", err)
	}
	s.notifyOutcome(ctx, saved.EmployeeID, notification.TypeRequestApproved, saved.ID)
	return overtimeStatus(saved), nil
}

// RejectOvertime implements approval.ApprovalService.
func (s *ApprovalServiceImpl) RejectOvertime(ctx context.Context, requestID, actorID, reason string) (approval.StatusResponse, error) {
	req, err := s.overtimeRepo.GetByID(ctx, requestID)
	if err != nil {
		return approval.StatusResponse{}, err
	}

	if err := s.authorizeReject(ctx, req.EmployeeID, actorID); err != nil {
		return approval.StatusResponse{}, err
	}

	if err := ApplyReject(&req, reason); err != nil {
		return approval.StatusResponse{}, err
	}
	saved, err := s.overtimeRepo.Save(ctx, req)
	if err != nil {
		return approval.StatusResponse{}, mapSaveError(err)
	}
	s.notifyOutcome(ctx, saved.EmployeeID, notification.TypeRequestRejected, saved.ID)
	return overtimeStatus(saved), nil
}

// CancelOvertime implements approval.ApprovalService.
func (s *ApprovalServiceImpl) CancelOvertime(ctx context.Context, requestID, actorID string) (approval.StatusResponse, error) {
	req, err := s.overtimeRepo.GetByID(ctx, requestID)
	if err != nil {
		return approval.StatusResponse{}, err
	}
	if err := ApplyCancel(&req, actorID); err != nil {
		return approval.StatusResponse{}, err
	}
	saved, err := s.overtimeRepo.Save(ctx, req)
	if err != nil {
		return approval.StatusResponse{}, mapSaveError(err)
	}
	s.notifyOutcome(ctx, saved.EmployeeID, notification.TypeRequestCancelled, saved.ID)
	return overtimeStatus(saved), nil
}

// ApproveSummaryLevel1 implements approval.ApprovalService.
func (s *ApprovalServiceImpl) ApproveSummaryLevel1(ctx context.Context, requestID, actorID string) (approval.StatusResponse, error) {
	req, err := s.summaryRepo.GetByID(ctx, requestID)
	if err != nil {
		return approval.StatusResponse{}, err
	}
	if err := s.authorizeLevel1(ctx, req.EmployeeID, actorID); err != nil {
		return approval.StatusResponse{}, err
	}
	if err := ApplyLevel1(&req, approval.Approval{ApproverID: actorID, At: time.Now().UTC()}); err != nil {
		return approval.StatusResponse{}, err
	}
	saved, err := s.summaryRepo.Save(ctx, req)
	if err != nil {
		return approval.StatusResponse{}, mapSaveError(err)
	}
	s.notifyOutcome(ctx, saved.EmployeeID, notification.TypeRequestLevel1Approved, saved.ID)
	return summaryStatus(saved), nil
}

// ApproveSummaryFinal implements approval.ApprovalService.
func (s *ApprovalServiceImpl) ApproveSummaryFinal(ctx context.Context, requestID, actorID string) (approval.StatusResponse, error) {
	req, err := s.summaryRepo.GetByID(ctx, requestID)
	if err != nil {
		return approval.StatusResponse{}, err
	}
	if err := s.authorizeFinal(ctx, actorID); err != nil {
		return approval.StatusResponse{}, err
	}
	if err := ApplyFinal(&req, approval.Approval{ApproverID: actorID, At: time.Now().UTC()}); err != nil {
		return approval.StatusResponse{}, err
	}
	saved, err := s.summaryRepo.Save(ctx, req)
	if err != nil {
		return approval.StatusResponse{}, mapSaveError(err)
	}
	s.notifyOutcome(ctx, saved.EmployeeID, notification.TypeRequestApproved, saved.ID)
	return summaryStatus(saved), nil
}

// RejectSummary implements approval.ApprovalService.
func (s *ApprovalServiceImpl) RejectSummary(ctx context.Context, requestID, actorID, reason string) (approval.StatusResponse, error) {
	req, err := s.summaryRepo.GetByID(ctx, requestID)
	if err != nil {
		return approval.StatusResponse{}, err
	}

	if err := s.authorizeReject(ctx, req.EmployeeID, actorID); err != nil {
		return approval.StatusResponse{}, err
	}

	if err := ApplyReject(&req, reason); err != nil {
		return approval.StatusResponse{}, err
	}
	saved, err := s.summaryRepo.Save(ctx, req)
	if err != nil {
		return approval.StatusResponse{}, mapSaveError(err)
	}
	s.notifyOutcome(ctx, saved.EmployeeID, notification.TypeRequestRejected, saved.ID)
	return summaryStatus(saved), nil
}

// CancelSummary implements approval.ApprovalService.
func (s *ApprovalServiceImpl) CancelSummary(ctx context.Context, requestID, actorID string) (approval.StatusResponse, error) {
	req, err := s.summaryRepo.GetByID(ctx, requestID)
	if err != nil {
		return approval.StatusResponse{}, err
	}
	if err := ApplyCancel(&req, actorID); err != nil {
		return approval.StatusResponse{}, err
	}
	saved, err := s.summaryRepo.Save(ctx, req)
	if err != nil {
		return approval.StatusResponse{}, mapSaveError(err)
	}
	s.notifyOutcome(ctx, saved.EmployeeID, notification.TypeRequestCancelled, saved.ID)
	return summaryStatus(saved), nil
}
