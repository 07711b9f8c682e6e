package approval

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/approval"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/employee"
	"github.com/presensia/attendance-backend-go/internal/domain/notification"
	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/service/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fakes with the same optimistic-version contract as the store: Save only
// lands when the stored version matches the loaded one.

type fakeOvertimeRepo struct {
	mu            sync.Mutex
	requests      map[string]approval.OvertimeRequest
	nextID        int
	forceConflict bool
}

func newFakeOvertimeRepo() *fakeOvertimeRepo {
	return &fakeOvertimeRepo{requests: make(map[string]approval.OvertimeRequest)}
}

func (f *fakeOvertimeRepo) Create(_ context.Context, req approval.OvertimeRequest) (approval.OvertimeRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	req.ID = fmt.Sprintf("ot-%d", f.nextID)
	req.Version = 1
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeOvertimeRepo) GetByID(_ context.Context, id string) (approval.OvertimeRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return approval.OvertimeRequest{}, approval.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeOvertimeRepo) Save(_ context.Context, req approval.OvertimeRequest) (approval.OvertimeRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.requests[req.ID]
	if !ok || f.forceConflict || stored.Version != req.Version {
		return approval.OvertimeRequest{}, approval.ErrVersionConflict
	}
	req.Version++
	f.requests[req.ID] = req
	return req, nil
}

type fakeSummaryRepo struct {
	mu       sync.Mutex
	requests map[string]approval.MonthlySummaryRequest
	nextID   int
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{requests: make(map[string]approval.MonthlySummaryRequest)}
}

func (f *fakeSummaryRepo) Create(_ context.Context, req approval.MonthlySummaryRequest) (approval.MonthlySummaryRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	req.ID = fmt.Sprintf("ms-%d", f.nextID)
	req.Version = 1
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeSummaryRepo) GetByID(_ context.Context, id string) (approval.MonthlySummaryRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return approval.MonthlySummaryRequest{}, approval.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeSummaryRepo) Save(_ context.Context, req approval.MonthlySummaryRequest) (approval.MonthlySummaryRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.requests[req.ID]
	if !ok || stored.Version != req.Version {
		return approval.MonthlySummaryRequest{}, approval.ErrVersionConflict
	}
	req.Version++
	f.requests[req.ID] = req
	return req, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeSettingsRepo struct {
	current settings.WorkSettings
}

func (f *fakeSettingsRepo) Current(_ context.Context) (settings.WorkSettings, error) {
	return f.current, nil
}

func (f *fakeSettingsRepo) Save(_ context.Context, s settings.WorkSettings) (settings.WorkSettings, error) {
	f.current = s
	return s, nil
}

type fakeHolidayRepo struct {
	dates map[string]bool
}

func (f *fakeHolidayRepo) IsHoliday(_ context.Context, date time.Time) (bool, error) {
	return f.dates[date.Format("2006-01-02")], nil
}

func (f *fakeHolidayRepo) ListRange(_ context.Context, from, to time.Time) ([]settings.Holiday, error) {
	return nil, nil
}

func (f *fakeHolidayRepo) Upsert(_ context.Context, h settings.Holiday) (settings.Holiday, error) {
	return h, nil
}

// fakeAttendanceLedger carries the per-day records the overtime linkage
// writes to.
type fakeAttendanceLedger struct {
	mu      sync.Mutex
	records map[string]attendance.AttendanceRecord
}

func newFakeAttendanceLedger() *fakeAttendanceLedger {
	return &fakeAttendanceLedger{records: make(map[string]attendance.AttendanceRecord)}
}

func attKey(employeeID string, dateLocal time.Time) string {
	return employeeID + "|" + dateLocal.Format("2006-01-02")
}

func (f *fakeAttendanceLedger) seed(rec attendance.AttendanceRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[attKey(rec.EmployeeID, rec.DateLocal)] = rec
}

func (f *fakeAttendanceLedger) UpsertCheckIn(_ context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[attKey(rec.EmployeeID, rec.DateLocal)] = rec
	return rec, nil
}

func (f *fakeAttendanceLedger) GetByEmployeeAndDate(_ context.Context, employeeID string, dateLocal time.Time) (attendance.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[attKey(employeeID, dateLocal)]
	if !ok {
		return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceLedger) UpdateCheckOut(_ context.Context, rec attendance.AttendanceRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[attKey(rec.EmployeeID, rec.DateLocal)] = rec
	return nil
}

func (f *fakeAttendanceLedger) ListCompletedInRange(_ context.Context, _ string, _, _ time.Time) ([]attendance.AttendanceRecord, error) {
	return nil, nil
}

func (f *fakeAttendanceLedger) LinkOvertimeRequest(_ context.Context, employeeID string, dateLocal time.Time, requestID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := attKey(employeeID, dateLocal)
	rec, ok := f.records[key]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	rec.OvertimeRequestID = &requestID
	f.records[key] = rec
	return nil
}

func (f *fakeAttendanceLedger) MarkOvertimeApproved(_ context.Context, employeeID string, dateLocal time.Time, approverID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := attKey(employeeID, dateLocal)
	rec, ok := f.records[key]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	rec.OvertimeApproved = true
	rec.OvertimeApprovedBy = &approverID
	rec.OvertimeApprovedAt = &at
	f.records[key] = rec
	return nil
}

type noopNotifier struct{}

func (noopNotifier) Enqueue(_ context.Context, _ notification.Notification) {}

type fixture struct {
	service      approval.ApprovalService
	overtimeRepo *fakeOvertimeRepo
	summaryRepo  *fakeSummaryRepo
	attRepo      *fakeAttendanceLedger
}

func newFixture(t *testing.T, holidays ...string) *fixture {
	t.Helper()

	salary := 17600.0 // hourly wage 100
	employees := map[string]employee.Employee{
		"emp-1": {ID: "emp-1", Name: "Ayu", DivisionID: "div-1", MonthlyBaseSalary: &salary},
		"mgr-1": {ID: "mgr-1", Name: "Citra", DivisionID: "div-1", CanApproveDivision: true},
		"mgr-2": {ID: "mgr-2", Name: "Dewi", DivisionID: "div-2", CanApproveDivision: true},
		"dir-1": {ID: "dir-1", Name: "Eka", DivisionID: "div-9", CanApproveOrg: true},
	}

	holidayDates := make(map[string]bool, len(holidays))
	for _, d := range holidays {
		holidayDates[d] = true
	}

	overtimeRepo := newFakeOvertimeRepo()
	summaryRepo := newFakeSummaryRepo()
	attRepo := newFakeAttendanceLedger()
	settingsRepo := &fakeSettingsRepo{current: settings.WorkSettings{
		Timezone:                "Asia/Jakarta",
		OrdinaryStart:           "08:00",
		OrdinaryRequiredMinutes: 480,
		Workdays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		OvertimeRateWorkday: 1.5,
		OvertimeRateHoliday: 2.0,
	}}
	evaluator := schedule.NewEvaluator(&fakeHolidayRepo{dates: holidayDates})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		service: NewApprovalService(
			overtimeRepo, summaryRepo, attRepo,
			&fakeEmployeeRepo{employees: employees},
			settingsRepo, evaluator, noopNotifier{}, logger,
		),
		overtimeRepo: overtimeRepo,
		summaryRepo:  summaryRepo,
		attRepo:      attRepo,
	}
}

func (f *fixture) createOvertime(t *testing.T) approval.OvertimeRequest {
	t.Helper()
	created, err := f.service.CreateOvertimeRequest(context.Background(), approval.CreateOvertimeRequest{
		EmployeeID:      "emp-1",
		Date:            "2024-03-14", // Thursday
		HoursRequested:  2,
		WorkDescription: "release deployment support",
	})
	require.NoError(t, err)
	return created
}

func TestCreateOvertimeRequest_WorkdayRate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	created := f.createOvertime(t)

	assert.Equal(t, approval.StatusPending, created.Status)
	assert.Equal(t, 1, created.Version)
	// 2 h * wage 100 * 1.5
	assert.Equal(t, 300.0, created.Amount)
}

func TestCreateOvertimeRequest_HolidayRate(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "2024-03-14")

	created := f.createOvertime(t)
	// 2 h * wage 100 * 2.0
	assert.Equal(t, 400.0, created.Amount)
}

// Weekend dates use the holiday rate even without a holiday entry.
func TestCreateOvertimeRequest_NonWorkdayRate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	created, err := f.service.CreateOvertimeRequest(context.Background(), approval.CreateOvertimeRequest{
		EmployeeID:      "emp-1",
		Date:            "2024-03-16", // Saturday
		HoursRequested:  2,
		WorkDescription: "incident response",
	})
	require.NoError(t, err)
	assert.Equal(t, 400.0, created.Amount)
}

func TestCreateOvertimeRequest_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.service.CreateOvertimeRequest(context.Background(), approval.CreateOvertimeRequest{
		EmployeeID:      "emp-1",
		Date:            "2024-03-14",
		HoursRequested:  0,
		WorkDescription: "nothing",
	})
	assert.Error(t, err)

	_, err = f.service.CreateOvertimeRequest(context.Background(), approval.CreateOvertimeRequest{
		EmployeeID:      "emp-1",
		Date:            "14-03-2024",
		HoursRequested:  2,
		WorkDescription: "bad date",
	})
	assert.Error(t, err)
}

// Filing a request takes the worked day out of the potential-overtime
// report by stamping the request id on the attendance record.
func TestCreateOvertimeRequest_LinksAttendanceRecord(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	date, _ := time.Parse("2006-01-02", "2024-03-14")
	f.attRepo.seed(attendance.AttendanceRecord{
		ID:         "rec-1",
		EmployeeID: "emp-1",
		DateLocal:  date,
	})

	created := f.createOvertime(t)

	rec, err := f.attRepo.GetByEmployeeAndDate(context.Background(), "emp-1", date)
	require.NoError(t, err)
	require.NotNil(t, rec.OvertimeRequestID)
	assert.Equal(t, created.ID, *rec.OvertimeRequestID)
}

// A request for a day without an attendance record still goes through.
func TestCreateOvertimeRequest_NoAttendanceRecord(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	created := f.createOvertime(t)
	assert.Equal(t, approval.StatusPending, created.Status)
}

func TestApproveOvertimeFinal_StampsAttendanceRecord(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	date, _ := time.Parse("2006-01-02", "2024-03-14")
	f.attRepo.seed(attendance.AttendanceRecord{
		ID:         "rec-1",
		EmployeeID: "emp-1",
		DateLocal:  date,
	})
	created := f.createOvertime(t)

	_, err := f.service.ApproveOvertimeLevel1(context.Background(), created.ID, "mgr-1")
	require.NoError(t, err)
	_, err = f.service.ApproveOvertimeFinal(context.Background(), created.ID, "dir-1")
	require.NoError(t, err)

	rec, err := f.attRepo.GetByEmployeeAndDate(context.Background(), "emp-1", date)
	require.NoError(t, err)
	assert.True(t, rec.OvertimeApproved)
	require.NotNil(t, rec.OvertimeApprovedBy)
	assert.Equal(t, "dir-1", *rec.OvertimeApprovedBy)
	assert.NotNil(t, rec.OvertimeApprovedAt)
}

func TestApproveOvertimeLevel1_ByDivisionManager(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	created := f.createOvertime(t)

	status, err := f.service.ApproveOvertimeLevel1(context.Background(), created.ID, "mgr-1")
	require.NoError(t, err)

	assert.Equal(t, string(approval.StatusLevel1Approved), status.Status)
	require.NotNil(t, status.Level1ApproverID)
	assert.Equal(t, "mgr-1", *status.Level1ApproverID)
}

func TestApproveOvertimeLevel1_WrongDivision(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	created := f.createOvertime(t)

	_, err := f.service.ApproveOvertimeLevel1(context.Background(), created.ID, "mgr-2")
	assert.ErrorIs(t, err, approval.ErrUnauthorized)
}

func TestApproveOvertimeLevel1_RequesterCannotSelfApprove(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	created := f.createOvertime(t)

	_, err := f.service.ApproveOvertimeLevel1(context.Background(), created.ID, "emp-1")
	assert.ErrorIs(t, err, approval.ErrUnauthorized)
}

func TestApproveOvertimeFinal_SkipLevelBackfills(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	created := f.createOvertime(t)

	status, err := f.service.ApproveOvertimeFinal(context.Background(), created.ID, "dir-1")
	require.NoError(t, err)

	assert.Equal(t, string(approval.StatusApproved), status.Status)
	require.NotNil(t, status.Level1ApproverID)
	require.NotNil(t, status.FinalApproverID)
	assert.Equal(t, "dir-1", *status.Level1ApproverID)
	assert.Equal(t, *status.Level1ApprovedAt, *status.FinalApprovedAt)
}

func TestApproveOvertimeFinal_RequiresOrgAuthority(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	created := f.createOvertime(t)

	_, err := f.service.ApproveOvertimeFinal(context.Background(), created.ID, "mgr-1")
	assert.ErrorIs(t, err, approval.ErrUnauthorized)
}

func TestRejectOvertime_StageAndReason(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	created := f.createOvertime(t)

	status, err := f.service.RejectOvertime(context.Background(), created.ID, "dir-1", "no budget")
	require.NoError(t, err)

	assert.Equal(t, string(approval.StatusRejected), status.Status)
	require.NotNil(t, status.RejectionReason)
	assert.Equal(t, "no budget", *status.RejectionReason)
	require.NotNil(t, status.RejectionStage)
	assert.Equal(t, "level1", *status.RejectionStage)
}

func TestRejectOvertime_WithoutReason(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	created := f.createOvertime(t)

	_, err := f.service.RejectOvertime(context.Background(), created.ID, "dir-1", "")
	assert.ErrorIs(t, err, approval.ErrRejectionReasonRequired)
}

func TestRejectOvertime_RequiresAuthority(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	created := f.createOvertime(t)

	_, err := f.service.RejectOvertime(context.Background(), created.ID, "emp-1", "changed my mind")
	assert.ErrorIs(t, err, approval.ErrUnauthorized)
}

func TestCancelOvertime_ByRequester(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	created := f.createOvertime(t)

	status, err := f.service.CancelOvertime(context.Background(), created.ID, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusCancelled), status.Status)
}

func TestCancelOvertime_NotByOthers(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	created := f.createOvertime(t)

	_, err := f.service.CancelOvertime(context.Background(), created.ID, "mgr-1")
	assert.ErrorIs(t, err, approval.ErrUnauthorized)
}

func TestApproveOvertime_TerminalStateRejected(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	created := f.createOvertime(t)

	_, err := f.service.CancelOvertime(context.Background(), created.ID, "emp-1")
	require.NoError(t, err)

	_, err = f.service.ApproveOvertimeLevel1(context.Background(), created.ID, "mgr-1")
	assert.ErrorIs(t, err, approval.ErrInvalidTransition)
	_, err = f.service.ApproveOvertimeFinal(context.Background(), created.ID, "dir-1")
	assert.ErrorIs(t, err, approval.ErrInvalidTransition)
}

// The loser of an approval race sees an invalid transition, not a raw
// storage conflict.
func TestApproveOvertime_VersionConflictSurfacesInvalidTransition(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	created := f.createOvertime(t)

	f.overtimeRepo.forceConflict = true
	_, err := f.service.ApproveOvertimeLevel1(context.Background(), created.ID, "mgr-1")
	assert.ErrorIs(t, err, approval.ErrInvalidTransition)
}

func TestApproveOvertime_UnknownRequest(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.service.ApproveOvertimeLevel1(context.Background(), "missing", "mgr-1")
	assert.ErrorIs(t, err, approval.ErrRequestNotFound)
}

func TestCreateMonthlySummaryRequest_Defaults(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	created, err := f.service.CreateMonthlySummaryRequest(context.Background(), approval.CreateMonthlySummaryRequest{
		EmployeeID:        "emp-1",
		Period:            "2024-03",
		IncludeAttendance: true,
	})
	require.NoError(t, err)

	assert.Equal(t, approval.StatusPending, created.Status)
	assert.Equal(t, "normal", created.Priority)
	assert.Equal(t, 1, created.Version)
}

func TestCreateMonthlySummaryRequest_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	// No include flag set.
	_, err := f.service.CreateMonthlySummaryRequest(context.Background(), approval.CreateMonthlySummaryRequest{
		EmployeeID: "emp-1",
		Period:     "2024-03",
	})
	assert.Error(t, err)

	// Malformed period.
	_, err = f.service.CreateMonthlySummaryRequest(context.Background(), approval.CreateMonthlySummaryRequest{
		EmployeeID:      "emp-1",
		Period:          "2024-13",
		IncludeOvertime: true,
	})
	assert.Error(t, err)
}

// Summary requests run through the same workflow.
func TestSummaryWorkflow_FullChain(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	created, err := f.service.CreateMonthlySummaryRequest(context.Background(), approval.CreateMonthlySummaryRequest{
		EmployeeID:      "emp-1",
		Period:          "2024-03",
		IncludeOvertime: true,
		Priority:        "high",
	})
	require.NoError(t, err)

	level1, err := f.service.ApproveSummaryLevel1(context.Background(), created.ID, "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusLevel1Approved), level1.Status)

	final, err := f.service.ApproveSummaryFinal(context.Background(), created.ID, "dir-1")
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusApproved), final.Status)
	assert.Equal(t, "mgr-1", *final.Level1ApproverID)
	assert.Equal(t, "dir-1", *final.FinalApproverID)

	// Terminal thereafter.
	_, err = f.service.CancelSummary(context.Background(), created.ID, "emp-1")
	assert.ErrorIs(t, err, approval.ErrInvalidTransition)
	_, err = f.service.RejectSummary(context.Background(), created.ID, "dir-1", "late")
	assert.ErrorIs(t, err, approval.ErrInvalidTransition)
}

func TestRejectSummary_ByDivisionManager(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	created, err := f.service.CreateMonthlySummaryRequest(context.Background(), approval.CreateMonthlySummaryRequest{
		EmployeeID:      "emp-1",
		Period:          "2024-03",
		IncludeLateness: true,
	})
	require.NoError(t, err)

	status, err := f.service.RejectSummary(context.Background(), created.ID, "mgr-1", "wrong period")
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusRejected), status.Status)
}
