package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/employee"
	"github.com/presensia/attendance-backend-go/internal/domain/notification"
	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/pkg/geo"
	"github.com/presensia/attendance-backend-go/internal/pkg/keylock"
	"github.com/presensia/attendance-backend-go/internal/pkg/timeutil"
	"github.com/presensia/attendance-backend-go/internal/service/overtime"
	"github.com/presensia/attendance-backend-go/internal/service/schedule"
)

// AttendanceServiceImpl owns the (employee, local date) record lifecycle.
// The keyed mutex serializes operations on the same record; the storage
// uniqueness constraint on (employee_id, date_local) backs it up across
// processes.
type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	settingsRepo settings.SettingsRepository
	evaluator    *schedule.Evaluator
	notifier     notification.Notifier
	locks        *keylock.KeyedMutex
	logger       *slog.Logger
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo settings.SettingsRepository,
	evaluator *schedule.Evaluator,
	notifier notification.Notifier,
	logger *slog.Logger,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		settingsRepo:         settingsRepo,
		evaluator:            evaluator,
		notifier:             notifier,
		locks:                keylock.New(),
		logger:               logger,
	}
}

// currentSettings reads the one settings snapshot an operation uses.
func (a *AttendanceServiceImpl) currentSettings(ctx context.Context) (settings.WorkSettings, *time.Location, error) {
	snap, err := a.settingsRepo.Current(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.WorkSettings{}, nil, &attendance.ConfigurationError{Setting: "work_settings", Err: err}
		}
		return settings.WorkSettings{}, nil, fmt.Errorf("failed to load work settings: %w", err)
	}

	loc, err := timeutil.LoadZone(snap.Timezone)
	if err != nil {
		return settings.WorkSettings{}, nil, &attendance.ConfigurationError{Setting: "timezone", Err: err}
	}

	return snap, loc, nil
}

func recordKey(employeeID string, dateLocal time.Time) string {
	return employeeID + "|" + dateLocal.Format("2006-01-02")
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	at := req.At
	if at.IsZero() {
		at = time.Now()
	}
	at = at.UTC()

	snap, loc, err := a.currentSettings(ctx)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	local := at.In(loc)
	if snap.EarliestCheckInEnabled {
		h, m, err := timeutil.ParseClock(snap.EarliestCheckIn)
		if err != nil {
			return attendance.CheckInResponse{}, &attendance.ConfigurationError{Setting: "earliest_check_in", Err: err}
		}
		if timeutil.ClockBefore(local, h, m) {
			return attendance.CheckInResponse{}, &attendance.TimeRestrictionError{
				Op:       "check-in",
				Boundary: snap.EarliestCheckIn,
				Earliest: true,
			}
		}
	}

	dateLocal := timeutil.LocalDate(at, loc)

	key := recordKey(req.EmployeeID, dateLocal)
	a.locks.Lock(key)
	defer a.locks.Unlock(key)

	// When no office is configured the restriction is disabled and every
	// check-in passes; with an office configured, a check-in without
	// coordinates is flagged as outside.
	withinGeofence := true
	if snap.GeofenceConfigured() {
		withinGeofence = false
		if req.Latitude != nil && req.Longitude != nil {
			withinGeofence = geo.WithinRadius(
				*req.Latitude, *req.Longitude,
				*snap.OfficeLatitude, *snap.OfficeLongitude,
				*snap.OfficeRadiusMeters,
			)
		}
	}

	lateness, err := a.evaluator.EvaluateLateness(ctx, snap, at)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	record := attendance.AttendanceRecord{
		EmployeeID:       req.EmployeeID,
		DateLocal:        dateLocal,
		Timezone:         snap.Timezone,
		CheckInAt:        &at,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		CheckInAccuracy:  req.Accuracy,
		CheckInIP:        req.SourceIP,
		IsHoliday:        lateness.IsHoliday,
		WithinGeofence:   withinGeofence,
		MinutesLate:      lateness.MinutesLate,
	}

	// Re-checking-in on the same local day replaces the check-in fields
	// rather than creating a second row.
	saved, err := a.AttendanceRepository.UpsertCheckIn(ctx, record)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	// A revised check-in after a check-out moves the session start; the
	// derived work and overtime values follow it.
	if saved.CheckOutAt != nil {
		if err := a.recomputeDerived(ctx, snap, &saved); err != nil {
			return attendance.CheckInResponse{}, err
		}
	}

	a.notifier.Enqueue(ctx, notification.Notification{
		RecipientID: req.EmployeeID,
		Type:        notification.TypeCheckIn,
		Title:       "Checked in",
		Message:     fmt.Sprintf("Check-in recorded at %s", local.Format("15:04")),
		Data:        map[string]interface{}{"record_id": saved.ID, "minutes_late": lateness.MinutesLate},
	})

	return attendance.CheckInResponse{
		RecordID:       saved.ID,
		DateLocal:      dateLocal.Format("2006-01-02"),
		CheckInAt:      at.Format(time.RFC3339),
		WithinGeofence: withinGeofence,
		IsHoliday:      lateness.IsHoliday,
		IsLate:         lateness.IsLate,
		MinutesLate:    lateness.MinutesLate,
	}, nil
}

// recomputeDerived re-derives work and overtime values of a completed
// record from its current check-in and check-out instants and persists them.
func (a *AttendanceServiceImpl) recomputeDerived(ctx context.Context, snap settings.WorkSettings, record *attendance.AttendanceRecord) error {
	totalWork := timeutil.MinutesBetween(*record.CheckInAt, *record.CheckOutAt)
	if totalWork < 0 {
		totalWork = 0
	}

	day, err := a.evaluator.ResolveDay(ctx, snap, record.DateLocal)
	if err != nil {
		return err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to load employee: %w", err)
	}

	result := overtime.Calculate(snap, totalWork, day.RequiredMinutes, day.IsHoliday, emp.HourlyWage())

	record.TotalWorkMinutes = totalWork
	record.OvertimeMinutes = result.OvertimeMinutes
	record.OvertimeAmount = result.OvertimeAmount

	if err := a.AttendanceRepository.UpdateCheckOut(ctx, *record); err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	at := req.At
	if at.IsZero() {
		at = time.Now()
	}
	at = at.UTC()

	snap, loc, err := a.currentSettings(ctx)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	local := at.In(loc)
	if snap.LatestCheckOutEnabled {
		h, m, err := timeutil.ParseClock(snap.LatestCheckOut)
		if err != nil {
			return attendance.CheckOutResponse{}, &attendance.ConfigurationError{Setting: "latest_check_out", Err: err}
		}
		if timeutil.ClockAfter(local, h, m) {
			return attendance.CheckOutResponse{}, &attendance.TimeRestrictionError{
				Op:       "check-out",
				Boundary: snap.LatestCheckOut,
			}
		}
	}

	dateLocal := timeutil.LocalDate(at, loc)

	key := recordKey(req.EmployeeID, dateLocal)
	a.locks.Lock(key)
	defer a.locks.Unlock(key)

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, dateLocal)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.CheckOutResponse{}, attendance.ErrNoOpenSession
		}
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}
	if !record.HasOpenSession() {
		return attendance.CheckOutResponse{}, attendance.ErrNoOpenSession
	}

	totalWork := timeutil.MinutesBetween(*record.CheckInAt, at)
	if totalWork < 0 {
		totalWork = 0
	}

	day, err := a.evaluator.ResolveDay(ctx, snap, dateLocal)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to load employee: %w", err)
	}

	wage := emp.HourlyWage()
	if wage == 0 {
		a.logger.Warn("employee has no base salary, overtime amount degraded to zero",
			"employee_id", emp.ID, "date", dateLocal.Format("2006-01-02"))
	}

	result := overtime.Calculate(snap, totalWork, day.RequiredMinutes, day.IsHoliday, wage)

	record.CheckOutAt = &at
	record.CheckOutLatitude = req.Latitude
	record.CheckOutLongitude = req.Longitude
	record.CheckOutAccuracy = req.Accuracy
	record.CheckOutIP = req.SourceIP
	record.TotalWorkMinutes = totalWork
	record.OvertimeMinutes = result.OvertimeMinutes
	record.OvertimeAmount = result.OvertimeAmount

	if err := a.AttendanceRepository.UpdateCheckOut(ctx, record); err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	a.notifier.Enqueue(ctx, notification.Notification{
		RecipientID: req.EmployeeID,
		Type:        notification.TypeCheckOut,
		Title:       "Checked out",
		Message:     fmt.Sprintf("Check-out recorded at %s, %d minutes worked", local.Format("15:04"), totalWork),
		Data:        map[string]interface{}{"record_id": record.ID, "overtime_minutes": result.OvertimeMinutes},
	})

	return attendance.CheckOutResponse{
		RecordID:         record.ID,
		CheckOutAt:       at.Format(time.RFC3339),
		TotalWorkMinutes: totalWork,
		OvertimeMinutes:  result.OvertimeMinutes,
		OvertimeAmount:   result.OvertimeAmount,
	}, nil
}

// EvaluateLateness implements attendance.AttendanceService. Read-only
// precheck: nothing is persisted.
func (a *AttendanceServiceImpl) EvaluateLateness(ctx context.Context, instantUTC time.Time) (attendance.LatenessPrecheck, error) {
	snap, _, err := a.currentSettings(ctx)
	if err != nil {
		return attendance.LatenessPrecheck{}, err
	}

	result, err := a.evaluator.EvaluateLateness(ctx, snap, instantUTC.UTC())
	if err != nil {
		return attendance.LatenessPrecheck{}, err
	}

	precheck := attendance.LatenessPrecheck{
		IsWorkday:   result.IsWorkday,
		IsHoliday:   result.IsHoliday,
		IsLate:      result.IsLate,
		MinutesLate: result.MinutesLate,
	}
	if result.EarliestCheckoutLocal != nil {
		s := result.EarliestCheckoutLocal.Format(time.RFC3339)
		precheck.EarliestCheckoutLocal = &s
	}

	return precheck, nil
}

// PotentialOvertime implements attendance.AttendanceService. Pure query:
// completed days above the overtime threshold that no overtime request
// references yet.
func (a *AttendanceServiceImpl) PotentialOvertime(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.PotentialOvertimeDay, error) {
	snap, _, err := a.currentSettings(ctx)
	if err != nil {
		return nil, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}

	records, err := a.AttendanceRepository.ListCompletedInRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	candidates := make([]attendance.PotentialOvertimeDay, 0)
	for _, record := range records {
		if record.OvertimeRequestID != nil {
			continue
		}

		day, err := a.evaluator.ResolveDay(ctx, snap, record.DateLocal)
		if err != nil {
			return nil, err
		}

		excess := overtime.ExcessMinutes(snap, record.TotalWorkMinutes, day.RequiredMinutes)
		if excess == 0 {
			continue
		}

		result := overtime.Calculate(snap, record.TotalWorkMinutes, day.RequiredMinutes, day.IsHoliday, emp.HourlyWage())

		candidates = append(candidates, attendance.PotentialOvertimeDay{
			DateLocal:       record.DateLocal.Format("2006-01-02"),
			WorkMinutes:     record.TotalWorkMinutes,
			RequiredMinutes: day.RequiredMinutes,
			OvertimeMinutes: excess,
			OvertimeHours:   overtime.Round2(float64(excess) / 60),
			OvertimeAmount:  result.OvertimeAmount,
			IsHoliday:       day.IsHoliday,
		})
	}

	return candidates, nil
}
