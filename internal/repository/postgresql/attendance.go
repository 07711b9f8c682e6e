package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, date_local, timezone,
	check_in_at, check_out_at,
	check_in_latitude, check_in_longitude, check_in_accuracy, check_in_ip,
	check_out_latitude, check_out_longitude, check_out_accuracy, check_out_ip,
	is_holiday, within_geofence, minutes_late,
	total_work_minutes, overtime_minutes, overtime_amount,
	overtime_approved, overtime_approved_by, overtime_approved_at,
	overtime_request_id,
	created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.AttendanceRecord, error) {
	var rec attendance.AttendanceRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.DateLocal, &rec.Timezone,
		&rec.CheckInAt, &rec.CheckOutAt,
		&rec.CheckInLatitude, &rec.CheckInLongitude, &rec.CheckInAccuracy, &rec.CheckInIP,
		&rec.CheckOutLatitude, &rec.CheckOutLongitude, &rec.CheckOutAccuracy, &rec.CheckOutIP,
		&rec.IsHoliday, &rec.WithinGeofence, &rec.MinutesLate,
		&rec.TotalWorkMinutes, &rec.OvertimeMinutes, &rec.OvertimeAmount,
		&rec.OvertimeApproved, &rec.OvertimeApprovedBy, &rec.OvertimeApprovedAt,
		&rec.OvertimeRequestID,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// UpsertCheckIn implements attendance.AttendanceRepository. The unique
// constraint on (employee_id, date_local) collapses racing check-ins to
// one row; a repeat check-in overwrites the check-in fields and leaves
// check-out fields untouched.
func (r *attendanceRepository) UpsertCheckIn(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date_local, timezone,
			check_in_at,
			check_in_latitude, check_in_longitude, check_in_accuracy, check_in_ip,
			is_holiday, within_geofence, minutes_late
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		ON CONFLICT (employee_id, date_local) DO UPDATE SET
			check_in_at = EXCLUDED.check_in_at,
			check_in_latitude = EXCLUDED.check_in_latitude,
			check_in_longitude = EXCLUDED.check_in_longitude,
			check_in_accuracy = EXCLUDED.check_in_accuracy,
			check_in_ip = EXCLUDED.check_in_ip,
			is_holiday = EXCLUDED.is_holiday,
			within_geofence = EXCLUDED.within_geofence,
			minutes_late = EXCLUDED.minutes_late,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		record.EmployeeID,
		record.DateLocal.Format("2006-01-02"),
		record.Timezone,
		record.CheckInAt,
		record.CheckInLatitude,
		record.CheckInLongitude,
		record.CheckInAccuracy,
		record.CheckInIP,
		record.IsHoliday,
		record.WithinGeofence,
		record.MinutesLate,
	))
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return saved, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, dateLocal time.Time) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date_local = $2
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dateLocal.Format("2006-01-02")))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// UpdateCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpdateCheckOut(ctx context.Context, record attendance.AttendanceRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records SET
			check_out_at = $1,
			check_out_latitude = $2, check_out_longitude = $3,
			check_out_accuracy = $4, check_out_ip = $5,
			total_work_minutes = $6,
			overtime_minutes = $7, overtime_amount = $8,
			updated_at = NOW()
		WHERE id = $9
	`

	tag, err := q.Exec(ctx, query,
		record.CheckOutAt,
		record.CheckOutLatitude, record.CheckOutLongitude,
		record.CheckOutAccuracy, record.CheckOutIP,
		record.TotalWorkMinutes,
		record.OvertimeMinutes, record.OvertimeAmount,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// LinkOvertimeRequest implements attendance.AttendanceRepository.
func (r *attendanceRepository) LinkOvertimeRequest(ctx context.Context, employeeID string, dateLocal time.Time, requestID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records SET
			overtime_request_id = $3,
			updated_at = NOW()
		WHERE employee_id = $1 AND date_local = $2
	`

	tag, err := q.Exec(ctx, query, employeeID, dateLocal.Format("2006-01-02"), requestID)
	if err != nil {
		return fmt.Errorf("failed to link overtime request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// MarkOvertimeApproved implements attendance.AttendanceRepository.
func (r *attendanceRepository) MarkOvertimeApproved(ctx context.Context, employeeID string, dateLocal time.Time, approverID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records SET
			overtime_approved = TRUE,
			overtime_approved_by = $3,
			overtime_approved_at = $4,
			updated_at = NOW()
		WHERE employee_id = $1 AND date_local = $2
	`

	tag, err := q.Exec(ctx, query, employeeID, dateLocal.Format("2006-01-02"), approverID, at)
	if err != nil {
		return fmt.Errorf("failed to mark overtime approved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// ListCompletedInRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListCompletedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date_local BETWEEN $2 AND $3
		  AND check_in_at IS NOT NULL
		  AND check_out_at IS NOT NULL
		ORDER BY date_local
	`

	rows, err := q.Query(ctx, query, employeeID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
