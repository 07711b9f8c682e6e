package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `
	id, timezone,
	ordinary_start, ordinary_end, ordinary_required_minutes, ordinary_grace_minutes,
	short_day_weekday, short_day_start, short_day_end, short_day_required_minutes, short_day_grace_minutes,
	workdays,
	office_latitude, office_longitude, office_radius_meters,
	overtime_rate_workday, overtime_rate_holiday, overtime_threshold_minutes,
	earliest_check_in_enabled, earliest_check_in,
	latest_check_out_enabled, latest_check_out,
	created_at, updated_at
`

func scanSettings(row pgx.Row) (settings.WorkSettings, error) {
	var s settings.WorkSettings
	var shortDayWeekday *int16
	var workdays []int16

	err := row.Scan(
		&s.ID, &s.Timezone,
		&s.OrdinaryStart, &s.OrdinaryEnd, &s.OrdinaryRequiredMinutes, &s.OrdinaryGraceMinutes,
		&shortDayWeekday, &s.ShortDayStart, &s.ShortDayEnd, &s.ShortDayRequiredMinutes, &s.ShortDayGraceMinutes,
		&workdays,
		&s.OfficeLatitude, &s.OfficeLongitude, &s.OfficeRadiusMeters,
		&s.OvertimeRateWorkday, &s.OvertimeRateHoliday, &s.OvertimeThresholdMinutes,
		&s.EarliestCheckInEnabled, &s.EarliestCheckIn,
		&s.LatestCheckOutEnabled, &s.LatestCheckOut,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return settings.WorkSettings{}, err
	}

	if shortDayWeekday != nil {
		w := time.Weekday(*shortDayWeekday)
		s.ShortDayWeekday = &w
	}
	s.Workdays = make([]time.Weekday, 0, len(workdays))
	for _, w := range workdays {
		s.Workdays = append(s.Workdays, time.Weekday(w))
	}

	return s, nil
}

// Current implements settings.SettingsRepository. The table holds exactly
// one row, seeded at deployment.
func (r *settingsRepository) Current(ctx context.Context) (settings.WorkSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + settingsColumns + ` FROM work_settings LIMIT 1`

	s, err := scanSettings(q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.WorkSettings{}, settings.ErrSettingsNotFound
		}
		return settings.WorkSettings{}, fmt.Errorf("failed to load work settings: %w", err)
	}

	return s, nil
}

// Save implements settings.SettingsRepository.
func (r *settingsRepository) Save(ctx context.Context, s settings.WorkSettings) (settings.WorkSettings, error) {
	q := GetQuerier(ctx, r.db)

	var shortDayWeekday *int16
	if s.ShortDayWeekday != nil {
		w := int16(*s.ShortDayWeekday)
		shortDayWeekday = &w
	}
	workdays := make([]int16, 0, len(s.Workdays))
	for _, w := range s.Workdays {
		workdays = append(workdays, int16(w))
	}

	query := `
		UPDATE work_settings SET
			timezone = $1,
			ordinary_start = $2, ordinary_end = $3,
			ordinary_required_minutes = $4, ordinary_grace_minutes = $5,
			short_day_weekday = $6, short_day_start = $7, short_day_end = $8,
			short_day_required_minutes = $9, short_day_grace_minutes = $10,
			workdays = $11,
			office_latitude = $12, office_longitude = $13, office_radius_meters = $14,
			overtime_rate_workday = $15, overtime_rate_holiday = $16, overtime_threshold_minutes = $17,
			earliest_check_in_enabled = $18, earliest_check_in = $19,
			latest_check_out_enabled = $20, latest_check_out = $21,
			updated_at = NOW()
		WHERE id = $22
		RETURNING ` + settingsColumns

	saved, err := scanSettings(q.QueryRow(ctx, query,
		s.Timezone,
		s.OrdinaryStart, s.OrdinaryEnd,
		s.OrdinaryRequiredMinutes, s.OrdinaryGraceMinutes,
		shortDayWeekday, s.ShortDayStart, s.ShortDayEnd,
		s.ShortDayRequiredMinutes, s.ShortDayGraceMinutes,
		workdays,
		s.OfficeLatitude, s.OfficeLongitude, s.OfficeRadiusMeters,
		s.OvertimeRateWorkday, s.OvertimeRateHoliday, s.OvertimeThresholdMinutes,
		s.EarliestCheckInEnabled, s.EarliestCheckIn,
		s.LatestCheckOutEnabled, s.LatestCheckOut,
		s.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.WorkSettings{}, settings.ErrSettingsNotFound
		}
		return settings.WorkSettings{}, fmt.Errorf("failed to save work settings: %w", err)
	}

	return saved, nil
}
