package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) settings.HolidayRepository {
	return &holidayRepository{db: db}
}

// IsHoliday implements settings.HolidayRepository.
func (r *holidayRepository) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM holidays WHERE date = $1)`

	var exists bool
	if err := q.QueryRow(ctx, query, date.Format("2006-01-02")).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}

	return exists, nil
}

// ListRange implements settings.HolidayRepository.
func (r *holidayRepository) ListRange(ctx context.Context, from, to time.Time) ([]settings.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, note, created_at, updated_at
		FROM holidays
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []settings.Holiday
	for rows.Next() {
		var h settings.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Note, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}

// Upsert implements settings.HolidayRepository. The unique constraint on
// date keeps at most one holiday per calendar date.
func (r *holidayRepository) Upsert(ctx context.Context, holiday settings.Holiday) (settings.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (id, date, note)
		VALUES (gen_random_uuid(), $1, $2)
		ON CONFLICT (date) DO UPDATE SET
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING id, date, note, created_at, updated_at
	`

	var saved settings.Holiday
	err := q.QueryRow(ctx, query, holiday.Date.Format("2006-01-02"), holiday.Note).Scan(
		&saved.ID, &saved.Date, &saved.Note, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return settings.Holiday{}, fmt.Errorf("failed to upsert holiday: %w", err)
	}

	return saved, nil
}
