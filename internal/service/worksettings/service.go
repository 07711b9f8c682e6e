package worksettings

import (
	"context"
	"fmt"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/repository/postgresql"
)

type SettingsServiceImpl struct {
	db postgresql.TxBeginner
	settings.SettingsRepository
	settings.HolidayRepository
}

func NewSettingsService(db postgresql.TxBeginner, settingsRepo settings.SettingsRepository, holidayRepo settings.HolidayRepository) settings.SettingsService {
	return &SettingsServiceImpl{
		db:                 db,
		SettingsRepository: settingsRepo,
		HolidayRepository:  holidayRepo,
	}
}

// GetWorkSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) GetWorkSettings(ctx context.Context) (settings.WorkSettings, error) {
	return s.SettingsRepository.Current(ctx)
}

// UpdateWorkSettings implements settings.SettingsService. The read and
// write of the singleton row share one transaction; in-flight evaluations
// keep the snapshot they already read.
func (s *SettingsServiceImpl) UpdateWorkSettings(ctx context.Context, req settings.UpdateWorkSettingsRequest) (settings.WorkSettings, error) {
	if err := req.Validate(); err != nil {
		return settings.WorkSettings{}, err
	}

	var saved settings.WorkSettings
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		current, err := s.SettingsRepository.Current(txCtx)
		if err != nil {
			return fmt.Errorf("failed to load work settings: %w", err)
		}

		saved, err = s.SettingsRepository.Save(txCtx, req.ToEntity(current))
		if err != nil {
			return fmt.Errorf("failed to save work settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return settings.WorkSettings{}, err
	}

	return saved, nil
}

// ListHolidays implements settings.SettingsService.
func (s *SettingsServiceImpl) ListHolidays(ctx context.Context, from, to time.Time) ([]settings.Holiday, error) {
	return s.HolidayRepository.ListRange(ctx, from, to)
}

// UpsertHoliday implements settings.SettingsService.
func (s *SettingsServiceImpl) UpsertHoliday(ctx context.Context, req settings.UpsertHolidayRequest) (settings.Holiday, error) {
	if err := req.Validate(); err != nil {
		return settings.Holiday{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	saved, err := s.HolidayRepository.Upsert(ctx, settings.Holiday{Date: date, Note: req.Note})
	if err != nil {
		return settings.Holiday{}, fmt.Errorf("failed to upsert holiday: %w", err)
	}

	return saved, nil
}
