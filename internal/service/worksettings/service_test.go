package worksettings

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx satisfies pgx.Tx so the transactional update path can run against
// in-memory repositories.
type fakeTx struct {
	commits   int
	rollbacks int
}

func (f *fakeTx) Begin(_ context.Context) (pgx.Tx, error) { return f, nil }
func (f *fakeTx) Commit(_ context.Context) error          { f.commits++; return nil }
func (f *fakeTx) Rollback(_ context.Context) error        { f.rollbacks++; return nil }
func (f *fakeTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (f *fakeTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }
func (f *fakeTx) LargeObjects() pgx.LargeObjects                             { return pgx.LargeObjects{} }
func (f *fakeTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (f *fakeTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (f *fakeTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return nil, nil }
func (f *fakeTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row        { return nil }
func (f *fakeTx) Conn() *pgx.Conn                                               { return nil }

type fakeTxBeginner struct {
	tx fakeTx
}

func (f *fakeTxBeginner) BeginTx(_ context.Context) (pgx.Tx, error) {
	return &f.tx, nil
}

type fakeSettingsRepo struct {
	current settings.WorkSettings
	err     error
}

func (f *fakeSettingsRepo) Current(_ context.Context) (settings.WorkSettings, error) {
	if f.err != nil {
		return settings.WorkSettings{}, f.err
	}
	return f.current, nil
}

func (f *fakeSettingsRepo) Save(_ context.Context, s settings.WorkSettings) (settings.WorkSettings, error) {
	f.current = s
	return s, nil
}

type fakeHolidayRepo struct {
	holidays map[string]settings.Holiday
}

func newFakeHolidayRepo() *fakeHolidayRepo {
	return &fakeHolidayRepo{holidays: make(map[string]settings.Holiday)}
}

func (f *fakeHolidayRepo) IsHoliday(_ context.Context, date time.Time) (bool, error) {
	_, ok := f.holidays[date.Format("2006-01-02")]
	return ok, nil
}

func (f *fakeHolidayRepo) ListRange(_ context.Context, from, to time.Time) ([]settings.Holiday, error) {
	var out []settings.Holiday
	for _, h := range f.holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidayRepo) Upsert(_ context.Context, h settings.Holiday) (settings.Holiday, error) {
	key := h.Date.Format("2006-01-02")
	if existing, ok := f.holidays[key]; ok {
		existing.Note = h.Note
		f.holidays[key] = existing
		return existing, nil
	}
	h.ID = "hol-" + key
	f.holidays[key] = h
	return h, nil
}

func validUpdate() settings.UpdateWorkSettingsRequest {
	return settings.UpdateWorkSettingsRequest{
		Timezone:                "Asia/Jakarta",
		OrdinaryStart:           "08:00",
		OrdinaryEnd:             "17:00",
		OrdinaryRequiredMinutes: 480,
		OrdinaryGraceMinutes:    15,
		Workdays:                []int{1, 2, 3, 4, 5},
		OvertimeRateWorkday:     1.5,
		OvertimeRateHoliday:     2.0,
	}
}

func TestUpdateWorkSettings_ReplacesSingleton(t *testing.T) {
	t.Parallel()
	repo := &fakeSettingsRepo{current: settings.WorkSettings{ID: "settings-1", Timezone: "UTC"}}
	tb := &fakeTxBeginner{}
	svc := NewSettingsService(tb, repo, newFakeHolidayRepo())

	saved, err := svc.UpdateWorkSettings(context.Background(), validUpdate())
	require.NoError(t, err)

	assert.Equal(t, 1, tb.tx.commits)
	assert.Equal(t, 0, tb.tx.rollbacks)
	assert.Equal(t, "settings-1", saved.ID) // identity preserved
	assert.Equal(t, "Asia/Jakarta", saved.Timezone)
	assert.Equal(t, 480, saved.OrdinaryRequiredMinutes)
	assert.Equal(t, []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	}, saved.Workdays)
}

func TestUpdateWorkSettings_RejectsInvalid(t *testing.T) {
	t.Parallel()
	repo := &fakeSettingsRepo{current: settings.WorkSettings{ID: "settings-1"}}
	svc := NewSettingsService(&fakeTxBeginner{}, repo, newFakeHolidayRepo())

	req := validUpdate()
	req.Timezone = "Not/A_Zone"
	_, err := svc.UpdateWorkSettings(context.Background(), req)
	assert.Error(t, err)

	req = validUpdate()
	req.Workdays = nil
	_, err = svc.UpdateWorkSettings(context.Background(), req)
	assert.Error(t, err)

	req = validUpdate()
	req.OrdinaryStart = "8am"
	_, err = svc.UpdateWorkSettings(context.Background(), req)
	assert.Error(t, err)
}

func TestUpdateWorkSettings_ShortDayRequiresFields(t *testing.T) {
	t.Parallel()
	repo := &fakeSettingsRepo{current: settings.WorkSettings{ID: "settings-1"}}
	svc := NewSettingsService(&fakeTxBeginner{}, repo, newFakeHolidayRepo())

	friday := 5
	req := validUpdate()
	req.ShortDayWeekday = &friday
	// Missing short day start and required minutes.
	_, err := svc.UpdateWorkSettings(context.Background(), req)
	assert.Error(t, err)

	req.ShortDayStart = "07:00"
	req.ShortDayEnd = "12:00"
	req.ShortDayRequiredMinutes = 300
	saved, err := svc.UpdateWorkSettings(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, saved.ShortDayWeekday)
	assert.Equal(t, time.Friday, *saved.ShortDayWeekday)
}

func TestUpsertHoliday_ReplacesByDate(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(&fakeTxBeginner{}, &fakeSettingsRepo{}, newFakeHolidayRepo())

	first, err := svc.UpsertHoliday(context.Background(), settings.UpsertHolidayRequest{
		Date: "2024-03-14",
		Note: "Nyepi",
	})
	require.NoError(t, err)

	second, err := svc.UpsertHoliday(context.Background(), settings.UpsertHolidayRequest{
		Date: "2024-03-14",
		Note: "Nyepi (corrected)",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Nyepi (corrected)", second.Note)
}

func TestUpsertHoliday_Validation(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(&fakeTxBeginner{}, &fakeSettingsRepo{}, newFakeHolidayRepo())

	_, err := svc.UpsertHoliday(context.Background(), settings.UpsertHolidayRequest{Date: "14-03-2024", Note: "x"})
	assert.Error(t, err)

	_, err = svc.UpsertHoliday(context.Background(), settings.UpsertHolidayRequest{Date: "2024-03-14", Note: " "})
	assert.Error(t, err)
}

func TestListHolidays_Range(t *testing.T) {
	t.Parallel()
	holidayRepo := newFakeHolidayRepo()
	svc := NewSettingsService(&fakeTxBeginner{}, &fakeSettingsRepo{}, holidayRepo)

	for _, d := range []string{"2024-03-01", "2024-03-14", "2024-04-01"} {
		_, err := svc.UpsertHoliday(context.Background(), settings.UpsertHolidayRequest{Date: d, Note: "holiday"})
		require.NoError(t, err)
	}

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	list, err := svc.ListHolidays(context.Background(), from, to)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
