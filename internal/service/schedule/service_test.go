package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	"github.com/barbersched/BarberSched-BookingService/internal/service/schedule/models"
)

type stubScheduleRepo struct {
	hours      []*domain.WorkingHour
	exceptions []*domain.ScheduleException

	replacedBarberID int64
	replacedHours    []*domain.WorkingHour
}

func (s *stubScheduleRepo) ListWorkingHours(_ context.Context, _ int64) ([]*domain.WorkingHour, error) {
	return s.hours, nil
}

func (s *stubScheduleRepo) ListExceptions(_ context.Context, _ int64, _, _ time.Time) ([]*domain.ScheduleException, error) {
	return s.exceptions, nil
}

func (s *stubScheduleRepo) ReplaceWorkingHours(_ context.Context, barberID int64, hours []*domain.WorkingHour) error {
	s.replacedBarberID = barberID
	s.replacedHours = hours
	s.hours = hours
	return nil
}

type stubTxManager struct {
	readOnlyCalls int
}

func (s *stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *stubTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	s.readOnlyCalls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *stubScheduleRepo) (*Service, *stubTxManager) {
	tx := &stubTxManager{}
	return NewService(repo, tx, nopLogger{}), tx
}

func TestGetBarberSchedule(t *testing.T) {
	repo := &stubScheduleRepo{
		hours: []*domain.WorkingHour{
			{BarberID: 1, Weekday: 1, StartTime: "09:00", EndTime: "18:00"},
			{BarberID: 1, Weekday: 2, StartTime: "10:00", EndTime: "19:00",
				Breaks: []domain.Break{{StartTime: "13:00", EndTime: "14:00"}}},
		},
		exceptions: []*domain.ScheduleException{
			{BarberID: 1, Date: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), Type: domain.ExceptionBlocked},
		},
	}

	svc, tx := newTestService(repo)
	resp, err := svc.GetBarberSchedule(context.Background(), 1)
	require.NoError(t, err)

	// Оба чтения идут внутри одной read-only транзакции
	assert.Equal(t, 1, tx.readOnlyCalls)

	assert.Equal(t, int64(1), resp.BarberID)
	require.Len(t, resp.WorkingHours, 2)
	assert.Equal(t, "09:00", resp.WorkingHours[0].StartTime)
	require.Len(t, resp.WorkingHours[1].Breaks, 1)
	assert.Equal(t, "13:00", resp.WorkingHours[1].Breaks[0].StartTime)

	require.Len(t, resp.Exceptions, 1)
	assert.Equal(t, "2026-03-20", resp.Exceptions[0].Date)
	assert.Equal(t, "blocked", resp.Exceptions[0].Type)
	assert.Nil(t, resp.Exceptions[0].StartTime)
}

func TestGetBarberSchedule_InvalidID(t *testing.T) {
	svc, _ := newTestService(&stubScheduleRepo{})

	_, err := svc.GetBarberSchedule(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReplaceWorkingHours(t *testing.T) {
	repo := &stubScheduleRepo{}
	svc, _ := newTestService(repo)

	req := &models.ReplaceWorkingHoursRequest{
		UserID:   1,
		BarberID: 1,
		WorkingHours: []models.WorkingHourItem{
			{Weekday: 1, StartTime: "09:00", EndTime: "18:00"},
			{Weekday: 2, StartTime: "10:00", EndTime: "19:00",
				Breaks: []models.BreakItem{{StartTime: "13:00", EndTime: "14:00"}}},
		},
	}

	resp, err := svc.ReplaceWorkingHours(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), repo.replacedBarberID)
	require.Len(t, repo.replacedHours, 2)
	assert.Equal(t, int64(1), repo.replacedHours[0].BarberID)

	// Ответ собран из перечитанного расписания
	require.Len(t, resp.WorkingHours, 2)
	assert.Equal(t, "10:00", resp.WorkingHours[1].StartTime)
}

func TestReplaceWorkingHours_OnlyOwnSchedule(t *testing.T) {
	svc, _ := newTestService(&stubScheduleRepo{})

	req := &models.ReplaceWorkingHoursRequest{
		UserID:       2,
		BarberID:     1,
		WorkingHours: []models.WorkingHourItem{{Weekday: 1, StartTime: "09:00", EndTime: "18:00"}},
	}

	_, err := svc.ReplaceWorkingHours(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestValidateWorkingHours(t *testing.T) {
	tests := []struct {
		name  string
		items []models.WorkingHourItem
		valid bool
	}{
		{
			"empty schedule allowed",
			nil,
			true,
		},
		{
			"valid week",
			[]models.WorkingHourItem{
				{Weekday: 0, StartTime: "09:00", EndTime: "18:00"},
				{Weekday: 6, StartTime: "10:00", EndTime: "14:00"},
			},
			true,
		},
		{
			"weekday below range",
			[]models.WorkingHourItem{{Weekday: -1, StartTime: "09:00", EndTime: "18:00"}},
			false,
		},
		{
			"weekday above range",
			[]models.WorkingHourItem{{Weekday: 7, StartTime: "09:00", EndTime: "18:00"}},
			false,
		},
		{
			"duplicate weekday",
			[]models.WorkingHourItem{
				{Weekday: 1, StartTime: "09:00", EndTime: "12:00"},
				{Weekday: 1, StartTime: "14:00", EndTime: "18:00"},
			},
			false,
		},
		{
			"malformed start time",
			[]models.WorkingHourItem{{Weekday: 1, StartTime: "9am", EndTime: "18:00"}},
			false,
		},
		{
			"start not before end",
			[]models.WorkingHourItem{{Weekday: 1, StartTime: "18:00", EndTime: "09:00"}},
			false,
		},
		{
			"zero-length shift",
			[]models.WorkingHourItem{{Weekday: 1, StartTime: "09:00", EndTime: "09:00"}},
			false,
		},
		{
			"break inside shift",
			[]models.WorkingHourItem{{
				Weekday: 1, StartTime: "09:00", EndTime: "18:00",
				Breaks: []models.BreakItem{{StartTime: "12:00", EndTime: "13:00"}},
			}},
			true,
		},
		{
			"break outside shift",
			[]models.WorkingHourItem{{
				Weekday: 1, StartTime: "09:00", EndTime: "18:00",
				Breaks: []models.BreakItem{{StartTime: "08:00", EndTime: "10:00"}},
			}},
			false,
		},
		{
			"break reversed",
			[]models.WorkingHourItem{{
				Weekday: 1, StartTime: "09:00", EndTime: "18:00",
				Breaks: []models.BreakItem{{StartTime: "14:00", EndTime: "13:00"}},
			}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWorkingHours(tt.items)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidWorkingHours)
			}
		})
	}
}
