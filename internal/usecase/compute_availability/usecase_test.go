package compute_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	catalogRepo "github.com/barbersched/BarberSched-BookingService/internal/infra/storage/catalog"
	"github.com/barbersched/BarberSched-BookingService/pkg/ptr"
	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// ---- стабы зависимостей ----

type stubBookingRepo struct {
	bookings []*domain.Booking
}

func (s *stubBookingRepo) ListForBarberRange(_ context.Context, _ domain.BarberBookingsFilter) ([]*domain.Booking, error) {
	return s.bookings, nil
}

type stubScheduleRepo struct {
	hours      []*domain.WorkingHour
	exceptions []*domain.ScheduleException
}

func (s *stubScheduleRepo) ListWorkingHours(_ context.Context, _ int64) ([]*domain.WorkingHour, error) {
	return s.hours, nil
}

func (s *stubScheduleRepo) ListExceptions(_ context.Context, _ int64, _, _ time.Time) ([]*domain.ScheduleException, error) {
	return s.exceptions, nil
}

type stubHoldRepo struct {
	holds []*domain.Hold
}

func (s *stubHoldRepo) ListActive(_ context.Context, _ int64, _, _ time.Time, _ time.Time) ([]*domain.Hold, error) {
	return s.holds, nil
}

type stubCatalogRepo struct {
	service *domain.Service
	option  *domain.ServiceOption
	link    *domain.BarberService
}

func (s *stubCatalogRepo) GetService(_ context.Context, _ int64) (*domain.Service, error) {
	if s.service == nil {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s.service, nil
}

func (s *stubCatalogRepo) GetOption(_ context.Context, _, _ int64) (*domain.ServiceOption, error) {
	if s.option == nil {
		return nil, catalogRepo.ErrOptionNotFound
	}
	return s.option, nil
}

func (s *stubCatalogRepo) GetBarberService(_ context.Context, _, _ int64) (*domain.BarberService, error) {
	if s.link == nil {
		return nil, catalogRepo.ErrLinkNotFound
	}
	return s.link, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ---- фикстуры ----

// Вторник 2026-03-10; "сейчас" — утро понедельника 2026-03-09
var (
	testNow     = time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	testTuesday = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
)

func fullWeekHours() []*domain.WorkingHour {
	hours := make([]*domain.WorkingHour, 0, 7)
	for wd := 0; wd <= 6; wd++ {
		hours = append(hours, &domain.WorkingHour{
			BarberID:  1,
			Weekday:   wd,
			StartTime: "09:00",
			EndTime:   "18:00",
		})
	}
	return hours
}

type fixture struct {
	bookingRepo  *stubBookingRepo
	scheduleRepo *stubScheduleRepo
	holdRepo     *stubHoldRepo
	catalogRepo  *stubCatalogRepo
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookingRepo:  &stubBookingRepo{},
		scheduleRepo: &stubScheduleRepo{hours: fullWeekHours()},
		holdRepo:     &stubHoldRepo{},
		catalogRepo: &stubCatalogRepo{
			service: &domain.Service{ID: 10, Name: "Corte", BasePrice: 50},
			link:    &domain.BarberService{BarberID: 1, ServiceID: 10, Active: true},
		},
	}

	f.uc = NewUseCase(f.bookingRepo, f.scheduleRepo, f.holdRepo, f.catalogRepo, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return f
}

func singleDayRequest(date time.Time) *Request {
	return &Request{BarberID: 1, ServiceID: 10, FromDate: date, ToDate: date}
}

func findSlot(t *testing.T, day domain.DayAvailability, start types.TimeString) domain.Slot {
	t.Helper()
	for _, s := range day.Slots {
		if s.StartTime == start {
			return s
		}
	}
	t.Fatalf("slot %s not found in day %s", start, day.Date.Format(domain.DateFormat))
	return domain.Slot{}
}

// ---- тесты ----

func TestExecute_FullGridWhenNoConflicts(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), singleDayRequest(testTuesday))
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	day := resp.Days[0]
	assert.True(t, day.Available)
	assert.Len(t, day.Slots, 18) // 09:00-18:00 по 30 минут

	for _, s := range day.Slots {
		assert.True(t, s.Available, "slot %s", s.StartTime)
	}
}

func TestExecute_BookingBlocksExactlyItsSlot(t *testing.T) {
	f := newFixture()
	f.bookingRepo.bookings = []*domain.Booking{{
		BarberID:        1,
		BookingDate:     testTuesday,
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
	}}

	resp, err := f.uc.Execute(context.Background(), singleDayRequest(testTuesday))
	require.NoError(t, err)

	day := resp.Days[0]
	assert.False(t, findSlot(t, day, "10:00").Available)
	assert.True(t, findSlot(t, day, "09:30").Available)
	assert.True(t, findSlot(t, day, "10:30").Available)
	assert.True(t, day.Available)
}

func TestExecute_BookingOnOtherDateDoesNotLeak(t *testing.T) {
	f := newFixture()
	// Бронирование в понедельник не должно блокировать слоты вторника
	f.bookingRepo.bookings = []*domain.Booking{{
		BarberID:        1,
		BookingDate:     testTuesday.AddDate(0, 0, -1),
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
	}}

	resp, err := f.uc.Execute(context.Background(), singleDayRequest(testTuesday))
	require.NoError(t, err)

	assert.True(t, findSlot(t, resp.Days[0], "10:00").Available)
}

func TestExecute_PastDatesReportedEmpty(t *testing.T) {
	f := newFixture()

	// Диапазон целиком в прошлом: бронировать там уже нечего
	resp, err := f.uc.Execute(context.Background(), &Request{
		BarberID:  1,
		ServiceID: 10,
		FromDate:  testNow.AddDate(0, 0, -7),
		ToDate:    testNow.AddDate(0, 0, -5),
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 3)

	for _, day := range resp.Days {
		assert.False(t, day.Available, "past day %s", day.Date.Format(domain.DateFormat))
		assert.Empty(t, day.Slots)
	}
}

func TestExecute_RangeStraddlingTodayEmptiesOnlyPastDays(t *testing.T) {
	f := newFixture()

	// Вчера, сегодня, завтра: пустым отдается только вчерашний день
	resp, err := f.uc.Execute(context.Background(), &Request{
		BarberID:  1,
		ServiceID: 10,
		FromDate:  testNow.AddDate(0, 0, -1),
		ToDate:    testNow.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 3)

	assert.False(t, resp.Days[0].Available)
	assert.Empty(t, resp.Days[0].Slots)
	assert.True(t, resp.Days[1].Available)
	assert.True(t, resp.Days[2].Available)
}

func TestExecute_HoldBlocksSlot(t *testing.T) {
	f := newFixture()
	f.holdRepo.holds = []*domain.Hold{{
		BarberID:  1,
		HoldDate:  testTuesday,
		StartTime: "14:00",
		EndTime:   "14:30",
		ExpiresAt: testNow.Add(5 * time.Minute),
	}}

	resp, err := f.uc.Execute(context.Background(), singleDayRequest(testTuesday))
	require.NoError(t, err)

	day := resp.Days[0]
	assert.False(t, findSlot(t, day, "14:00").Available)
	assert.True(t, findSlot(t, day, "13:30").Available)
}

func TestExecute_FullDayExceptionEmptiesOnlyThatDay(t *testing.T) {
	f := newFixture()
	middle := testTuesday.AddDate(0, 0, 1)
	f.scheduleRepo.exceptions = []*domain.ScheduleException{{
		BarberID: 1,
		Date:     middle,
		Type:     domain.ExceptionBlocked,
	}}

	req := &Request{
		BarberID:  1,
		ServiceID: 10,
		FromDate:  testTuesday,
		ToDate:    testTuesday.AddDate(0, 0, 2),
	}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Days, 3)

	assert.True(t, resp.Days[0].Available)
	assert.False(t, resp.Days[1].Available)
	assert.Empty(t, resp.Days[1].Slots)
	assert.True(t, resp.Days[2].Available)
}

func TestExecute_PartialExceptionBlocksWindow(t *testing.T) {
	f := newFixture()
	f.scheduleRepo.exceptions = []*domain.ScheduleException{{
		BarberID:  1,
		Date:      testTuesday,
		StartTime: ptr.Ptr(types.TimeString("12:00")),
		EndTime:   ptr.Ptr(types.TimeString("13:00")),
		Type:      domain.ExceptionBlocked,
	}}

	resp, err := f.uc.Execute(context.Background(), singleDayRequest(testTuesday))
	require.NoError(t, err)

	day := resp.Days[0]
	assert.False(t, findSlot(t, day, "12:00").Available)
	assert.False(t, findSlot(t, day, "12:30").Available)
	assert.True(t, findSlot(t, day, "11:30").Available)
	assert.True(t, findSlot(t, day, "13:00").Available)
}

func TestExecute_PartialExceptionWithoutEndRunsToEndOfDay(t *testing.T) {
	f := newFixture()
	f.scheduleRepo.exceptions = []*domain.ScheduleException{{
		BarberID:  1,
		Date:      testTuesday,
		StartTime: ptr.Ptr(types.TimeString("15:00")),
		Type:      domain.ExceptionBlocked,
	}}

	resp, err := f.uc.Execute(context.Background(), singleDayRequest(testTuesday))
	require.NoError(t, err)

	day := resp.Days[0]
	assert.True(t, findSlot(t, day, "14:30").Available)
	for _, start := range []types.TimeString{"15:00", "16:00", "17:30"} {
		assert.False(t, findSlot(t, day, start).Available, "slot %s", start)
	}
}

func TestExecute_DayOffWeekday(t *testing.T) {
	f := newFixture()
	// Расписание без вторника
	hours := make([]*domain.WorkingHour, 0, 6)
	for _, wh := range fullWeekHours() {
		if wh.Weekday != int(time.Tuesday) {
			hours = append(hours, wh)
		}
	}
	f.scheduleRepo.hours = hours

	resp, err := f.uc.Execute(context.Background(), singleDayRequest(testTuesday))
	require.NoError(t, err)

	day := resp.Days[0]
	assert.False(t, day.Available)
	assert.Empty(t, day.Slots)
}

func TestExecute_PastSlotsHiddenToday(t *testing.T) {
	f := newFixture()
	f.uc.timeProvider = &fixedTimeProvider{
		now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	resp, err := f.uc.Execute(context.Background(), singleDayRequest(testTuesday))
	require.NoError(t, err)

	day := resp.Days[0]
	assert.False(t, findSlot(t, day, "11:30").Available)
	assert.False(t, findSlot(t, day, "12:00").Available)
	assert.True(t, findSlot(t, day, "12:30").Available)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture()
	f.catalogRepo.service = nil

	resp, err := f.uc.Execute(context.Background(), singleDayRequest(testTuesday))
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Nil(t, resp)
}

func TestExecute_InactiveLinkReturnsEmptyReport(t *testing.T) {
	f := newFixture()
	f.catalogRepo.link.Active = false

	req := &Request{
		BarberID:  1,
		ServiceID: 10,
		FromDate:  testTuesday,
		ToDate:    testTuesday.AddDate(0, 0, 1),
	}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)

	for _, day := range resp.Days {
		assert.False(t, day.Available)
		assert.Empty(t, day.Slots)
	}
}

func TestExecute_MissingLinkReturnsEmptyReport(t *testing.T) {
	f := newFixture()
	f.catalogRepo.link = nil

	resp, err := f.uc.Execute(context.Background(), singleDayRequest(testTuesday))
	require.NoError(t, err)
	assert.False(t, resp.Days[0].Available)
}

func TestExecute_OptionSetsDurationAndPrice(t *testing.T) {
	f := newFixture()
	f.catalogRepo.option = &domain.ServiceOption{
		ID:              7,
		ServiceID:       10,
		DurationMinutes: 60,
		PriceAdjustment: 15,
	}

	req := singleDayRequest(testTuesday)
	req.OptionID = ptr.Ptr(int64(7))

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	day := resp.Days[0]

	// Цена = базовая цена услуги + наценка опции
	first := findSlot(t, day, "09:00")
	assert.True(t, first.Available)
	assert.Equal(t, 65.0, first.Price)

	// Отображаемая граница слота остается шириной сетки
	assert.Equal(t, types.TimeString("09:30"), first.EndTime)

	// Окно 17:30-18:30 вышло бы за конец смены
	assert.False(t, findSlot(t, day, "17:30").Available)
	assert.True(t, findSlot(t, day, "17:00").Available)
}

func TestExecute_BarberPriceOverridesServiceBase(t *testing.T) {
	f := newFixture()
	f.catalogRepo.link.Price = ptr.Ptr(80.0)
	f.catalogRepo.option = &domain.ServiceOption{
		ID:              7,
		ServiceID:       10,
		DurationMinutes: 30,
		PriceAdjustment: 10,
	}

	req := singleDayRequest(testTuesday)
	req.OptionID = ptr.Ptr(int64(7))

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 90.0, findSlot(t, resp.Days[0], "09:00").Price)
}

func TestExecute_NoOptionMeansZeroPrice(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), singleDayRequest(testTuesday))
	require.NoError(t, err)

	assert.Zero(t, findSlot(t, resp.Days[0], "09:00").Price)
}

func TestExecute_UnknownOption(t *testing.T) {
	f := newFixture()
	req := singleDayRequest(testTuesday)
	req.OptionID = ptr.Ptr(int64(999))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOptionNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			"zero barber id",
			&Request{ServiceID: 10, FromDate: testTuesday, ToDate: testTuesday},
			ErrInvalidInput,
		},
		{
			"zero service id",
			&Request{BarberID: 1, FromDate: testTuesday, ToDate: testTuesday},
			ErrInvalidInput,
		},
		{
			"to before from",
			&Request{BarberID: 1, ServiceID: 10, FromDate: testTuesday, ToDate: testTuesday.AddDate(0, 0, -1)},
			ErrInvalidRange,
		},
		{
			"range too long",
			&Request{BarberID: 1, ServiceID: 10, FromDate: testTuesday, ToDate: testTuesday.AddDate(0, 0, domain.MaxAvailabilityRangeDays+1)},
			ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_DaysOrderedAscending(t *testing.T) {
	f := newFixture()

	req := &Request{
		BarberID:  1,
		ServiceID: 10,
		FromDate:  testTuesday,
		ToDate:    testTuesday.AddDate(0, 0, 6),
	}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)

	for i := 1; i < len(resp.Days); i++ {
		assert.True(t, resp.Days[i].Date.After(resp.Days[i-1].Date))
	}
}
