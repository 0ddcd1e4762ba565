package create_hold

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	catalogRepo "github.com/barbersched/BarberSched-BookingService/internal/infra/storage/catalog"
	"github.com/barbersched/BarberSched-BookingService/pkg/ptr"
)

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
	holds   []*domain.Hold
	created *domain.Hold
}

func (s *stubHoldRepo) Create(_ context.Context, h *domain.Hold) (*domain.Hold, error) {
	out := *h
	out.ID = 1
	out.CreatedAt = time.Now()
	s.created = &out
	return &out, nil
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

type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	holdNow  = time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	holdDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	bookingRepo  *stubBookingRepo
	scheduleRepo *stubScheduleRepo
	holdRepo     *stubHoldRepo
	catalogRepo  *stubCatalogRepo
	uc           *UseCase
}

func newFixture(ttlMinutes int) *fixture {
	f := &fixture{
		bookingRepo: &stubBookingRepo{},
		scheduleRepo: &stubScheduleRepo{
			hours: []*domain.WorkingHour{{
				BarberID:  1,
				Weekday:   int(holdDate.Weekday()),
				StartTime: "09:00",
				EndTime:   "18:00",
			}},
		},
		holdRepo: &stubHoldRepo{},
		catalogRepo: &stubCatalogRepo{
			service: &domain.Service{ID: 10, Name: "Corte", BasePrice: 50},
			link:    &domain.BarberService{BarberID: 1, ServiceID: 10, Active: true},
		},
	}

	f.uc = NewUseCase(f.bookingRepo, f.scheduleRepo, f.holdRepo, f.catalogRepo, stubTxManager{}, ttlMinutes, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: holdNow}
	return f
}

func validHoldRequest() *Request {
	return &Request{
		BarberID:  1,
		ServiceID: 10,
		Date:      holdDate,
		StartTime: "10:00",
	}
}

func TestExecute_CreatesHold(t *testing.T) {
	f := newFixture(10)

	resp, err := f.uc.Execute(context.Background(), validHoldRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, holdDate, resp.HoldDate)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, "10:30", resp.EndTime.String())
	assert.Equal(t, holdNow.Add(10*time.Minute), resp.ExpiresAt)
}

func TestExecute_TokensAreUnique(t *testing.T) {
	f := newFixture(10)

	first, err := f.uc.Execute(context.Background(), validHoldRequest())
	require.NoError(t, err)

	req := validHoldRequest()
	req.StartTime = "11:00"
	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestExecute_NonPositiveTTLFallsBackToDefault(t *testing.T) {
	f := newFixture(0)

	resp, err := f.uc.Execute(context.Background(), validHoldRequest())
	require.NoError(t, err)

	assert.Equal(t, holdNow.Add(domain.DefaultHoldTTLMinutes*time.Minute), resp.ExpiresAt)
}

func TestExecute_OptionExtendsHeldWindow(t *testing.T) {
	f := newFixture(10)
	f.catalogRepo.option = &domain.ServiceOption{
		ID:              7,
		ServiceID:       10,
		DurationMinutes: 90,
	}

	req := validHoldRequest()
	req.OptionID = ptr.Ptr(int64(7))

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "11:30", resp.EndTime.String())
}

func TestExecute_SlotTakenByBooking(t *testing.T) {
	f := newFixture(10)
	f.bookingRepo.bookings = []*domain.Booking{{
		BarberID:        1,
		BookingDate:     holdDate,
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
	}}

	_, err := f.uc.Execute(context.Background(), validHoldRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, f.holdRepo.created)
}

func TestExecute_SlotAlreadyHeld(t *testing.T) {
	f := newFixture(10)
	f.holdRepo.holds = []*domain.Hold{{
		Token:     "existing",
		BarberID:  1,
		HoldDate:  holdDate,
		StartTime: "10:00",
		EndTime:   "10:30",
	}}

	_, err := f.uc.Execute(context.Background(), validHoldRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_BarberClosed(t *testing.T) {
	f := newFixture(10)
	f.scheduleRepo.hours = nil

	_, err := f.uc.Execute(context.Background(), validHoldRequest())
	assert.ErrorIs(t, err, ErrBarberClosed)
}

func TestExecute_ServiceNotOffered(t *testing.T) {
	f := newFixture(10)
	f.catalogRepo.link = nil

	_, err := f.uc.Execute(context.Background(), validHoldRequest())
	assert.ErrorIs(t, err, ErrServiceNotOffered)
}

func TestExecute_PastDateRejected(t *testing.T) {
	f := newFixture(10)

	req := validHoldRequest()
	req.Date = holdNow.AddDate(0, 0, -1)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
