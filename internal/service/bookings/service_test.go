package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	bookingRepo "github.com/barbersched/BarberSched-BookingService/internal/infra/storage/booking"
	"github.com/barbersched/BarberSched-BookingService/internal/service/bookings/models"
)

type stubBookingRepo struct {
	booking *domain.Booking
	list    []*domain.Booking

	cancelledID     int64
	cancelledReason string
}

func (s *stubBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if s.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return s.booking, nil
}

func (s *stubBookingRepo) ListByClient(_ context.Context, _ int64) ([]*domain.Booking, error) {
	return s.list, nil
}

func (s *stubBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	s.cancelledID = id
	s.cancelledReason = reason
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func scheduledBooking() *domain.Booking {
	return &domain.Booking{
		ID:              42,
		ClientID:        100,
		BarberID:        1,
		ServiceID:       10,
		BookingDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
		Price:           50,
	}
}

func TestGetByID_ParticipantsOnly(t *testing.T) {
	repo := &stubBookingRepo{booking: scheduledBooking()}
	svc := NewService(repo, nopLogger{})

	// Клиент бронирования
	resp, err := svc.GetByID(context.Background(), 42, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2026-03-10", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)

	// Барбер бронирования
	_, err = svc.GetByID(context.Background(), 42, 1)
	assert.NoError(t, err)

	// Посторонний пользователь
	_, err = svc.GetByID(context.Background(), 42, 777)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&stubBookingRepo{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 42, 100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetClientBookings_OwnHistoryOnly(t *testing.T) {
	repo := &stubBookingRepo{list: []*domain.Booking{scheduledBooking()}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		UserID:   100,
		ClientID: 100,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		UserID:   100,
		ClientID: 200,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{UserID: 100})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	repo := &stubBookingRepo{booking: scheduledBooking()}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		UserID:             100,
		CancellationReason: "не смогу прийти",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), repo.cancelledID)
	assert.Equal(t, "не смогу прийти", repo.cancelledReason)
}

func TestCancel_OwnerOnly(t *testing.T) {
	repo := &stubBookingRepo{booking: scheduledBooking()}
	svc := NewService(repo, nopLogger{})

	// Барберу отмена не разрешена, только клиенту
	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.cancelledID)
}

func TestCancel_TerminalStatuses(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled, "cancelada"} {
		booking := scheduledBooking()
		booking.Status = status

		repo := &stubBookingRepo{booking: booking}
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 100})
		assert.ErrorIs(t, err, ErrCannotCancel, "status %q", status)
	}
}

func TestCancel_NotFound(t *testing.T) {
	svc := NewService(&stubBookingRepo{}, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 100})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
