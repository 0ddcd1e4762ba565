package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/barbersched/BarberSched-BookingService/internal/infra/storage/booking"
	"github.com/barbersched/BarberSched-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Доступ только участникам: клиенту бронирования или барберу.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.ClientID != userID && booking.BarberID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента.
// Клиент видит только собственную историю.
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, user=%d", req.ClientID, req.UserID)

	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ClientID != req.UserID {
		s.logger.Warn("GetClientBookings: access denied for user=%d to client=%d history", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.ListByClient(ctx, req.ClientID)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование.
// Отменить может только клиент, который его создал.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.ClientID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}
