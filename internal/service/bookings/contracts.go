package bookings

import (
	"context"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByClient(ctx context.Context, clientID int64) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
