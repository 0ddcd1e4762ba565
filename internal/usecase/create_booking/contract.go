package create_booking

import (
	"context"
	"time"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListForBarberRange(ctx context.Context, filter domain.BarberBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	ListWorkingHours(ctx context.Context, barberID int64) ([]*domain.WorkingHour, error)
	ListExceptions(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.ScheduleException, error)
}

// HoldRepository интерфейс репозитория holds
type HoldRepository interface {
	ListActive(ctx context.Context, barberID int64, from, to time.Time, now time.Time) ([]*domain.Hold, error)
	DeleteByToken(ctx context.Context, token string) error
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
	GetOption(ctx context.Context, serviceID, optionID int64) (*domain.ServiceOption, error)
	GetBarberService(ctx context.Context, barberID, serviceID int64) (*domain.BarberService, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
