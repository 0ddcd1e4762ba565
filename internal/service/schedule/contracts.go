package schedule

import (
	"context"
	"time"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	ListWorkingHours(ctx context.Context, barberID int64) ([]*domain.WorkingHour, error)
	ListExceptions(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.ScheduleException, error)
	ReplaceWorkingHours(ctx context.Context, barberID int64, hours []*domain.WorkingHour) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
