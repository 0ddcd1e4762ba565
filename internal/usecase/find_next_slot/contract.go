package find_next_slot

import (
	"context"
	"time"

	"github.com/barbersched/BarberSched-BookingService/internal/usecase/compute_availability"
)

// AvailabilityComputer рассчитывает доступность барбера по диапазону дат
type AvailabilityComputer interface {
	Execute(ctx context.Context, req *compute_availability.Request) (*compute_availability.Response, error)
}

// TimeProvider предоставляет текущее время (для тестируемости)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
