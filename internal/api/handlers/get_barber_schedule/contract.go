package get_barber_schedule

import (
	"context"

	"github.com/barbersched/BarberSched-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetBarberSchedule(ctx context.Context, barberID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
