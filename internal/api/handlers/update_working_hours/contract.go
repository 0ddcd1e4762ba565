package update_working_hours

import (
	"context"

	"github.com/barbersched/BarberSched-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ReplaceWorkingHours(ctx context.Context, req *models.ReplaceWorkingHoursRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
