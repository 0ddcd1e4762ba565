package schedule

import (
	"context"
	"fmt"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	"github.com/barbersched/BarberSched-BookingService/internal/service/schedule/models"
	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// exceptionsLookaheadDays горизонт отдачи исключений в ответе расписания
const exceptionsLookaheadDays = 90

// Service сервис для работы с расписаниями барберов
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetBarberSchedule получает недельное расписание барбера вместе с
// исключениями на ближайшие дни
func (s *Service) GetBarberSchedule(ctx context.Context, barberID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetBarberSchedule: fetching schedule for barber=%d", barberID)

	if barberID <= 0 {
		return nil, fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	from := now.AddDate(0, 0, -1)
	to := now.AddDate(0, 0, exceptionsLookaheadDays)

	// Часы и исключения читаются одним согласованным снимком
	var (
		hours      []*domain.WorkingHour
		exceptions []*domain.ScheduleException
	)
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		hours, err = s.scheduleRepo.ListWorkingHours(txCtx, barberID)
		if err != nil {
			return fmt.Errorf("failed to get working hours: %w", err)
		}
		exceptions, err = s.scheduleRepo.ListExceptions(txCtx, barberID, from, to)
		if err != nil {
			return fmt.Errorf("failed to get exceptions: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("GetBarberSchedule: repository error for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: GetBarberSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBarberSchedule: fetched %d working hours, %d exceptions for barber=%d",
		len(hours), len(exceptions), barberID)

	return models.FromDomainSchedule(barberID, hours, exceptions), nil
}

// ReplaceWorkingHours заменяет недельное расписание барбера целиком.
// Менять расписание может только сам барбер.
func (s *Service) ReplaceWorkingHours(ctx context.Context, req *models.ReplaceWorkingHoursRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("ReplaceWorkingHours: replacing schedule for barber=%d by user=%d, records=%d",
		req.BarberID, req.UserID, len(req.WorkingHours))

	if req.BarberID <= 0 {
		return nil, fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.BarberID != req.UserID {
		s.logger.Warn("ReplaceWorkingHours: access denied for user=%d to barber=%d schedule",
			req.UserID, req.BarberID)
		return nil, ErrAccessDenied
	}

	if err := validateWorkingHours(req.WorkingHours); err != nil {
		s.logger.Warn("ReplaceWorkingHours: validation failed for barber=%d: %v", req.BarberID, err)
		return nil, err
	}

	hours := req.ToDomainWorkingHours()

	// Удаление старого расписания и вставка нового — атомарно
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceWorkingHours(txCtx, req.BarberID, hours)
	})
	if err != nil {
		s.logger.Error("ReplaceWorkingHours: repository error for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWorkingHours: successfully replaced schedule for barber=%d", req.BarberID)
	return s.GetBarberSchedule(ctx, req.BarberID)
}

// validateWorkingHours проверяет недельное расписание: корректность
// времени, уникальность дней недели, перерывы внутри смены
func validateWorkingHours(items []models.WorkingHourItem) error {
	seen := make(map[int]bool, len(items))

	for _, item := range items {
		if item.Weekday < domain.MinWeekday || item.Weekday > domain.MaxWeekday {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidWorkingHours, item.Weekday)
		}
		if seen[item.Weekday] {
			return fmt.Errorf("%w: duplicate weekday %d", ErrInvalidWorkingHours, item.Weekday)
		}
		seen[item.Weekday] = true

		start := types.TimeString(item.StartTime)
		end := types.TimeString(item.EndTime)

		if err := start.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime for weekday %d: %v", ErrInvalidWorkingHours, item.Weekday, err)
		}
		if err := end.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime for weekday %d: %v", ErrInvalidWorkingHours, item.Weekday, err)
		}
		if !start.IsBefore(end) {
			return fmt.Errorf("%w: startTime must be before endTime for weekday %d", ErrInvalidWorkingHours, item.Weekday)
		}

		for _, br := range item.Breaks {
			brStart := types.TimeString(br.StartTime)
			brEnd := types.TimeString(br.EndTime)

			if err := brStart.Validate(); err != nil {
				return fmt.Errorf("%w: invalid break startTime for weekday %d: %v", ErrInvalidWorkingHours, item.Weekday, err)
			}
			if err := brEnd.Validate(); err != nil {
				return fmt.Errorf("%w: invalid break endTime for weekday %d: %v", ErrInvalidWorkingHours, item.Weekday, err)
			}
			if !brStart.IsBefore(brEnd) {
				return fmt.Errorf("%w: break start must be before break end for weekday %d", ErrInvalidWorkingHours, item.Weekday)
			}
			if brStart.IsBefore(start) || brEnd.IsAfter(end) {
				return fmt.Errorf("%w: break must be inside working hours for weekday %d", ErrInvalidWorkingHours, item.Weekday)
			}
		}
	}

	return nil
}
