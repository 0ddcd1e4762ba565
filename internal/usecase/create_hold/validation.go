package create_hold

import (
	"fmt"
	"time"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.OptionID != nil && *req.OptionID <= 0 {
		return fmt.Errorf("%w: optionID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date time.Time, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	return nil
}

// validateSlotFitsSchedule проверяет, что начало попадает в сетку слотов
// смены и занимаемое окно не выходит за конец смены
func validateSlotFitsSchedule(startTime, endTime types.TimeString, wh *domain.WorkingHour) error {
	startMin, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	openMin, err := wh.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: bad working hours: %v", ErrInternal, err)
	}

	if startMin < openMin || (startMin-openMin)%domain.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: startTime does not match the slot grid", ErrInvalidTimeSlot)
	}

	if endTime.IsAfter(wh.EndTime) {
		return fmt.Errorf("%w: slot does not fit into working hours", ErrInvalidTimeSlot)
	}

	for _, br := range wh.Breaks {
		if intervalsOverlap(startTime, endTime, br.StartTime, br.EndTime) {
			return ErrSlotNotAvailable
		}
	}

	return nil
}

// validateAgainstExceptions проверяет конфликт с исключениями расписания
func validateAgainstExceptions(startTime, endTime types.TimeString, exceptions []*domain.ScheduleException) error {
	for _, exc := range exceptions {
		if exc.Type != domain.ExceptionBlocked {
			continue
		}
		if exc.BlocksWholeDay() {
			return ErrBarberClosed
		}
		end := types.TimeString("23:59")
		if exc.EndTime != nil {
			end = *exc.EndTime
		}
		if intervalsOverlap(startTime, endTime, *exc.StartTime, end) {
			return ErrSlotNotAvailable
		}
	}

	return nil
}

// intervalsOverlap проверяет пересечение полуоткрытых интервалов
// (строгие неравенства, граничные случаи не считаются)
func intervalsOverlap(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
