package models

import (
	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// Request модели

// ReplaceWorkingHoursRequest запрос на замену недельного расписания барбера
type ReplaceWorkingHoursRequest struct {
	UserID       int64             `json:"userId"`
	BarberID     int64             `json:"barberId"`
	WorkingHours []WorkingHourItem `json:"workingHours"`
}

// WorkingHourItem одна запись недельного расписания
type WorkingHourItem struct {
	Weekday   int         `json:"weekday"` // 0 = воскресенье .. 6 = суббота
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
	Breaks    []BreakItem `json:"breaks,omitempty"`
}

// BreakItem перерыв внутри рабочего дня
type BreakItem struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Response модели

// ScheduleResponse недельное расписание барбера с исключениями
type ScheduleResponse struct {
	BarberID     int64             `json:"barberId"`
	WorkingHours []WorkingHourItem `json:"workingHours"`
	Exceptions   []ExceptionItem   `json:"exceptions"`
}

// ExceptionItem одно исключение расписания
type ExceptionItem struct {
	Date      string  `json:"date"` // "2025-10-15"
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Type      string  `json:"type"`
}

// Методы конвертации

// ToDomainWorkingHours конвертирует запрос в domain модели
func (r *ReplaceWorkingHoursRequest) ToDomainWorkingHours() []*domain.WorkingHour {
	hours := make([]*domain.WorkingHour, 0, len(r.WorkingHours))

	for _, item := range r.WorkingHours {
		wh := &domain.WorkingHour{
			BarberID:  r.BarberID,
			Weekday:   item.Weekday,
			StartTime: types.TimeString(item.StartTime),
			EndTime:   types.TimeString(item.EndTime),
			Breaks:    make([]domain.Break, 0, len(item.Breaks)),
		}
		for _, br := range item.Breaks {
			wh.Breaks = append(wh.Breaks, domain.Break{
				StartTime: types.TimeString(br.StartTime),
				EndTime:   types.TimeString(br.EndTime),
			})
		}
		hours = append(hours, wh)
	}

	return hours
}

// FromDomainSchedule конвертирует domain модели в DTO расписания
func FromDomainSchedule(barberID int64, hours []*domain.WorkingHour, exceptions []*domain.ScheduleException) *ScheduleResponse {
	resp := &ScheduleResponse{
		BarberID:     barberID,
		WorkingHours: make([]WorkingHourItem, 0, len(hours)),
		Exceptions:   make([]ExceptionItem, 0, len(exceptions)),
	}

	for _, wh := range hours {
		item := WorkingHourItem{
			Weekday:   wh.Weekday,
			StartTime: wh.StartTime.String(),
			EndTime:   wh.EndTime.String(),
			Breaks:    make([]BreakItem, 0, len(wh.Breaks)),
		}
		for _, br := range wh.Breaks {
			item.Breaks = append(item.Breaks, BreakItem{
				StartTime: br.StartTime.String(),
				EndTime:   br.EndTime.String(),
			})
		}
		resp.WorkingHours = append(resp.WorkingHours, item)
	}

	for _, exc := range exceptions {
		item := ExceptionItem{
			Date: exc.Date.Format(domain.DateFormat),
			Type: string(exc.Type),
		}
		if exc.StartTime != nil {
			start := exc.StartTime.String()
			item.StartTime = &start
		}
		if exc.EndTime != nil {
			end := exc.EndTime.String()
			item.EndTime = &end
		}
		resp.Exceptions = append(resp.Exceptions, item)
	}

	return resp
}
