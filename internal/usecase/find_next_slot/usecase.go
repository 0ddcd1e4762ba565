package find_next_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	"github.com/barbersched/BarberSched-BookingService/internal/usecase/compute_availability"
)

// searchChunkDays размер окна одного запроса к расчету доступности.
// Поиск идет окнами, чтобы не считать весь горизонт, когда слот
// находится в первые же дни.
const searchChunkDays = 7

// UseCase use case поиска ближайшего доступного слота
type UseCase struct {
	availability AvailabilityComputer
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityComputer, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute ищет ближайший доступный слот, двигаясь окнами по датам от
// начала поиска до горизонта включительно. Возвращается первый
// доступный слот первого дня, где он есть; отсутствие результата в
// пределах горизонта — легитимный ответ Found=false.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindNextSlot: validation failed: %v", err)
		return nil, err
	}

	start := req.FromDate
	if start.IsZero() {
		start = uc.timeProvider.Now()
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	horizon := start.AddDate(0, 0, domain.NextSlotSearchHorizonDays)

	uc.logger.Info("FindNextSlot: barber=%d, service=%d, from=%s, horizon=%s",
		req.BarberID, req.ServiceID, start.Format(domain.DateFormat), horizon.Format(domain.DateFormat))

	for from := start; !from.After(horizon); from = from.AddDate(0, 0, searchChunkDays) {
		to := from.AddDate(0, 0, searchChunkDays-1)
		if to.After(horizon) {
			to = horizon
		}

		report, err := uc.availability.Execute(ctx, &compute_availability.Request{
			BarberID:  req.BarberID,
			ServiceID: req.ServiceID,
			OptionID:  req.OptionID,
			FromDate:  from,
			ToDate:    to,
		})
		if err != nil {
			if errors.Is(err, compute_availability.ErrServiceNotFound) {
				return nil, ErrServiceNotFound
			}
			if errors.Is(err, compute_availability.ErrOptionNotFound) {
				return nil, ErrOptionNotFound
			}
			uc.logger.Error("FindNextSlot: availability computation failed: %v", err)
			return nil, fmt.Errorf("%w: availability computation failed: %v", ErrInternal, err)
		}

		for _, day := range report.Days {
			if !day.Available {
				continue
			}
			for _, slot := range day.Slots {
				if !slot.Available {
					continue
				}
				uc.logger.Info("FindNextSlot: found slot %s %s for barber=%d",
					day.Date.Format(domain.DateFormat), slot.StartTime, req.BarberID)
				return &Response{
					Found:     true,
					Date:      day.Date,
					StartTime: slot.StartTime,
					EndTime:   slot.EndTime,
					Price:     slot.Price,
				}, nil
			}
		}
	}

	uc.logger.Info("FindNextSlot: no available slot within %d days for barber=%d, service=%d",
		domain.NextSlotSearchHorizonDays, req.BarberID, req.ServiceID)

	return &Response{Found: false}, nil
}
