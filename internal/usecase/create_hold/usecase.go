package create_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	catalogRepo "github.com/barbersched/BarberSched-BookingService/internal/infra/storage/catalog"
	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// UseCase use case создания временной блокировки слота (hold).
// Hold — мягкий замок на время оформления: пока он жив, слот невидим
// для других клиентов в расчете доступности и в create_booking.
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	holdRepo     HoldRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	ttl          time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. ttlMinutes задает время
// жизни hold-а; неположительное значение заменяется дефолтом.
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	holdRepo HoldRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	ttlMinutes int,
	logger Logger,
) *UseCase {
	if ttlMinutes <= 0 {
		ttlMinutes = domain.DefaultHoldTTLMinutes
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		holdRepo:     holdRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		ttl:          time.Duration(ttlMinutes) * time.Minute,
		logger:       logger,
	}
}

// Execute выполняет захват слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: barber=%d, service=%d, date=%s, time=%s",
		req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateHold: date validation failed: %v", err)
		return nil, err
	}
	if isSameDay(req.Date, now) && !req.StartTime.IsAfter(types.NewTimeString(now)) {
		uc.logger.Warn("CreateHold: slot %s already started", req.StartTime)
		return nil, ErrInvalidTimeSlot
	}

	// 3. Услуга и связка барбер-услуга
	if _, err := uc.catalogRepo.GetService(ctx, req.ServiceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateHold: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateHold: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	link, err := uc.catalogRepo.GetBarberService(ctx, req.BarberID, req.ServiceID)
	if err != nil && !errors.Is(err, catalogRepo.ErrLinkNotFound) {
		uc.logger.Error("CreateHold: failed to get barber-service link: %v", err)
		return nil, fmt.Errorf("%w: failed to get barber-service link: %v", ErrInternal, err)
	}
	if link == nil || !link.Active {
		uc.logger.Warn("CreateHold: barber=%d does not offer service=%d", req.BarberID, req.ServiceID)
		return nil, ErrServiceNotOffered
	}

	// 4. Длительность занимаемого окна из опции
	duration := domain.DefaultOptionDurationMinutes
	if req.OptionID != nil {
		option, err := uc.catalogRepo.GetOption(ctx, req.ServiceID, *req.OptionID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrOptionNotFound) {
				uc.logger.Warn("CreateHold: option id=%d not found for service id=%d",
					*req.OptionID, req.ServiceID)
				return nil, ErrOptionNotFound
			}
			uc.logger.Error("CreateHold: failed to get option id=%d: %v", *req.OptionID, err)
			return nil, fmt.Errorf("%w: failed to get option: %v", ErrInternal, err)
		}
		duration = option.DurationMinutes
	}

	endTime, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		uc.logger.Warn("CreateHold: occupied window leaves the day: %v", err)
		return nil, ErrInvalidTimeSlot
	}

	var result *domain.Hold

	// 5. Проверка занятости и вставка hold-а — в сериализуемой транзакции,
	// симметрично create_booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		hours, err := uc.scheduleRepo.ListWorkingHours(txCtx, req.BarberID)
		if err != nil {
			uc.logger.Error("CreateHold: failed to get working hours: %v", err)
			return fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
		}

		var wh *domain.WorkingHour
		for _, h := range hours {
			if h.Weekday == int(req.Date.Weekday()) {
				wh = h
				break
			}
		}
		if wh == nil {
			return ErrBarberClosed
		}

		if err := validateSlotFitsSchedule(req.StartTime, endTime, wh); err != nil {
			return err
		}

		exceptions, err := uc.scheduleRepo.ListExceptions(txCtx, req.BarberID, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("CreateHold: failed to get schedule exceptions: %v", err)
			return fmt.Errorf("%w: failed to get schedule exceptions: %v", ErrInternal, err)
		}
		if err := validateAgainstExceptions(req.StartTime, endTime, exceptions); err != nil {
			return err
		}

		bookings, err := uc.bookingRepo.ListForBarberRange(txCtx, domain.BarberBookingsFilter{
			BarberID:  req.BarberID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateHold: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		for _, b := range bookings {
			if !b.OccupiesSlot() {
				continue
			}
			bookingEnd, err := b.StartTime.AddMinutes(b.DurationMinutes)
			if err != nil {
				continue
			}
			if intervalsOverlap(req.StartTime, endTime, b.StartTime, bookingEnd) {
				return ErrSlotNotAvailable
			}
		}

		holds, err := uc.holdRepo.ListActive(txCtx, req.BarberID, req.Date, req.Date, now)
		if err != nil {
			uc.logger.Error("CreateHold: failed to get holds: %v", err)
			return fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
		}
		for _, h := range holds {
			if intervalsOverlap(req.StartTime, endTime, h.StartTime, h.EndTime) {
				return ErrSlotNotAvailable
			}
		}

		hold := &domain.Hold{
			Token:     uuid.NewString(),
			BarberID:  req.BarberID,
			HoldDate:  req.Date,
			StartTime: req.StartTime,
			EndTime:   endTime,
			ExpiresAt: now.Add(uc.ttl),
		}

		created, err := uc.holdRepo.Create(txCtx, hold)
		if err != nil {
			uc.logger.Error("CreateHold: failed to create hold: %v", err)
			return fmt.Errorf("%w: failed to create hold: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateHold: created hold id=%d, token=%s, expires=%s",
		result.ID, result.Token, result.ExpiresAt.Format(time.RFC3339))

	return &Response{
		Token:     result.Token,
		BarberID:  result.BarberID,
		HoldDate:  result.HoldDate,
		StartTime: result.StartTime,
		EndTime:   result.EndTime,
		ExpiresAt: result.ExpiresAt,
	}, nil
}
