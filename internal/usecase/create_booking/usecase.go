package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	catalogRepo "github.com/barbersched/BarberSched-BookingService/internal/infra/storage/catalog"
	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	holdRepo     HoldRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	holdRepo HoldRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		holdRepo:     holdRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости и вставка идут в сериализуемой транзакции с
// блокировкой строк бронирований этой даты (FOR UPDATE), чтобы два
// конкурентных запроса на один слот не прошли оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, barber=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Услуга должна существовать
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Барбер должен оказывать эту услугу
	link, err := uc.catalogRepo.GetBarberService(ctx, req.BarberID, req.ServiceID)
	if err != nil && !errors.Is(err, catalogRepo.ErrLinkNotFound) {
		uc.logger.Error("CreateBooking: failed to get barber-service link: %v", err)
		return nil, fmt.Errorf("%w: failed to get barber-service link: %v", ErrInternal, err)
	}
	if link == nil || !link.Active {
		uc.logger.Warn("CreateBooking: barber=%d does not offer service=%d", req.BarberID, req.ServiceID)
		return nil, ErrServiceNotOffered
	}

	// 5. Опция задает длительность занимаемого окна и цену
	duration := domain.DefaultOptionDurationMinutes
	price := 0.0
	if req.OptionID != nil {
		option, err := uc.catalogRepo.GetOption(ctx, req.ServiceID, *req.OptionID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrOptionNotFound) {
				uc.logger.Warn("CreateBooking: option id=%d not found for service id=%d",
					*req.OptionID, req.ServiceID)
				return nil, ErrOptionNotFound
			}
			uc.logger.Error("CreateBooking: failed to get option id=%d: %v", *req.OptionID, err)
			return nil, fmt.Errorf("%w: failed to get option: %v", ErrInternal, err)
		}
		duration = option.DurationMinutes
		price = link.EffectiveBasePrice(service) + option.PriceAdjustment
	}

	// 6. Дата не должна быть в прошлом, сегодняшний слот не должен
	// начинаться раньше текущего момента
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if isSameDay(req.Date, now) && !req.StartTime.IsAfter(types.NewTimeString(now)) {
		uc.logger.Warn("CreateBooking: slot %s already started", req.StartTime)
		return nil, ErrInvalidTimeSlot
	}

	var result *domain.Booking

	// 7. Проверка расписания и занятости плюс вставка — в сериализуемой
	// транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Рабочие часы на день недели
		hours, err := uc.scheduleRepo.ListWorkingHours(txCtx, req.BarberID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get working hours: %v", err)
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
			uc.logger.Warn("CreateBooking: barber=%d is closed on %s",
				req.BarberID, req.Date.Format(domain.DateFormat))
			return ErrBarberClosed
		}

		// 7.2. Слот должен попадать в сетку и вместе с занимаемым окном
		// укладываться в смену
		if err := validateSlotFitsSchedule(req.StartTime, duration, wh); err != nil {
			uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
			return err
		}

		// 7.3. Исключения расписания этой даты
		exceptions, err := uc.scheduleRepo.ListExceptions(txCtx, req.BarberID, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get schedule exceptions: %v", err)
			return fmt.Errorf("%w: failed to get schedule exceptions: %v", ErrInternal, err)
		}
		if err := validateAgainstExceptions(req.StartTime, duration, exceptions); err != nil {
			uc.logger.Warn("CreateBooking: exception conflict on %s", req.Date.Format(domain.DateFormat))
			return err
		}

		// 7.4. Бронирования этой даты читаем с блокировкой (FOR UPDATE),
		// чтобы конкурентная транзакция дождалась нашей вставки
		bookings, err := uc.bookingRepo.ListForBarberRange(txCtx, domain.BarberBookingsFilter{
			BarberID:  req.BarberID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if err := checkBookingConflicts(req.StartTime, duration, bookings); err != nil {
			uc.logger.Warn("CreateBooking: slot %s %s already taken",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return err
		}

		// 7.5. Holds: чужой активный hold блокирует слот, свой (по
		// токену из запроса) — нет
		holds, err := uc.holdRepo.ListActive(txCtx, req.BarberID, req.Date, req.Date, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get holds: %v", err)
			return fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
		}
		if err := checkHoldConflicts(req.StartTime, duration, holds, req.HoldToken); err != nil {
			uc.logger.Warn("CreateBooking: slot %s %s is held",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return err
		}

		// 7.6. Создаем бронирование
		booking := &domain.Booking{
			ClientID:        req.ClientID,
			BarberID:        req.BarberID,
			ServiceID:       req.ServiceID,
			OptionID:        req.OptionID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			Status:          domain.StatusScheduled,
			Price:           price,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 7.7. Использованный hold больше не нужен
		if req.HoldToken != nil {
			if err := uc.holdRepo.DeleteByToken(txCtx, *req.HoldToken); err != nil {
				uc.logger.Error("CreateBooking: failed to release hold: %v", err)
				return fmt.Errorf("%w: failed to release hold: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		BarberID:        result.BarberID,
		ServiceID:       result.ServiceID,
		OptionID:        result.OptionID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Price:           result.Price,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
