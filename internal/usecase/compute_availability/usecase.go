package compute_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	catalogRepo "github.com/barbersched/BarberSched-BookingService/internal/infra/storage/catalog"
	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// UseCase use case расчета доступности барбера по диапазону дат
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	holdRepo     HoldRepository
	catalogRepo  CatalogRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	holdRepo HoldRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		holdRepo:     holdRepo,
		catalogRepo:  catalogRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет расчет доступности.
//
// Чтение выполняется один раз на весь диапазон (рабочие часы,
// исключения, бронирования с длительностями опций, holds), дальше
// расчет идет в памяти день за днем. Результат — snapshot на момент
// чтения: никаких блокировок и резервирования здесь нет, защита от
// двойного бронирования живет на пути записи (create_booking).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ComputeAvailability: barber=%d, service=%d, from=%s, to=%s",
		req.BarberID, req.ServiceID, req.FromDate.Format(domain.DateFormat), req.ToDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ComputeAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Единое "сейчас" на весь расчет: и для проверки прошедших
	// слотов, и для истечения holds
	now := uc.timeProvider.Now()

	// 3. Услуга должна существовать — иначе жесткая ошибка
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("ComputeAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ComputeAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Неактивная связка барбер-услуга — легитимный пустой результат,
	// не ошибка
	link, err := uc.catalogRepo.GetBarberService(ctx, req.BarberID, req.ServiceID)
	if err != nil && !errors.Is(err, catalogRepo.ErrLinkNotFound) {
		uc.logger.Error("ComputeAvailability: failed to get barber-service link: %v", err)
		return nil, fmt.Errorf("%w: failed to get barber-service link: %v", ErrInternal, err)
	}
	if link == nil || !link.Active {
		uc.logger.Info("ComputeAvailability: barber=%d does not offer service=%d, returning empty report",
			req.BarberID, req.ServiceID)
		return uc.emptyResponse(req), nil
	}

	// 5. Опция услуги: задает длительность занимаемого окна и цену.
	// Без опции — дефолтная длительность и нулевая цена (ценой владеют
	// данные опций, здесь она не вычисляется).
	duration := domain.DefaultOptionDurationMinutes
	price := 0.0
	if req.OptionID != nil {
		option, err := uc.catalogRepo.GetOption(ctx, req.ServiceID, *req.OptionID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrOptionNotFound) {
				uc.logger.Warn("ComputeAvailability: option id=%d not found for service id=%d",
					*req.OptionID, req.ServiceID)
				return nil, ErrOptionNotFound
			}
			uc.logger.Error("ComputeAvailability: failed to get option id=%d: %v", *req.OptionID, err)
			return nil, fmt.Errorf("%w: failed to get option: %v", ErrInternal, err)
		}
		duration = option.DurationMinutes
		price = link.EffectiveBasePrice(service) + option.PriceAdjustment
	}

	// 6. Читаем все данные диапазона одним заходом
	snapshot, err := uc.fetchSnapshot(ctx, req, now)
	if err != nil {
		return nil, err
	}

	// 7. Собираем отчет день за днем
	days := make([]domain.DayAvailability, 0)
	from := dateOnly(req.FromDate)
	to := dateOnly(req.ToDate)

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, uc.buildDay(d, now, duration, price, snapshot))
	}

	uc.logger.Info("ComputeAvailability: built report for barber=%d, service=%d, days=%d",
		req.BarberID, req.ServiceID, len(days))

	return &Response{
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		OptionID:  req.OptionID,
		Days:      days,
	}, nil
}

// rangeSnapshot данные диапазона, прочитанные один раз на весь расчет
type rangeSnapshot struct {
	hoursByWeekday  map[int]*domain.WorkingHour
	exceptionsByDay map[string][]*domain.ScheduleException
	bookingsByDay   map[string][]*domain.Booking
	holdsByDay      map[string][]*domain.Hold
}

// fetchSnapshot выполняет все чтения диапазона и группирует записи по
// календарным дням
func (uc *UseCase) fetchSnapshot(ctx context.Context, req *Request, now time.Time) (*rangeSnapshot, error) {
	from := dateOnly(req.FromDate)
	to := dateOnly(req.ToDate)

	hours, err := uc.scheduleRepo.ListWorkingHours(ctx, req.BarberID)
	if err != nil {
		uc.logger.Error("ComputeAvailability: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	exceptions, err := uc.scheduleRepo.ListExceptions(ctx, req.BarberID, from, to)
	if err != nil {
		uc.logger.Error("ComputeAvailability: failed to get schedule exceptions: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule exceptions: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.ListForBarberRange(ctx, domain.BarberBookingsFilter{
		BarberID:  req.BarberID,
		StartDate: &from,
		EndDate:   &to,
	})
	if err != nil {
		uc.logger.Error("ComputeAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	holds, err := uc.holdRepo.ListActive(ctx, req.BarberID, from, to, now)
	if err != nil {
		uc.logger.Error("ComputeAvailability: failed to get holds: %v", err)
		return nil, fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
	}

	snapshot := &rangeSnapshot{
		hoursByWeekday:  make(map[int]*domain.WorkingHour, len(hours)),
		exceptionsByDay: make(map[string][]*domain.ScheduleException, len(exceptions)),
		bookingsByDay:   make(map[string][]*domain.Booking, len(bookings)),
		holdsByDay:      make(map[string][]*domain.Hold, len(holds)),
	}

	for _, wh := range hours {
		snapshot.hoursByWeekday[wh.Weekday] = wh
	}
	for _, exc := range exceptions {
		key := dateKey(exc.Date)
		snapshot.exceptionsByDay[key] = append(snapshot.exceptionsByDay[key], exc)
	}
	for _, b := range bookings {
		key := dateKey(b.BookingDate)
		snapshot.bookingsByDay[key] = append(snapshot.bookingsByDay[key], b)
	}
	for _, h := range holds {
		key := dateKey(h.HoldDate)
		snapshot.holdsByDay[key] = append(snapshot.holdsByDay[key], h)
	}

	return snapshot, nil
}

// buildDay собирает DayAvailability одного календарного дня
func (uc *UseCase) buildDay(date time.Time, now time.Time, duration int, price float64, snapshot *rangeSnapshot) domain.DayAvailability {
	key := dateKey(date)
	emptyDay := domain.DayAvailability{Date: date, Available: false, Slots: []domain.Slot{}}

	// Прошедшая календарная дата: забронировать на ней уже ничего
	// нельзя, день отдается пустым
	if date.Before(dateOnly(now)) {
		return emptyDay
	}

	// Полностью заблокированный день: исключение без времени начала
	// перекрывает любые рабочие часы
	dayExceptions := snapshot.exceptionsByDay[key]
	for _, exc := range dayExceptions {
		if exc.BlocksWholeDay() {
			return emptyDay
		}
	}

	// Нет записи рабочих часов на этот день недели — барбер не работает
	wh, ok := snapshot.hoursByWeekday[int(date.Weekday())]
	if !ok {
		return emptyDay
	}

	candidates, err := generateTimeSlots(wh.StartTime, wh.EndTime, domain.SlotDurationMinutes)
	if err != nil {
		uc.logger.Warn("ComputeAvailability: bad working hours for weekday %d: %v", wh.Weekday, err)
		return emptyDay
	}

	dc := &dayContext{
		date:      date,
		now:       now,
		isToday:   isSameDay(date, now),
		nowTime:   types.NewTimeString(now),
		closeTime: wh.EndTime,
		duration:  duration,
		price:     price,
		windows:   collectBlockedWindows(wh, dayExceptions),
		bookings:  snapshot.bookingsByDay[key],
		holds:     snapshot.holdsByDay[key],
	}

	slots := make([]domain.Slot, 0, len(candidates))
	for _, start := range candidates {
		slots = append(slots, evaluateSlot(start, dc))
	}

	day := domain.DayAvailability{Date: date, Slots: slots}
	day.Available = day.HasAvailableSlot()
	return day
}

// collectBlockedWindows собирает заблокированные окна дня: недельные
// перерывы плюс частичные blocked-исключения этой даты
func collectBlockedWindows(wh *domain.WorkingHour, exceptions []*domain.ScheduleException) []blockedWindow {
	windows := make([]blockedWindow, 0, len(wh.Breaks)+len(exceptions))

	for _, br := range wh.Breaks {
		windows = append(windows, blockedWindow{start: br.StartTime, end: br.EndTime})
	}

	for _, exc := range exceptions {
		if exc.Type != domain.ExceptionBlocked || exc.IsFullDay() {
			continue
		}
		window := blockedWindow{start: *exc.StartTime}
		if exc.EndTime != nil {
			window.end = *exc.EndTime
		} else {
			// Частичное исключение без конца действует до конца дня
			window.end = types.TimeString("23:59")
		}
		windows = append(windows, window)
	}

	return windows
}

// emptyResponse строит отчет "ничего не доступно" на весь диапазон
func (uc *UseCase) emptyResponse(req *Request) *Response {
	days := make([]domain.DayAvailability, 0)
	from := dateOnly(req.FromDate)
	to := dateOnly(req.ToDate)

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, domain.DayAvailability{Date: d, Available: false, Slots: []domain.Slot{}})
	}

	return &Response{
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		OptionID:  req.OptionID,
		Days:      days,
	}
}
