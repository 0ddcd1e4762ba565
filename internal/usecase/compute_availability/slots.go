package compute_availability

import (
	"time"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// generateTimeSlots генерирует сетку кандидат-слотов фиксированной ширины
// на интервале [open, close). Хвостовой неполный слот отбрасывается
// целиком, не обрезается. При open >= close возвращается пустая сетка.
//
// Ширина сетки не зависит от выбранной опции услуги: длительность опции
// учитывается только при проверках занятости и выхода за конец смены.
func generateTimeSlots(open, close types.TimeString, stepMinutes int) ([]types.TimeString, error) {
	openMin, err := open.Minutes()
	if err != nil {
		return nil, err
	}
	closeMin, err := close.Minutes()
	if err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0)

	for cur := openMin; cur+stepMinutes <= closeMin; cur += stepMinutes {
		ts, err := types.NewTimeStringFromMinutes(cur)
		if err != nil {
			return nil, err
		}
		slots = append(slots, ts)
	}

	return slots, nil
}

// blockedWindow заблокированное окно внутри дня: перерыв или частичное
// исключение расписания
type blockedWindow struct {
	start types.TimeString
	end   types.TimeString
}

// dayContext все данные, нужные для оценки слотов одного дня
type dayContext struct {
	date    time.Time
	now     time.Time
	isToday bool
	nowTime types.TimeString // время "сейчас", значимо только при isToday

	closeTime types.TimeString // конец смены, граница для проверки выхода
	duration  int              // длительность выбранной опции (или дефолт)
	price     float64          // цена доступного слота

	windows  []blockedWindow // перерывы и частичные исключения
	bookings []*domain.Booking
	holds    []*domain.Hold
}

// evaluateSlot оценивает один кандидат-слот. Проверки применяются по
// порядку, первая сработавшая делает слот недоступным:
//  1. прошедшее время (только для сегодняшней даты);
//  2. выход занимаемого окна за конец смены;
//  3. пересечение с перерывом или частичным исключением;
//  4. пересечение с неотмененным бронированием;
//  5. пересечение с непротухшим hold-ом.
//
// Занимаемое окно слота считается по длительности выбранной опции,
// отображаемая граница слота — всегда ширина сетки.
func evaluateSlot(start types.TimeString, dc *dayContext) domain.Slot {
	displayEnd, err := start.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		// Сетка не пересекает полночь, сюда попадать не должны
		return domain.Slot{StartTime: start, EndTime: start, Available: false}
	}

	slot := domain.Slot{StartTime: start, EndTime: displayEnd, Available: false}

	// 1. Прошедшее время: слот, начинающийся не позже текущего момента
	if dc.isToday && !start.IsAfter(dc.nowTime) {
		return slot
	}

	// 2. Занимаемое окно не должно выходить за конец смены
	occupiedEnd, err := start.AddMinutes(dc.duration)
	if err != nil || occupiedEnd.IsAfter(dc.closeTime) {
		return slot
	}

	// 3. Перерывы и частичные исключения
	for _, w := range dc.windows {
		if intervalsOverlap(start, occupiedEnd, w.start, w.end) {
			return slot
		}
	}

	// 4. Бронирования: занимаемый интервал каждого считается по
	// длительности его собственной опции
	for _, b := range dc.bookings {
		if !b.OccupiesSlot() {
			continue
		}
		bookingEnd, err := b.StartTime.AddMinutes(b.DurationMinutes)
		if err != nil {
			// Некорректное время в данных — бронирование пропускаем
			continue
		}
		if intervalsOverlap(start, occupiedEnd, b.StartTime, bookingEnd) {
			return slot
		}
	}

	// 5. Holds. Репозиторий отдает только живые, но истечение
	// перепроверяется против того же "сейчас", что и весь расчет.
	for _, h := range dc.holds {
		if h.IsExpired(dc.now) {
			continue
		}
		if intervalsOverlap(start, occupiedEnd, h.StartTime, h.EndTime) {
			return slot
		}
	}

	slot.Available = true
	slot.Price = dc.price
	return slot
}

// intervalsOverlap проверяет пересечение полуоткрытых интервалов
// [aStart, aEnd) и [bStart, bEnd). Строгие неравенства: граничащие
// интервалы (конец одного равен началу другого) не пересекаются.
func intervalsOverlap(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dateKey ключ календарного дня для группировки записей по датам.
// Сравнение только по ключу дня гарантирует, что бронирование перед
// полуночью не блокирует слоты следующего дня.
func dateKey(t time.Time) string {
	return t.Format(domain.DateFormat)
}
