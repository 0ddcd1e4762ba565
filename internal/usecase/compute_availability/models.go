package compute_availability

import (
	"time"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
)

// Request модель запроса расчета доступности
type Request struct {
	BarberID  int64     // ID барбера
	ServiceID int64     // ID услуги
	OptionID  *int64    // ID опции услуги (опционально)
	FromDate  time.Time // Начало диапазона (включительно, без времени)
	ToDate    time.Time // Конец диапазона (включительно, без времени)
}

// Response модель ответа: отчет по дням в порядке возрастания дат.
// Дни и слоты — доменные модели, отдельного DTO-слоя здесь нет.
type Response struct {
	BarberID  int64
	ServiceID int64
	OptionID  *int64
	Days      []domain.DayAvailability
}
