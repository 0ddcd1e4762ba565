package find_next_slot

import (
	"time"

	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// Request модель запроса поиска ближайшего доступного слота
type Request struct {
	BarberID  int64     // ID барбера
	ServiceID int64     // ID услуги
	OptionID  *int64    // ID опции услуги (опционально)
	FromDate  time.Time // Начало поиска; нулевое значение — с сегодняшнего дня
}

// Response результат поиска. Found=false означает, что в пределах
// горизонта поиска ни одного доступного слота нет — это не ошибка.
type Response struct {
	Found     bool
	Date      time.Time        // Дата найденного слота (без времени)
	StartTime types.TimeString // Начало найденного слота
	EndTime   types.TimeString // Конец найденного слота
	Price     float64          // Цена найденного слота
}
