package create_hold

import (
	"time"

	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// Request модель запроса на создание hold-а
type Request struct {
	BarberID  int64            // ID барбера
	ServiceID int64            // ID услуги
	OptionID  *int64           // ID опции услуги (опционально)
	Date      time.Time        // Дата слота (без времени)
	StartTime types.TimeString // Время начала слота
}

// Response модель ответа с созданным hold-ом
type Response struct {
	Token     string           // Токен для подтверждения бронирования
	BarberID  int64            // ID барбера
	HoldDate  time.Time        // Дата захваченного слота
	StartTime types.TimeString // Начало захваченного окна
	EndTime   types.TimeString // Конец захваченного окна
	ExpiresAt time.Time        // Момент истечения hold-а
}
