package create_booking

import (
	"time"

	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID  int64            // ID клиента
	BarberID  int64            // ID барбера
	ServiceID int64            // ID услуги
	OptionID  *int64           // ID опции услуги (опционально)
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	HoldToken *string          // Токен hold-а, если слот был предварительно захвачен
	Notes     *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	ClientID        int64            // ID клиента
	BarberID        int64            // ID барбера
	ServiceID       int64            // ID услуги
	OptionID        *int64           // ID опции услуги
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	Price           float64          // Итоговая цена
	Notes           *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
