package create_hold

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_hold: service not found")

	// ErrOptionNotFound возвращается, когда опция услуги не найдена
	ErrOptionNotFound = errors.New("create_hold: service option not found")

	// ErrServiceNotOffered возвращается, когда барбер не оказывает услугу
	ErrServiceNotOffered = errors.New("create_hold: barber does not offer this service")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("create_hold: invalid date")

	// ErrBarberClosed возвращается, когда барбер не работает в указанную дату
	ErrBarberClosed = errors.New("create_hold: barber is not working on this date")

	// ErrSlotNotAvailable возвращается, когда слот занят или уже захвачен
	ErrSlotNotAvailable = errors.New("create_hold: slot is not available")

	// ErrInvalidTimeSlot возвращается при некорректном времени слота
	ErrInvalidTimeSlot = errors.New("create_hold: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_hold: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_hold: internal error")
)
