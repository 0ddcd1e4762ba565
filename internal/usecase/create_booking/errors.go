package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrOptionNotFound возвращается, когда опция услуги не найдена
	ErrOptionNotFound = errors.New("create_booking: service option not found")

	// ErrServiceNotOffered возвращается, когда барбер не оказывает услугу
	ErrServiceNotOffered = errors.New("create_booking: barber does not offer this service")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrBarberClosed возвращается, когда барбер не работает в указанную дату
	ErrBarberClosed = errors.New("create_booking: barber is not working on this date")

	// ErrSlotNotAvailable возвращается, когда выбранный слот занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время слота некорректно
	// (не попадает в сетку или выходит за рабочие часы)
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
