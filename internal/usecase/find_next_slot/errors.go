package find_next_slot

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("find_next_slot: service not found")

	// ErrOptionNotFound возвращается, когда опция услуги не найдена
	ErrOptionNotFound = errors.New("find_next_slot: service option not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("find_next_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("find_next_slot: internal error")
)
