package compute_availability

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена.
	// Единственная жесткая ошибка доступности: транслируется в 404.
	ErrServiceNotFound = errors.New("compute_availability: service not found")

	// ErrOptionNotFound возвращается, когда опция услуги не найдена
	ErrOptionNotFound = errors.New("compute_availability: service option not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("compute_availability: invalid input data")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("compute_availability: invalid date range")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("compute_availability: internal error")
)
