package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrOptionNotFound возвращается, когда опция услуги не найдена
	ErrOptionNotFound = errors.New("catalog.repository: service option not found")

	// ErrLinkNotFound возвращается, когда барбер не связан с услугой
	ErrLinkNotFound = errors.New("catalog.repository: barber-service link not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
