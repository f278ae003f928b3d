package handoff

import "errors"

var (
	// ErrHandoffNotFound возвращается, когда отложенная бронь не найдена
	ErrHandoffNotFound = errors.New("handoff.repository: payment handoff not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("handoff.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("handoff.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("handoff.repository: failed to scan row")
)
