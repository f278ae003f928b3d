package subscription

import "errors"

var (
	// ErrPlanNotFound возвращается, когда тарифный план подписки не найден
	ErrPlanNotFound = errors.New("subscription.repository: plan not found")

	// ErrSubscriptionNotFound возвращается, когда запись о подписке не найдена
	ErrSubscriptionNotFound = errors.New("subscription.repository: subscription not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("subscription.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("subscription.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("subscription.repository: failed to scan row")
)
