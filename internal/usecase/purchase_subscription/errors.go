package purchase_subscription

import "errors"

var (
	// ErrPlanNotFound возвращается, когда тарифный план подписки не найден
	ErrPlanNotFound = errors.New("purchase_subscription: subscription plan not found")

	// ErrStartDateInPast возвращается при попытке оформить подписку задним числом
	ErrStartDateInPast = errors.New("purchase_subscription: start date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("purchase_subscription: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("purchase_subscription: internal error")
)
