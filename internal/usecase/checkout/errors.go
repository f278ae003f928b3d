package checkout

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("checkout: room not found")

	// ErrInvalidInterval возвращается при нарушении временных правил
	ErrInvalidInterval = errors.New("checkout: invalid booking interval")

	// ErrRoomUnavailable возвращается при пересечении с существующей бронью
	ErrRoomUnavailable = errors.New("checkout: room is not available for this interval")

	// ErrInvalidSubscription возвращается, когда подписка не принадлежит
	// пользователю или не активна
	ErrInvalidSubscription = errors.New("checkout: subscription is not valid for this booking")

	// ErrTariffNotConfigured возвращается при отсутствии тарифа для категории
	ErrTariffNotConfigured = errors.New("checkout: no tariff configured for room category")

	// ErrHandoffNotFound возвращается, когда платёжная заявка не найдена
	ErrHandoffNotFound = errors.New("checkout: pending payment not found")

	// ErrPaymentRejected возвращается, когда шлюз отклонил создание сессии
	ErrPaymentRejected = errors.New("checkout: payment session rejected by gateway")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("checkout: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("checkout: internal error")
)
