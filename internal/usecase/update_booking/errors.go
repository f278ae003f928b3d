package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrAccessDenied возвращается при попытке изменить чужую бронь
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrInvalidInterval возвращается при нарушении временных правил
	ErrInvalidInterval = errors.New("update_booking: invalid booking interval")

	// ErrRoomUnavailable возвращается при пересечении с другой бронью
	ErrRoomUnavailable = errors.New("update_booking: room is not available for this interval")

	// ErrInvalidSubscription возвращается, когда подписка не принадлежит
	// пользователю или не активна
	ErrInvalidSubscription = errors.New("update_booking: subscription is not valid for this booking")

	// ErrTariffNotConfigured возвращается при отсутствии тарифа для категории
	ErrTariffNotConfigured = errors.New("update_booking: no tariff configured for room category")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
