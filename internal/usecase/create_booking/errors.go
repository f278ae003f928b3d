package create_booking

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrInvalidInterval возвращается при нарушении временных правил:
	// старт в прошлом, конец не позже начала или превышена максимальная длительность
	ErrInvalidInterval = errors.New("create_booking: invalid booking interval")

	// ErrRoomUnavailable возвращается, когда интервал пересекается с существующей
	// бронью, включая проигрыш гонки на коммите
	ErrRoomUnavailable = errors.New("create_booking: room is not available for this interval")

	// ErrInvalidSubscription возвращается, когда подписка не принадлежит
	// пользователю или не активна на момент проверки
	ErrInvalidSubscription = errors.New("create_booking: subscription is not valid for this booking")

	// ErrTariffNotConfigured возвращается при отсутствии тарифа для категории.
	// Операторская ошибка конфигурации, а не пользовательского ввода.
	ErrTariffNotConfigured = errors.New("create_booking: no tariff configured for room category")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
