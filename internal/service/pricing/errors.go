package pricing

import "errors"

var (
	// ErrTariffNotConfigured возвращается, когда для категории комнаты нет тарифа.
	// Ошибка конфигурации, а не пользовательского ввода: цена никогда
	// не подставляется по умолчанию.
	ErrTariffNotConfigured = errors.New("pricing: no tariff configured for room type")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing: internal error")
)
