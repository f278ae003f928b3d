package paymentgateway

import "errors"

var (
	// ErrSessionRejected возвращается, когда шлюз отказал в создании сессии
	ErrSessionRejected = errors.New("paymentgateway client: session rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("paymentgateway client: invalid response")
)
