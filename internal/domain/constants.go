package domain

import "time"

// MaxBookingDuration максимальная длительность одной брони
// Интервал ровно в 12 часов допустим, первая секунда сверх лимита - нет
const MaxBookingDuration = 12 * time.Hour

// Date and time formats used by the API layer
const (
	DateFormat = "2006-01-02"
)
