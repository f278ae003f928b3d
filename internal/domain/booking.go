package domain

import "time"

// Booking represents a committed room reservation
// Цена всегда вычисляется сервисом, клиентское значение игнорируется
type Booking struct {
	ID             int64
	UserID         int64
	RoomID         int64
	StartTime      time.Time
	EndTime        time.Time
	SubscriptionID *int64 // привязанная подписка, nil для тарифных броней
	Price          float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the length of the booked interval
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// Overlaps reports whether the booking's half-open interval [StartTime, EndTime)
// intersects the candidate half-open interval [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return IntervalsOverlap(b.StartTime, b.EndTime, start, end)
}

// IntervalsOverlap is the half-open interval conflict test.
// Два интервала пересекаются тогда и только тогда, когда a.start < b.end && b.start < a.end.
// Брони встык (конец одной равен началу другой) пересечением не считаются.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
