package mq

import "time"

// Имена очередей нотификаций
const (
	QueueBookingConfirmed    = "booking.confirmed"
	QueueSubscriptionExpired = "subscription.expired"
)

// BookingConfirmedEvent отправляется после коммита брони
type BookingConfirmedEvent struct {
	BookingID int64     `json:"booking_id"`
	UserID    int64     `json:"user_id"`
	RoomID    int64     `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Price     float64   `json:"price"`
}

// SubscriptionExpiredEvent отправляется ежедневной проверкой истёкших подписок
type SubscriptionExpiredEvent struct {
	SubscriptionID int64     `json:"subscription_id"`
	UserID         int64     `json:"user_id"`
	PlanID         int64     `json:"plan_id"`
	EndDate        time.Time `json:"end_date"`
}
