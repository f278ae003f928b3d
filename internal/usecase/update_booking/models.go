package update_booking

import (
	"time"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

// Request модель запроса на изменение бронирования
type Request struct {
	BookingID      int64
	UserID         int64 // Инициатор; менять можно только свою бронь
	StartTime      time.Time
	EndTime        time.Time
	SubscriptionID *int64
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID             int64
	UserID         int64
	RoomID         int64
	StartTime      time.Time
	EndTime        time.Time
	SubscriptionID *int64
	Price          float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FromDomainBooking конвертирует доменную бронь в response
func FromDomainBooking(b *domain.Booking) *Response {
	return &Response{
		ID:             b.ID,
		UserID:         b.UserID,
		RoomID:         b.RoomID,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		SubscriptionID: b.SubscriptionID,
		Price:          b.Price,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
