package create_booking

import (
	"time"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID         int64     // ID пользователя
	RoomID         int64     // ID комнаты
	StartTime      time.Time // Начало интервала
	EndTime        time.Time // Конец интервала (не включается, брони встык допустимы)
	SubscriptionID *int64    // Привязываемая подписка (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64
	UserID         int64
	RoomID         int64
	StartTime      time.Time
	EndTime        time.Time
	SubscriptionID *int64
	Price          float64 // Всегда вычислена сервисом

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
