package checkout

import (
	"time"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

// Request модель запроса на checkout.
// SubscriptionID опционален: при nil активная подписка пользователя
// привязывается автоматически, если она есть.
type Request struct {
	UserID         int64
	RoomID         int64
	StartTime      time.Time
	EndTime        time.Time
	SubscriptionID *int64
}

// Response модель ответа на checkout.
// Ровно одно из двух: либо бронь создана сразу (нулевая стоимость),
// либо выдана платёжная сессия и бронь ждёт подтверждения.
type Response struct {
	Booking *BookingInfo `json:"booking,omitempty"`
	Payment *PaymentInfo `json:"payment,omitempty"`
}

// BookingInfo подтверждённая бронь
type BookingInfo struct {
	ID             int64
	UserID         int64
	RoomID         int64
	StartTime      time.Time
	EndTime        time.Time
	SubscriptionID *int64
	Price          float64
}

// PaymentInfo платёжная сессия, на которую нужно перенаправить пользователя
type PaymentInfo struct {
	HandoffID   string
	SessionID   string
	RedirectURL string
	Amount      float64
}

func fromDomainBooking(b *domain.Booking) *BookingInfo {
	return &BookingInfo{
		ID:             b.ID,
		UserID:         b.UserID,
		RoomID:         b.RoomID,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		SubscriptionID: b.SubscriptionID,
		Price:          b.Price,
	}
}
