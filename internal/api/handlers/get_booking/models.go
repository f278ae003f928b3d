package get_booking

import (
	"time"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"userId"`
	RoomID         int64   `json:"roomId"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	SubscriptionID *int64  `json:"subscriptionId,omitempty"`
	Price          float64 `json:"price"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// FromDomainBooking конвертирует доменную бронь в HTTP response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		RoomID:         b.RoomID,
		StartTime:      b.StartTime.Format(time.RFC3339),
		EndTime:        b.EndTime.Format(time.RFC3339),
		SubscriptionID: b.SubscriptionID,
		Price:          b.Price,
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      b.UpdatedAt.Format(time.RFC3339),
	}
}
