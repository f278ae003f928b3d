package create_booking

import (
	"fmt"
	"time"

	createBooking "github.com/coworking-lounge/zone-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID         int64  `json:"roomId"`
	StartTime      string `json:"startTime"` // RFC3339, например "2026-09-10T12:00:00Z"
	EndTime        string `json:"endTime"`   // RFC3339
	SubscriptionID *int64 `json:"subscriptionId,omitempty"`
}

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

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid endTime: %w", err)
	}

	return &createBooking.Request{
		UserID:         userID,
		RoomID:         r.RoomID,
		StartTime:      start,
		EndTime:        end,
		SubscriptionID: r.SubscriptionID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		UserID:         resp.UserID,
		RoomID:         resp.RoomID,
		StartTime:      resp.StartTime.Format(time.RFC3339),
		EndTime:        resp.EndTime.Format(time.RFC3339),
		SubscriptionID: resp.SubscriptionID,
		Price:          resp.Price,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
