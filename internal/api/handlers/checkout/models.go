package checkout

import (
	"fmt"
	"time"

	checkoutUseCase "github.com/coworking-lounge/zone-service/internal/usecase/checkout"
)

// CheckoutRequest HTTP request model
type CheckoutRequest struct {
	RoomID         int64  `json:"roomId"`
	StartTime      string `json:"startTime"` // RFC3339
	EndTime        string `json:"endTime"`   // RFC3339
	SubscriptionID *int64 `json:"subscriptionId,omitempty"`
}

// CheckoutResponse HTTP response model.
// Либо booking (бронь зафиксирована сразу), либо payment (нужна оплата).
type CheckoutResponse struct {
	Booking *BookingInfo `json:"booking,omitempty"`
	Payment *PaymentInfo `json:"payment,omitempty"`
}

// BookingInfo зафиксированная бронь
type BookingInfo struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"userId"`
	RoomID         int64   `json:"roomId"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	SubscriptionID *int64  `json:"subscriptionId,omitempty"`
	Price          float64 `json:"price"`
}

// PaymentInfo платёжная сессия для перенаправления пользователя
type PaymentInfo struct {
	HandoffID   string  `json:"handoffId"`
	SessionID   string  `json:"sessionId"`
	RedirectURL string  `json:"redirectUrl"`
	Amount      float64 `json:"amount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckoutRequest) ToUseCaseRequest(userID int64) (*checkoutUseCase.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid endTime: %w", err)
	}

	return &checkoutUseCase.Request{
		UserID:         userID,
		RoomID:         r.RoomID,
		StartTime:      start,
		EndTime:        end,
		SubscriptionID: r.SubscriptionID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkoutUseCase.Response) *CheckoutResponse {
	out := &CheckoutResponse{}
	if resp.Booking != nil {
		out.Booking = &BookingInfo{
			ID:             resp.Booking.ID,
			UserID:         resp.Booking.UserID,
			RoomID:         resp.Booking.RoomID,
			StartTime:      resp.Booking.StartTime.Format(time.RFC3339),
			EndTime:        resp.Booking.EndTime.Format(time.RFC3339),
			SubscriptionID: resp.Booking.SubscriptionID,
			Price:          resp.Booking.Price,
		}
	}
	if resp.Payment != nil {
		out.Payment = &PaymentInfo{
			HandoffID:   resp.Payment.HandoffID,
			SessionID:   resp.Payment.SessionID,
			RedirectURL: resp.Payment.RedirectURL,
			Amount:      resp.Payment.Amount,
		}
	}
	return out
}
