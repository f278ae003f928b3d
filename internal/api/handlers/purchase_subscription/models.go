package purchase_subscription

import (
	"fmt"
	"time"

	"github.com/coworking-lounge/zone-service/internal/domain"
	purchaseSubscription "github.com/coworking-lounge/zone-service/internal/usecase/purchase_subscription"
)

// PurchaseSubscriptionRequest HTTP request model
type PurchaseSubscriptionRequest struct {
	PlanID    int64  `json:"planId"`
	StartDate string `json:"startDate,omitempty"` // "2026-09-10", пусто = с сегодняшнего дня
}

// SubscriptionResponse HTTP response model
type SubscriptionResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	PlanID    int64  `json:"planId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Extended  bool   `json:"extended"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PurchaseSubscriptionRequest) ToUseCaseRequest(userID int64) (*purchaseSubscription.Request, error) {
	var startDate time.Time
	if r.StartDate != "" {
		parsed, err := time.Parse(domain.DateFormat, r.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		startDate = parsed
	}

	return &purchaseSubscription.Request{
		UserID:    userID,
		PlanID:    r.PlanID,
		StartDate: startDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *purchaseSubscription.Response) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:        resp.ID,
		UserID:    resp.UserID,
		PlanID:    resp.PlanID,
		StartDate: resp.StartDate,
		EndDate:   resp.EndDate,
		Extended:  resp.Extended,
	}
}
