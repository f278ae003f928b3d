package purchase_subscription

import (
	"time"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

// Request модель запроса на покупку подписки.
// StartDate опциональна: пустая дата означает «с сегодняшнего дня».
type Request struct {
	UserID    int64
	PlanID    int64
	StartDate time.Time
}

// Response модель ответа с оформленной (или продлённой) подпиской
type Response struct {
	ID        int64
	UserID    int64
	PlanID    int64
	StartDate string
	EndDate   string
	Extended  bool // true, если продлена существующая активная подписка
}

// FromDomainSubscription конвертирует доменную подписку в response
func FromDomainSubscription(sub *domain.UserSubscription, extended bool) *Response {
	return &Response{
		ID:        sub.ID,
		UserID:    sub.UserID,
		PlanID:    sub.PlanID,
		StartDate: sub.StartDate.Format(domain.DateFormat),
		EndDate:   sub.EndDate.Format(domain.DateFormat),
		Extended:  extended,
	}
}
