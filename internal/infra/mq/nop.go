package mq

import (
	"context"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

// NopPublisher заглушка издателя для конфигураций без RabbitMQ
type NopPublisher struct{}

// BookingConfirmed ничего не публикует
func (NopPublisher) BookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	return nil
}

// SubscriptionExpired ничего не публикует
func (NopPublisher) SubscriptionExpired(ctx context.Context, entry *domain.UserSubscription) error {
	return nil
}
