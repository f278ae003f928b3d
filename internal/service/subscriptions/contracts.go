package subscriptions

import (
	"context"
	"time"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

// SubscriptionRepository интерфейс репозитория подписок
type SubscriptionRepository interface {
	GetActiveByUser(ctx context.Context, userID int64, at time.Time) (*domain.UserSubscription, error)
	GetExpiredOn(ctx context.Context, date time.Time) ([]*domain.UserSubscription, error)
}

// Notifier издатель событий об истёкших подписках
type Notifier interface {
	SubscriptionExpired(ctx context.Context, entry *domain.UserSubscription) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
