package purchase_subscription

import (
	"context"
	"time"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

// SubscriptionRepository интерфейс репозитория подписок
type SubscriptionRepository interface {
	GetPlanByID(ctx context.Context, id int64) (*domain.SubscriptionPlan, error)
	GetActiveByUser(ctx context.Context, userID int64, at time.Time) (*domain.UserSubscription, error)
	Create(ctx context.Context, sub *domain.UserSubscription) (*domain.UserSubscription, error)
	UpdateEndDate(ctx context.Context, id int64, endDate time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
