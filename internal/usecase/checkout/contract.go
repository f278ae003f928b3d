package checkout

import (
	"context"
	"time"

	"github.com/coworking-lounge/zone-service/internal/domain"
	"github.com/coworking-lounge/zone-service/internal/infra/storage/handoff"
	"github.com/coworking-lounge/zone-service/internal/integrations/paymentgateway"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetOverlapping(ctx context.Context, roomID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error)
}

// RoomProvider источник данных о комнатах
type RoomProvider interface {
	GetRoomByID(ctx context.Context, id int64) (*domain.Room, error)
}

// SubscriptionLedger источник записей о подписках.
// GetActiveByUser нужен для автоматической привязки активной подписки.
type SubscriptionLedger interface {
	GetByID(ctx context.Context, id int64) (*domain.UserSubscription, error)
	GetActiveByUser(ctx context.Context, userID int64, at time.Time) (*domain.UserSubscription, error)
}

// PriceResolver вычисляет стоимость брони
type PriceResolver interface {
	Resolve(ctx context.Context, room *domain.Room, start, end time.Time, sub *domain.UserSubscription) (float64, error)
}

// HandoffRepository хранилище броней, ожидающих подтверждения оплаты
type HandoffRepository interface {
	Create(ctx context.Context, pending *handoff.PendingBooking) error
	GetByID(ctx context.Context, id string) (*handoff.PendingBooking, error)
	Delete(ctx context.Context, id string) error
}

// PaymentGateway клиент платёжного шлюза
type PaymentGateway interface {
	CreateSession(ctx context.Context, amount float64, metadata map[string]string) (*paymentgateway.Session, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier публикует событие о подтверждённой брони
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *domain.Booking) error
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
