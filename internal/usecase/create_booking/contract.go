package create_booking

import (
	"context"
	"time"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetOverlapping(ctx context.Context, roomID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error)
}

// RoomProvider источник данных о комнатах (каталог, возможно через кэш)
type RoomProvider interface {
	GetRoomByID(ctx context.Context, id int64) (*domain.Room, error)
}

// SubscriptionProvider источник записей о подписках
type SubscriptionProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.UserSubscription, error)
}

// PriceResolver вычисляет стоимость брони
type PriceResolver interface {
	Resolve(ctx context.Context, room *domain.Room, start, end time.Time, sub *domain.UserSubscription) (float64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier издатель событий о подтверждённых бронях
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
