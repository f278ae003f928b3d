package pricing

import (
	"context"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

// TariffProvider источник канонических тарифов по категории комнаты
type TariffProvider interface {
	GetTariffByRoomType(ctx context.Context, roomType domain.RoomType) (*domain.Tariff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
