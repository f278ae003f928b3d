package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/coworking-lounge/zone-service/internal/domain"
	catalogRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/catalog"
)

// Resolver вычисляет стоимость брони: 0 при активной подписке, иначе
// почасовой тариф категории комнаты.
type Resolver struct {
	tariffs TariffProvider
	logger  Logger
}

// NewResolver создает новый resolver цен
func NewResolver(tariffs TariffProvider, logger Logger) *Resolver {
	return &Resolver{
		tariffs: tariffs,
		logger:  logger,
	}
}

// Resolve возвращает стоимость брони комнаты на интервал [start, end).
// Привязанная подписка (валидность проверяется выше по конвейеру) делает
// бронь бесплатной. Детерминирован: одинаковые входы при неизменном
// каталоге дают одинаковую сумму.
func (r *Resolver) Resolve(ctx context.Context, room *domain.Room, start, end time.Time, sub *domain.UserSubscription) (float64, error) {
	if sub != nil {
		return 0, nil
	}

	tariff, err := r.tariffs.GetTariffByRoomType(ctx, room.Type)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrTariffNotFound) {
			r.logger.Error("Resolve: no tariff configured for room_type=%s (room id=%d)", room.Type, room.ID)
			return 0, fmt.Errorf("%w: %s", ErrTariffNotConfigured, room.Type)
		}
		r.logger.Error("Resolve: failed to get tariff for room_type=%s: %v", room.Type, err)
		return 0, fmt.Errorf("%w: failed to get tariff: %v", ErrInternal, err)
	}

	return totalPrice(tariff.PricePerHour, end.Sub(start)), nil
}

// totalPrice считает стоимость интервала по почасовому тарифу с half-up
// округлением до копейки. Расчет ведется в целых копейках: произведение
// double на границе ровно в полкопейки (8.03 за полчаса) лежит чуть ниже
// неё и во float64 округлилось бы вниз. Округляется только итог,
// промежуточные значения - никогда.
func totalPrice(pricePerHour float64, d time.Duration) float64 {
	cents := int64(math.Round(pricePerHour * 100))
	seconds := int64(d / time.Second)
	return float64((cents*seconds+1800)/3600) / 100
}
