package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/coworking-lounge/zone-service/internal/domain"
	catalogRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/catalog"
	subscriptionRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/subscription"
	"github.com/coworking-lounge/zone-service/internal/service/pricing"
	"github.com/coworking-lounge/zone-service/pkg/txmanager"
)

// UseCase use case создания бронирования.
// Конвейер: временные правила -> скан конфликтов -> проверка подписки ->
// расчёт цены -> коммит. Скан и коммит идут в одной SERIALIZABLE-транзакции.
type UseCase struct {
	bookingRepo   BookingRepository
	rooms         RoomProvider
	subscriptions SubscriptionProvider
	pricing       PriceResolver
	txManager     TransactionManager
	notifier      Notifier
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rooms RoomProvider,
	subscriptions SubscriptionProvider,
	priceResolver PriceResolver,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		rooms:         rooms,
		subscriptions: subscriptions,
		pricing:       priceResolver,
		txManager:     txManager,
		notifier:      notifier,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, room=%d, interval=[%s, %s)",
		req.UserID, req.RoomID, req.StartTime.Format("2006-01-02 15:04"), req.EndTime.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Временные правила
	if err := validateInterval(req.StartTime, req.EndTime, now); err != nil {
		uc.logger.Warn("CreateBooking: interval validation failed: %v", err)
		return nil, err
	}

	// 3. Комната из каталога (read-only, допускается кэш)
	room, err := uc.rooms.GetRoomByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 4. Скан конфликтов, проверка подписки, цена и вставка - атомарно.
	// Без этого два конкурентных запроса на пересекающиеся интервалы
	// оба пройдут проверку и оба закоммитятся.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := uc.bookingRepo.GetOverlapping(txCtx, req.RoomID, req.StartTime, req.EndTime, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to scan for conflicts: %v", err)
			return fmt.Errorf("%w: failed to scan for conflicts: %v", ErrInternal, err)
		}
		if hasConflict(overlapping, req.StartTime, req.EndTime, nil) {
			uc.logger.Warn("CreateBooking: room id=%d unavailable for [%s, %s)",
				req.RoomID, req.StartTime.Format("15:04"), req.EndTime.Format("15:04"))
			return ErrRoomUnavailable
		}

		var sub *domain.UserSubscription
		if req.SubscriptionID != nil {
			sub, err = uc.subscriptions.GetByID(txCtx, *req.SubscriptionID)
			if err != nil {
				if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
					uc.logger.Warn("CreateBooking: subscription id=%d not found", *req.SubscriptionID)
					return ErrInvalidSubscription
				}
				uc.logger.Error("CreateBooking: failed to get subscription id=%d: %v", *req.SubscriptionID, err)
				return fmt.Errorf("%w: failed to get subscription: %v", ErrInternal, err)
			}
			if err := validateSubscription(sub, req.UserID, now); err != nil {
				uc.logger.Warn("CreateBooking: subscription check failed: %v", err)
				return err
			}
		}

		price, err := uc.pricing.Resolve(txCtx, room, req.StartTime, req.EndTime, sub)
		if err != nil {
			if errors.Is(err, pricing.ErrTariffNotConfigured) {
				uc.logger.Error("CreateBooking: no tariff for room_type=%s", room.Type)
				return ErrTariffNotConfigured
			}
			uc.logger.Error("CreateBooking: pricing failed: %v", err)
			return fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:         req.UserID,
			RoomID:         req.RoomID,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			SubscriptionID: req.SubscriptionID,
			Price:          price,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигравший гонку на коммите получает тот же ответ, что и при
		// обычном конфликте - у вызывающего один путь повтора
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: lost serialization race for room id=%d", req.RoomID)
			return nil, ErrRoomUnavailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, price=%.2f", result.ID, result.Price)

	// Fire-and-forget: неудачная нотификация не откатывает бронь
	if err := uc.notifier.BookingConfirmed(ctx, result); err != nil {
		uc.logger.Warn("CreateBooking: confirmation notify failed for booking id=%d: %v", result.ID, err)
	}

	return FromDomainBooking(result), nil
}
