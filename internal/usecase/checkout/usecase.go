package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/coworking-lounge/zone-service/internal/domain"
	catalogRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/catalog"
	"github.com/coworking-lounge/zone-service/internal/infra/storage/handoff"
	subscriptionRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/subscription"
	"github.com/coworking-lounge/zone-service/internal/integrations/paymentgateway"
	"github.com/coworking-lounge/zone-service/internal/service/pricing"
	"github.com/coworking-lounge/zone-service/pkg/txmanager"
)

// UseCase use case оформления брони через оплату.
// Нулевая стоимость фиксирует бронь сразу; иначе создаётся платёжная
// сессия, а интервал НЕ удерживается до подтверждения оплаты:
// CommitPending повторяет проверку конфликтов заново.
type UseCase struct {
	bookingRepo   BookingRepository
	rooms         RoomProvider
	subscriptions SubscriptionLedger
	pricing       PriceResolver
	handoffRepo   HandoffRepository
	gateway       PaymentGateway
	txManager     TransactionManager
	notifier      Notifier
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rooms RoomProvider,
	subscriptions SubscriptionLedger,
	priceResolver PriceResolver,
	handoffRepo HandoffRepository,
	gateway PaymentGateway,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		rooms:         rooms,
		subscriptions: subscriptions,
		pricing:       priceResolver,
		handoffRepo:   handoffRepo,
		gateway:       gateway,
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

// Execute выполняет use case оформления брони
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Checkout: user=%d, room=%d, interval=[%s, %s)",
		req.UserID, req.RoomID, req.StartTime.Format("2006-01-02 15:04"), req.EndTime.Format("2006-01-02 15:04"))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Checkout: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if err := validateInterval(req.StartTime, req.EndTime, now); err != nil {
		uc.logger.Warn("Checkout: interval validation failed: %v", err)
		return nil, err
	}

	room, err := uc.rooms.GetRoomByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("Checkout: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	sub, err := uc.resolveSubscription(ctx, req, now)
	if err != nil {
		return nil, err
	}

	var subscriptionID *int64
	if sub != nil {
		subscriptionID = &sub.ID
	}

	// Предварительная проверка конфликтов вне транзакции: шлюз не стоит
	// дергать для заведомо занятого интервала
	overlapping, err := uc.bookingRepo.GetOverlapping(ctx, req.RoomID, req.StartTime, req.EndTime, nil)
	if err != nil {
		uc.logger.Error("Checkout: failed to scan for conflicts: %v", err)
		return nil, fmt.Errorf("%w: failed to scan for conflicts: %v", ErrInternal, err)
	}
	if hasConflict(overlapping, req.StartTime, req.EndTime) {
		uc.logger.Warn("Checkout: room id=%d unavailable for requested interval", req.RoomID)
		return nil, ErrRoomUnavailable
	}

	price, err := uc.pricing.Resolve(ctx, room, req.StartTime, req.EndTime, sub)
	if err != nil {
		if errors.Is(err, pricing.ErrTariffNotConfigured) {
			return nil, ErrTariffNotConfigured
		}
		uc.logger.Error("Checkout: pricing failed: %v", err)
		return nil, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}

	// Покрыто подпиской: платить нечего, фиксируем сразу
	if price == 0 {
		booking, err := uc.commitBooking(ctx, req.UserID, req.RoomID, req.StartTime, req.EndTime, subscriptionID, 0)
		if err != nil {
			return nil, err
		}
		uc.logger.Info("Checkout: booking id=%d committed without payment", booking.ID)
		return &Response{Booking: fromDomainBooking(booking)}, nil
	}

	handoffID := uuid.NewString()

	session, err := uc.gateway.CreateSession(ctx, price, map[string]string{
		"handoff_id": handoffID,
		"user_id":    strconv.FormatInt(req.UserID, 10),
		"room_id":    strconv.FormatInt(req.RoomID, 10),
	})
	if err != nil {
		if errors.Is(err, paymentgateway.ErrSessionRejected) {
			uc.logger.Warn("Checkout: gateway rejected session for amount=%.2f", price)
			return nil, ErrPaymentRejected
		}
		uc.logger.Error("Checkout: failed to create payment session: %v", err)
		return nil, fmt.Errorf("%w: failed to create payment session: %v", ErrInternal, err)
	}

	pending := &handoff.PendingBooking{
		ID:             handoffID,
		UserID:         req.UserID,
		RoomID:         req.RoomID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		SubscriptionID: subscriptionID,
		Amount:         price,
		SessionID:      session.ID,
	}
	if err := uc.handoffRepo.Create(ctx, pending); err != nil {
		uc.logger.Error("Checkout: failed to store pending booking: %v", err)
		return nil, fmt.Errorf("%w: failed to store pending booking: %v", ErrInternal, err)
	}

	uc.logger.Info("Checkout: pending booking %s awaits payment, session=%s, amount=%.2f",
		handoffID, session.ID, price)
	return &Response{
		Payment: &PaymentInfo{
			HandoffID:   handoffID,
			SessionID:   session.ID,
			RedirectURL: session.RedirectURL,
			Amount:      price,
		},
	}, nil
}

// CommitPending фиксирует отложенную бронь после подтверждения оплаты.
// Временные правила повторно не проверяются: медленная оплата не должна
// валить бронь из-за уже наступившего старта. Конфликт проверяется заново,
// проигравший получает ErrRoomUnavailable.
func (uc *UseCase) CommitPending(ctx context.Context, handoffID string) (*Response, error) {
	uc.logger.Info("CommitPending: handoff=%s", handoffID)

	if handoffID == "" {
		return nil, fmt.Errorf("%w: handoffID is required", ErrInvalidInput)
	}

	pending, err := uc.handoffRepo.GetByID(ctx, handoffID)
	if err != nil {
		if errors.Is(err, handoff.ErrHandoffNotFound) {
			return nil, ErrHandoffNotFound
		}
		uc.logger.Error("CommitPending: failed to get handoff %s: %v", handoffID, err)
		return nil, fmt.Errorf("%w: failed to get pending booking: %v", ErrInternal, err)
	}

	booking, err := uc.commitBooking(ctx,
		pending.UserID, pending.RoomID, pending.StartTime, pending.EndTime, pending.SubscriptionID, pending.Amount)
	if err != nil {
		return nil, err
	}

	if err := uc.handoffRepo.Delete(ctx, handoffID); err != nil && !errors.Is(err, handoff.ErrHandoffNotFound) {
		// Бронь уже зафиксирована; оставшаяся заявка безвредна
		uc.logger.Warn("CommitPending: failed to delete handoff %s: %v", handoffID, err)
	}

	uc.logger.Info("CommitPending: booking id=%d committed, handoff=%s", booking.ID, handoffID)
	return &Response{Booking: fromDomainBooking(booking)}, nil
}

// resolveSubscription возвращает подписку для брони: явно указанную
// (с проверкой принадлежности и активности) либо активную подписку
// пользователя, если она есть
func (uc *UseCase) resolveSubscription(ctx context.Context, req *Request, now time.Time) (*domain.UserSubscription, error) {
	if req.SubscriptionID != nil {
		sub, err := uc.subscriptions.GetByID(ctx, *req.SubscriptionID)
		if err != nil {
			if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
				return nil, ErrInvalidSubscription
			}
			uc.logger.Error("Checkout: failed to get subscription id=%d: %v", *req.SubscriptionID, err)
			return nil, fmt.Errorf("%w: failed to get subscription: %v", ErrInternal, err)
		}
		if err := validateSubscription(sub, req.UserID, now); err != nil {
			uc.logger.Warn("Checkout: subscription check failed: %v", err)
			return nil, err
		}
		return sub, nil
	}

	sub, err := uc.subscriptions.GetActiveByUser(ctx, req.UserID, now)
	if err != nil {
		if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
			return nil, nil
		}
		uc.logger.Error("Checkout: failed to get active subscription for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get active subscription: %v", ErrInternal, err)
	}
	return sub, nil
}

// commitBooking создаёт бронь в serializable-транзакции с повторной
// проверкой конфликтов
func (uc *UseCase) commitBooking(
	ctx context.Context,
	userID, roomID int64,
	start, end time.Time,
	subscriptionID *int64,
	price float64,
) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := uc.bookingRepo.GetOverlapping(txCtx, roomID, start, end, nil)
		if err != nil {
			uc.logger.Error("Checkout: failed to scan for conflicts in tx: %v", err)
			return fmt.Errorf("%w: failed to scan for conflicts: %v", ErrInternal, err)
		}
		if hasConflict(overlapping, start, end) {
			return ErrRoomUnavailable
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:         userID,
			RoomID:         roomID,
			StartTime:      start,
			EndTime:        end,
			SubscriptionID: subscriptionID,
			Price:          price,
		})
		if err != nil {
			uc.logger.Error("Checkout: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		result = created
		return nil
	})
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("Checkout: lost serialization race for room id=%d", roomID)
			return nil, ErrRoomUnavailable
		}
		return nil, err
	}

	// Ошибка нотификации бронь не откатывает
	if err := uc.notifier.BookingConfirmed(ctx, result); err != nil {
		uc.logger.Warn("Checkout: failed to publish booking confirmation for id=%d: %v", result.ID, err)
	}
	return result, nil
}
