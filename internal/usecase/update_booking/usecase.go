package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/coworking-lounge/zone-service/internal/domain"
	bookingStorage "github.com/coworking-lounge/zone-service/internal/infra/storage/booking"
	catalogRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/catalog"
	subscriptionRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/subscription"
	"github.com/coworking-lounge/zone-service/internal/service/pricing"
	"github.com/coworking-lounge/zone-service/pkg/txmanager"
)

// UseCase use case изменения бронирования.
// Прогоняет тот же конвейер проверок, что и создание, но исключает
// собственную бронь из скана пересечений.
type UseCase struct {
	bookingRepo   BookingRepository
	rooms         RoomProvider
	subscriptions SubscriptionProvider
	pricing       PriceResolver
	txManager     TransactionManager
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
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		rooms:         rooms,
		subscriptions: subscriptions,
		pricing:       priceResolver,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case изменения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%d, user=%d, interval=[%s, %s)",
		req.BookingID, req.UserID, req.StartTime.Format("2006-01-02 15:04"), req.EndTime.Format("2006-01-02 15:04"))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if err := validateInterval(req.StartTime, req.EndTime, now); err != nil {
		uc.logger.Warn("UpdateBooking: interval validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingStorage.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.UserID != req.UserID {
			uc.logger.Warn("UpdateBooking: access denied for user=%d to booking id=%d", req.UserID, req.BookingID)
			return ErrAccessDenied
		}

		room, err := uc.rooms.GetRoomByID(txCtx, booking.RoomID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrRoomNotFound) {
				uc.logger.Error("UpdateBooking: room id=%d missing from catalog", booking.RoomID)
				return fmt.Errorf("%w: room id=%d missing from catalog", ErrInternal, booking.RoomID)
			}
			uc.logger.Error("UpdateBooking: failed to get room id=%d: %v", booking.RoomID, err)
			return fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}

		// Скан пересечений без собственной брони
		overlapping, err := uc.bookingRepo.GetOverlapping(txCtx, booking.RoomID, req.StartTime, req.EndTime, &booking.ID)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to scan for conflicts: %v", err)
			return fmt.Errorf("%w: failed to scan for conflicts: %v", ErrInternal, err)
		}
		if hasConflict(overlapping, req.StartTime, req.EndTime, &booking.ID) {
			uc.logger.Warn("UpdateBooking: room id=%d unavailable for new interval of booking id=%d",
				booking.RoomID, booking.ID)
			return ErrRoomUnavailable
		}

		var sub *domain.UserSubscription
		if req.SubscriptionID != nil {
			sub, err = uc.subscriptions.GetByID(txCtx, *req.SubscriptionID)
			if err != nil {
				if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
					return ErrInvalidSubscription
				}
				uc.logger.Error("UpdateBooking: failed to get subscription id=%d: %v", *req.SubscriptionID, err)
				return fmt.Errorf("%w: failed to get subscription: %v", ErrInternal, err)
			}
			if err := validateSubscription(sub, req.UserID, now); err != nil {
				uc.logger.Warn("UpdateBooking: subscription check failed: %v", err)
				return err
			}
		}

		price, err := uc.pricing.Resolve(txCtx, room, req.StartTime, req.EndTime, sub)
		if err != nil {
			if errors.Is(err, pricing.ErrTariffNotConfigured) {
				return ErrTariffNotConfigured
			}
			uc.logger.Error("UpdateBooking: pricing failed: %v", err)
			return fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.UpdateInterval(txCtx, booking.ID, req.StartTime, req.EndTime, req.SubscriptionID, price); err != nil {
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		booking.StartTime = req.StartTime
		booking.EndTime = req.EndTime
		booking.SubscriptionID = req.SubscriptionID
		booking.Price = price
		result = booking
		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("UpdateBooking: lost serialization race for booking id=%d", req.BookingID)
			return nil, ErrRoomUnavailable
		}
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d, price=%.2f", result.ID, result.Price)
	return FromDomainBooking(result), nil
}
