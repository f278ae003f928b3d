package purchase_subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/coworking-lounge/zone-service/internal/domain"
	subscriptionRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/subscription"
)

// UseCase use case покупки подписки.
// Активная подписка не заменяется новой: её срок продлевается на
// длительность плана от текущей даты окончания (stacking).
type UseCase struct {
	subscriptionRepo SubscriptionRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	subscriptionRepo SubscriptionRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case покупки подписки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PurchaseSubscription: user=%d, plan=%d", req.UserID, req.PlanID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PurchaseSubscription: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	today := domain.DateOnly(now)

	startDate := today
	if !req.StartDate.IsZero() {
		startDate = domain.DateOnly(req.StartDate)
	}
	if startDate.Before(today) {
		uc.logger.Warn("PurchaseSubscription: start date %s is in the past", startDate.Format(domain.DateFormat))
		return nil, ErrStartDateInPast
	}

	plan, err := uc.subscriptionRepo.GetPlanByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, subscriptionRepo.ErrPlanNotFound) {
			return nil, ErrPlanNotFound
		}
		uc.logger.Error("PurchaseSubscription: failed to get plan id=%d: %v", req.PlanID, err)
		return nil, fmt.Errorf("%w: failed to get plan: %v", ErrInternal, err)
	}

	var (
		result   *domain.UserSubscription
		extended bool
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.subscriptionRepo.GetActiveByUser(txCtx, req.UserID, now)
		if err != nil && !errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
			uc.logger.Error("PurchaseSubscription: failed to get active subscription: %v", err)
			return fmt.Errorf("%w: failed to get active subscription: %v", ErrInternal, err)
		}

		if current != nil {
			// Продление: новый срок отсчитывается от конца текущего
			newEnd := plan.EndDateFrom(current.EndDate)
			if err := uc.subscriptionRepo.UpdateEndDate(txCtx, current.ID, newEnd); err != nil {
				uc.logger.Error("PurchaseSubscription: failed to extend subscription id=%d: %v", current.ID, err)
				return fmt.Errorf("%w: failed to extend subscription: %v", ErrInternal, err)
			}
			current.EndDate = newEnd
			result = current
			extended = true
			return nil
		}

		created, err := uc.subscriptionRepo.Create(txCtx, &domain.UserSubscription{
			UserID:    req.UserID,
			PlanID:    plan.ID,
			StartDate: startDate,
			EndDate:   plan.EndDateFrom(startDate),
		})
		if err != nil {
			uc.logger.Error("PurchaseSubscription: failed to create subscription: %v", err)
			return fmt.Errorf("%w: failed to create subscription: %v", ErrInternal, err)
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if extended {
		uc.logger.Info("PurchaseSubscription: extended subscription id=%d until %s",
			result.ID, result.EndDate.Format(domain.DateFormat))
	} else {
		uc.logger.Info("PurchaseSubscription: created subscription id=%d [%s, %s]",
			result.ID, result.StartDate.Format(domain.DateFormat), result.EndDate.Format(domain.DateFormat))
	}
	return FromDomainSubscription(result, extended), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.PlanID <= 0 {
		return fmt.Errorf("%w: planID must be positive", ErrInvalidInput)
	}
	return nil
}
