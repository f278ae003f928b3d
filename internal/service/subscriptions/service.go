package subscriptions

import (
	"context"
	"errors"
	"fmt"

	"github.com/coworking-lounge/zone-service/internal/domain"
	subscriptionRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/subscription"
)

// ErrInternal возвращается при внутренних ошибках сервиса
var ErrInternal = errors.New("subscriptions service: internal error")

// Service фоновые и читающие операции над подписками
type Service struct {
	repo         SubscriptionRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса подписок
func NewService(repo SubscriptionRepository, notifier Notifier, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		repo:         repo,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetActive возвращает действующую подписку пользователя, если она есть
func (s *Service) GetActive(ctx context.Context, userID int64) (*domain.UserSubscription, error) {
	entry, err := s.repo.GetActiveByUser(ctx, userID, s.timeProvider.Now())
	if err != nil {
		if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: GetActive - repository error: %v", ErrInternal, err)
	}
	return entry, nil
}

// NotifyExpired рассылает уведомления по подпискам, истёкшим вчера.
// Запускается ежедневно по расписанию; ошибки публикации логируются
// и не прерывают обход.
func (s *Service) NotifyExpired(ctx context.Context) {
	yesterday := domain.DateOnly(s.timeProvider.Now()).AddDate(0, 0, -1)

	entries, err := s.repo.GetExpiredOn(ctx, yesterday)
	if err != nil {
		s.logger.Error("NotifyExpired: failed to fetch expired subscriptions: %v", err)
		return
	}

	if len(entries) == 0 {
		return
	}

	s.logger.Info("NotifyExpired: %d subscriptions expired on %s", len(entries), yesterday.Format(domain.DateFormat))
	for _, entry := range entries {
		if s.notifier == nil {
			continue
		}
		if err := s.notifier.SubscriptionExpired(ctx, entry); err != nil {
			s.logger.Warn("NotifyExpired: publish failed for subscription id=%d: %v", entry.ID, err)
		}
	}
}
