package checkout

import (
	"fmt"
	"time"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if req.SubscriptionID != nil && *req.SubscriptionID <= 0 {
		return fmt.Errorf("%w: subscriptionID must be positive", ErrInvalidInput)
	}
	return nil
}

// validateInterval применяет временные правила к интервалу брони
func validateInterval(start, end, now time.Time) error {
	if start.Before(now) {
		return fmt.Errorf("%w: start time is in the past", ErrInvalidInterval)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidInterval)
	}
	if end.Sub(start) > domain.MaxBookingDuration {
		return fmt.Errorf("%w: duration exceeds %s limit", ErrInvalidInterval, domain.MaxBookingDuration)
	}
	return nil
}

// validateSubscription проверяет принадлежность и активность подписки
func validateSubscription(sub *domain.UserSubscription, userID int64, now time.Time) error {
	if sub.UserID != userID {
		return fmt.Errorf("%w: subscription belongs to another user", ErrInvalidSubscription)
	}
	if !sub.IsActive(now) {
		return fmt.Errorf("%w: subscription is not active", ErrInvalidSubscription)
	}
	return nil
}

// hasConflict сообщает, пересекается ли интервал с существующими бронями
func hasConflict(existing []*domain.Booking, start, end time.Time) bool {
	for _, b := range existing {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
