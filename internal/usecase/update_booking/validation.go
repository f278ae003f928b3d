package update_booking

import (
	"fmt"
	"time"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if req.SubscriptionID != nil && *req.SubscriptionID <= 0 {
		return fmt.Errorf("%w: subscriptionID must be positive", ErrInvalidInput)
	}
	return nil
}

// validateInterval применяет временные правила к новому интервалу брони
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

// hasConflict сообщает, пересекается ли новый интервал с чужими бронями
func hasConflict(existing []*domain.Booking, start, end time.Time, excludeID *int64) bool {
	for _, b := range existing {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
