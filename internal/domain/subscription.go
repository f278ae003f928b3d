package domain

import "time"

// PlanDuration represents the duration class of a subscription plan
type PlanDuration string

const (
	PlanDurationWeek        PlanDuration = "week"
	PlanDurationMonth       PlanDuration = "month"
	PlanDurationThreeMonths PlanDuration = "three_months"
	PlanDurationSixMonths   PlanDuration = "six_months"
)

// Days возвращает длительность класса в днях
// Фиксированное количество дней, без календарной арифметики по месяцам
func (d PlanDuration) Days() int {
	switch d {
	case PlanDurationWeek:
		return 7
	case PlanDurationMonth:
		return 30
	case PlanDurationThreeMonths:
		return 90
	case PlanDurationSixMonths:
		return 180
	default:
		return 0
	}
}

// Valid returns true if the duration class is known
func (d PlanDuration) Valid() bool {
	return d.Days() > 0
}

// SubscriptionPlan represents a purchasable subscription template
type SubscriptionPlan struct {
	ID       int64
	Title    string
	Duration PlanDuration
	Price    float64
}

// EndDateFrom computes the end date of a subscription started (or extended) at the given anchor date
func (p *SubscriptionPlan) EndDateFrom(anchor time.Time) time.Time {
	return DateOnly(anchor).AddDate(0, 0, p.Duration.Days())
}

// UserSubscription represents a dated grant of subscription coverage to one user
type UserSubscription struct {
	ID        int64
	UserID    int64
	PlanID    int64
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive сообщает, покрывает ли подписка указанный момент
// Сравнение с точностью до дня, обе границы включительно
func (s *UserSubscription) IsActive(at time.Time) bool {
	d := DateOnly(at)
	return !d.Before(DateOnly(s.StartDate)) && !d.After(DateOnly(s.EndDate))
}

// RemainingDays returns how many full days of coverage remain at the given moment, never negative
func (s *UserSubscription) RemainingDays(at time.Time) int {
	days := int(DateOnly(s.EndDate).Sub(DateOnly(at)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// DateOnly truncates a timestamp to its calendar date in UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
