package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPlanDurationDays(t *testing.T) {
	assert.Equal(t, 7, PlanDurationWeek.Days())
	assert.Equal(t, 30, PlanDurationMonth.Days())
	assert.Equal(t, 90, PlanDurationThreeMonths.Days())
	assert.Equal(t, 180, PlanDurationSixMonths.Days())
	assert.Equal(t, 0, PlanDuration("year").Days())
	assert.False(t, PlanDuration("year").Valid())
}

func TestEndDateFrom(t *testing.T) {
	plan := &SubscriptionPlan{Duration: PlanDurationWeek}

	// Якорь с временем суток усекается до даты
	anchor := time.Date(2026, 9, 10, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, date(2026, 9, 17), plan.EndDateFrom(anchor))

	plan.Duration = PlanDurationMonth
	assert.Equal(t, date(2026, 10, 10), plan.EndDateFrom(anchor))
}

func TestUserSubscriptionIsActive(t *testing.T) {
	sub := &UserSubscription{
		StartDate: date(2026, 9, 10),
		EndDate:   date(2026, 9, 17),
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"день до начала", date(2026, 9, 9), false},
		{"первый день включительно", date(2026, 9, 10), true},
		{"середина срока", date(2026, 9, 13), true},
		{"последний день включительно", date(2026, 9, 17), true},
		{"конец последнего дня", time.Date(2026, 9, 17, 23, 59, 59, 0, time.UTC), true},
		{"день после окончания", date(2026, 9, 18), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sub.IsActive(tt.at))
		})
	}
}

func TestRemainingDays(t *testing.T) {
	sub := &UserSubscription{
		StartDate: date(2026, 9, 10),
		EndDate:   date(2026, 9, 17),
	}

	assert.Equal(t, 7, sub.RemainingDays(date(2026, 9, 10)))
	assert.Equal(t, 1, sub.RemainingDays(date(2026, 9, 16)))
	assert.Equal(t, 0, sub.RemainingDays(date(2026, 9, 17)))
	assert.Equal(t, 0, sub.RemainingDays(date(2026, 9, 25)))
}

func TestDateOnly(t *testing.T) {
	// Время в другом поясе приводится к дате в UTC
	msk := time.FixedZone("MSK", 3*3600)
	at := time.Date(2026, 9, 11, 1, 30, 0, 0, msk) // 2026-09-10 22:30 UTC

	assert.Equal(t, date(2026, 9, 10), DateOnly(at))
}
