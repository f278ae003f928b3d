package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coworking-lounge/zone-service/internal/domain"
	catalogRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/catalog"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTariffs struct {
	tariffs map[domain.RoomType]*domain.Tariff
	err     error
	calls   int
}

func (f *fakeTariffs) GetTariffByRoomType(ctx context.Context, roomType domain.RoomType) (*domain.Tariff, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	tariff, ok := f.tariffs[roomType]
	if !ok {
		return nil, catalogRepo.ErrTariffNotFound
	}
	return tariff, nil
}

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 10, hour, min, 0, 0, time.UTC)
}

func standardRoom() *domain.Room {
	return &domain.Room{ID: 1, Title: "Зал 1", Type: domain.RoomTypeStandard}
}

func resolverWithRate(rate float64) (*Resolver, *fakeTariffs) {
	tariffs := &fakeTariffs{tariffs: map[domain.RoomType]*domain.Tariff{
		domain.RoomTypeStandard: {ID: 1, RoomType: domain.RoomTypeStandard, PricePerHour: rate},
	}}
	return NewResolver(tariffs, nopLogger{}), tariffs
}

func TestResolve_HourlyTariff(t *testing.T) {
	tests := []struct {
		name  string
		rate  float64
		start time.Time
		end   time.Time
		want  float64
	}{
		{"два часа по 20.00", 20.00, at(10, 0), at(12, 0), 40.00},
		{"полтора часа по 10.00", 10.00, at(10, 0), at(11, 30), 15.00},
		{"сорок минут по 15.00", 15.00, at(10, 0), at(10, 40), 10.00},
		{"двадцать минут по 10.00", 10.00, at(10, 0), at(10, 20), 3.33},
		{"округление half-up вверх", 0.01, at(10, 0), at(10, 30), 0.01}, // 0.005 -> 0.01
		{"полкопейки вверх, не по float64", 8.03, at(10, 0), at(10, 30), 4.02}, // ровно 4.015 -> 4.02
		{"граница полкопейки на полтора часа", 8.03, at(10, 0), at(11, 30), 12.05}, // ровно 12.045 -> 12.05
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, _ := resolverWithRate(tt.rate)

			got, err := resolver.Resolve(context.Background(), standardRoom(), tt.start, tt.end, nil)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_SubscriptionMakesBookingFree(t *testing.T) {
	resolver, tariffs := resolverWithRate(20.00)
	sub := &domain.UserSubscription{ID: 5, UserID: 1}

	got, err := resolver.Resolve(context.Background(), standardRoom(), at(10, 0), at(12, 0), sub)

	require.NoError(t, err)
	assert.Zero(t, got)
	// Тариф при подписке даже не запрашивается
	assert.Zero(t, tariffs.calls)
}

func TestResolve_NoTariffConfigured(t *testing.T) {
	resolver := NewResolver(&fakeTariffs{tariffs: map[domain.RoomType]*domain.Tariff{}}, nopLogger{})

	_, err := resolver.Resolve(context.Background(), standardRoom(), at(10, 0), at(12, 0), nil)

	assert.ErrorIs(t, err, ErrTariffNotConfigured)
}

func TestResolve_TariffSourceFailure(t *testing.T) {
	resolver := NewResolver(&fakeTariffs{err: errors.New("connection refused")}, nopLogger{})

	_, err := resolver.Resolve(context.Background(), standardRoom(), at(10, 0), at(12, 0), nil)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestResolve_Deterministic(t *testing.T) {
	resolver, _ := resolverWithRate(13.37)

	first, err := resolver.Resolve(context.Background(), standardRoom(), at(9, 15), at(17, 45), nil)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := resolver.Resolve(context.Background(), standardRoom(), at(9, 15), at(17, 45), nil)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
