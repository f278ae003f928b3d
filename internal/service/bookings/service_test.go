package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coworking-lounge/zone-service/internal/domain"
	bookingRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/booking"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeRepo struct {
	byID    map[int64]*domain.Booking
	byUser  map[int64][]*domain.Booking
	deleted []int64
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	return f.byUser[userID], nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func booking(id, userID int64) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		UserID:    userID,
		RoomID:    1,
		StartTime: time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetByID(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{10: booking(10, 7)}}
	svc := NewService(repo, nopLogger{})

	t.Run("владелец видит свою бронь", func(t *testing.T) {
		got, err := svc.GetByID(context.Background(), 10, 7, false)
		require.NoError(t, err)
		assert.Equal(t, int64(10), got.ID)
	})

	t.Run("чужая бронь недоступна", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 10, 8, false)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("staff видит любую бронь", func(t *testing.T) {
		got, err := svc.GetByID(context.Background(), 10, 8, true)
		require.NoError(t, err)
		assert.Equal(t, int64(10), got.ID)
	})

	t.Run("несуществующая бронь", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 404, 7, false)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetUserBookings(t *testing.T) {
	repo := &fakeRepo{byUser: map[int64][]*domain.Booking{
		7: {booking(10, 7), booking(11, 7)},
	}}
	svc := NewService(repo, nopLogger{})

	t.Run("своя история", func(t *testing.T) {
		got, err := svc.GetUserBookings(context.Background(), 7, 7, false)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("чужая история недоступна", func(t *testing.T) {
		_, err := svc.GetUserBookings(context.Background(), 7, 8, false)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("staff видит чужую историю", func(t *testing.T) {
		got, err := svc.GetUserBookings(context.Background(), 7, 8, true)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestCancel(t *testing.T) {
	t.Run("владелец отменяет свою бронь", func(t *testing.T) {
		repo := &fakeRepo{byID: map[int64]*domain.Booking{10: booking(10, 7)}}
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 10, 7, false)

		require.NoError(t, err)
		assert.Equal(t, []int64{10}, repo.deleted)
	})

	t.Run("чужую бронь отменить нельзя", func(t *testing.T) {
		repo := &fakeRepo{byID: map[int64]*domain.Booking{10: booking(10, 7)}}
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 10, 8, false)

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, repo.deleted)
	})

	t.Run("staff отменяет любую бронь", func(t *testing.T) {
		repo := &fakeRepo{byID: map[int64]*domain.Booking{10: booking(10, 7)}}
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 10, 8, true)

		require.NoError(t, err)
	})
}
