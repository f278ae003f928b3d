package update_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coworking-lounge/zone-service/internal/domain"
	bookingStorage "github.com/coworking-lounge/zone-service/internal/infra/storage/booking"
	catalogRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/catalog"
	subscriptionRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/subscription"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookingRepo struct {
	byID    map[int64]*domain.Booking
	updated *domain.Booking
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingStorage.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetOverlapping(ctx context.Context, roomID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.RoomID != roomID || !b.Overlaps(start, end) {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateInterval(ctx context.Context, id int64, start, end time.Time, subscriptionID *int64, price float64) error {
	b, ok := f.byID[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	updated := *b
	updated.StartTime = start
	updated.EndTime = end
	updated.SubscriptionID = subscriptionID
	updated.Price = price
	f.updated = &updated
	return nil
}

type fakeRooms struct {
	rooms map[int64]*domain.Room
}

func (f *fakeRooms) GetRoomByID(ctx context.Context, id int64) (*domain.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, catalogRepo.ErrRoomNotFound
	}
	return room, nil
}

type fakeSubs struct{}

func (fakeSubs) GetByID(ctx context.Context, id int64) (*domain.UserSubscription, error) {
	return nil, subscriptionRepo.ErrSubscriptionNotFound
}

type fakeResolver struct{ price float64 }

func (f *fakeResolver) Resolve(ctx context.Context, room *domain.Room, start, end time.Time, sub *domain.UserSubscription) (float64, error) {
	return f.price, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var testNow = time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)

func newUseCase(repo *fakeBookingRepo) *UseCase {
	rooms := &fakeRooms{rooms: map[int64]*domain.Room{
		1: {ID: 1, Title: "VIP кабинет", Type: domain.RoomTypeVIP},
	}}
	return NewUseCase(repo, rooms, fakeSubs{}, &fakeResolver{price: 60.00}, passthroughTx{}, nopLogger{}).
		WithTimeProvider(fixedTime{now: testNow})
}

func ownBooking() *domain.Booking {
	return &domain.Booking{
		ID:        10,
		UserID:    7,
		RoomID:    1,
		StartTime: testNow.Add(time.Hour),
		EndTime:   testNow.Add(2 * time.Hour),
		Price:     30.00,
	}
}

func TestExecute_MoveInterval(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: ownBooking()}}
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		UserID:    7,
		StartTime: testNow.Add(4 * time.Hour),
		EndTime:   testNow.Add(6 * time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, testNow.Add(4*time.Hour), resp.StartTime)
	assert.Equal(t, 60.00, resp.Price)
	require.NotNil(t, repo.updated)
}

func TestExecute_SelfOverlapIgnored(t *testing.T) {
	// Новый интервал пересекается только со старой версией этой же брони
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: ownBooking()}}
	uc := newUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		UserID:    7,
		StartTime: testNow.Add(90 * time.Minute),
		EndTime:   testNow.Add(3 * time.Hour),
	})

	require.NoError(t, err)
}

func TestExecute_ConflictWithOtherBooking(t *testing.T) {
	other := &domain.Booking{
		ID: 11, UserID: 8, RoomID: 1,
		StartTime: testNow.Add(4 * time.Hour),
		EndTime:   testNow.Add(5 * time.Hour),
	}
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: ownBooking(), 11: other}}
	uc := newUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		UserID:    7,
		StartTime: testNow.Add(4 * time.Hour),
		EndTime:   testNow.Add(6 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.Nil(t, repo.updated)
}

func TestExecute_AccessDenied(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: ownBooking()}}
	uc := newUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		UserID:    8, // другой пользователь
		StartTime: testNow.Add(4 * time.Hour),
		EndTime:   testNow.Add(6 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{}}
	uc := newUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 404,
		UserID:    7,
		StartTime: testNow.Add(4 * time.Hour),
		EndTime:   testNow.Add(6 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_NewIntervalStillValidated(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: ownBooking()}}
	uc := newUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		UserID:    7,
		StartTime: testNow.Add(-time.Hour), // в прошлом
		EndTime:   testNow.Add(time.Hour),
	})

	assert.ErrorIs(t, err, ErrInvalidInterval)
}
