package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coworking-lounge/zone-service/internal/domain"
	catalogRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/catalog"
	subscriptionRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/subscription"
	"github.com/coworking-lounge/zone-service/internal/service/pricing"
	"github.com/coworking-lounge/zone-service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookingRepo struct {
	existing  []*domain.Booking
	created   *domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *b
	stored.ID = 42
	stored.CreatedAt = time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	stored.UpdatedAt = stored.CreatedAt
	f.created = &stored
	return &stored, nil
}

func (f *fakeBookingRepo) GetOverlapping(ctx context.Context, roomID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.existing {
		if b.RoomID == roomID && b.Overlaps(start, end) {
			out = append(out, b)
		}
	}
	return out, nil
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

type fakeSubs struct {
	subs map[int64]*domain.UserSubscription
}

func (f *fakeSubs) GetByID(ctx context.Context, id int64) (*domain.UserSubscription, error) {
	sub, ok := f.subs[id]
	if !ok {
		return nil, subscriptionRepo.ErrSubscriptionNotFound
	}
	return sub, nil
}

type fakeResolver struct {
	price   float64
	err     error
	gotSub  *domain.UserSubscription
	resolve bool
}

func (f *fakeResolver) Resolve(ctx context.Context, room *domain.Room, start, end time.Time, sub *domain.UserSubscription) (float64, error) {
	f.resolve = true
	f.gotSub = sub
	if f.err != nil {
		return 0, f.err
	}
	if sub != nil {
		return 0, nil
	}
	return f.price, nil
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeNotifier struct {
	confirmed []*domain.Booking
	err       error
}

func (f *fakeNotifier) BookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	f.confirmed = append(f.confirmed, booking)
	return f.err
}

type env struct {
	bookings *fakeBookingRepo
	rooms    *fakeRooms
	subs     *fakeSubs
	resolver *fakeResolver
	tx       *fakeTxManager
	notifier *fakeNotifier
	uc       *UseCase
}

var testNow = time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)

func newEnv() *env {
	e := &env{
		bookings: &fakeBookingRepo{},
		rooms: &fakeRooms{rooms: map[int64]*domain.Room{
			1: {ID: 1, Title: "Переговорка", Type: domain.RoomTypeMeeting},
		}},
		subs:     &fakeSubs{subs: map[int64]*domain.UserSubscription{}},
		resolver: &fakeResolver{price: 40.00},
		tx:       &fakeTxManager{},
		notifier: &fakeNotifier{},
	}
	e.uc = NewUseCase(e.bookings, e.rooms, e.subs, e.resolver, e.tx, e.notifier, nopLogger{}).
		WithTimeProvider(fixedTime{now: testNow})
	return e
}

func validRequest() *Request {
	return &Request{
		UserID:    7,
		RoomID:    1,
		StartTime: testNow.Add(time.Hour),     // 10:00
		EndTime:   testNow.Add(3 * time.Hour), // 12:00
	}
}

func TestExecute_Success(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, int64(7), resp.UserID)
	assert.Equal(t, 40.00, resp.Price)
	assert.Nil(t, resp.SubscriptionID)

	require.NotNil(t, e.bookings.created)
	assert.Equal(t, 40.00, e.bookings.created.Price)

	// Нотификация ушла после коммита
	require.Len(t, e.notifier.confirmed, 1)
	assert.Equal(t, int64(42), e.notifier.confirmed[0].ID)
}

func TestExecute_IntervalValidation(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"начало в прошлом", testNow.Add(-time.Minute), testNow.Add(time.Hour)},
		{"конец равен началу", testNow.Add(time.Hour), testNow.Add(time.Hour)},
		{"конец раньше начала", testNow.Add(2 * time.Hour), testNow.Add(time.Hour)},
		{"секунда сверх лимита", testNow.Add(time.Hour), testNow.Add(13*time.Hour + time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			req := validRequest()
			req.StartTime = tt.start
			req.EndTime = tt.end

			_, err := e.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInterval)
			assert.Nil(t, e.bookings.created)
		})
	}
}

func TestExecute_ExactlyTwelveHoursAllowed(t *testing.T) {
	e := newEnv()
	req := validRequest()
	req.StartTime = testNow.Add(time.Hour)
	req.EndTime = req.StartTime.Add(12 * time.Hour)

	_, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
}

func TestExecute_RoomNotFound(t *testing.T) {
	e := newEnv()
	req := validRequest()
	req.RoomID = 99

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_ConflictRejected(t *testing.T) {
	e := newEnv()
	e.bookings.existing = []*domain.Booking{
		{ID: 1, RoomID: 1, StartTime: testNow.Add(2 * time.Hour), EndTime: testNow.Add(4 * time.Hour)},
	}

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.Nil(t, e.bookings.created)
	assert.Empty(t, e.notifier.confirmed)
}

func TestExecute_BackToBackAllowed(t *testing.T) {
	e := newEnv()
	// Существующая бронь заканчивается ровно в момент начала новой
	e.bookings.existing = []*domain.Booking{
		{ID: 1, RoomID: 1, StartTime: testNow.Add(-time.Hour), EndTime: testNow.Add(time.Hour)},
	}

	_, err := e.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
}

func TestExecute_SubscriptionChecks(t *testing.T) {
	activeSub := &domain.UserSubscription{
		ID: 5, UserID: 7,
		StartDate: domain.DateOnly(testNow).AddDate(0, 0, -3),
		EndDate:   domain.DateOnly(testNow).AddDate(0, 0, 4),
	}
	foreignSub := &domain.UserSubscription{
		ID: 6, UserID: 8,
		StartDate: activeSub.StartDate,
		EndDate:   activeSub.EndDate,
	}
	expiredSub := &domain.UserSubscription{
		ID: 7, UserID: 7,
		StartDate: domain.DateOnly(testNow).AddDate(0, 0, -20),
		EndDate:   domain.DateOnly(testNow).AddDate(0, 0, -10),
	}

	t.Run("активная подписка даёт нулевую цену", func(t *testing.T) {
		e := newEnv()
		e.subs.subs[5] = activeSub
		req := validRequest()
		req.SubscriptionID = ptr.Ptr(int64(5))

		resp, err := e.uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Zero(t, resp.Price)
		require.NotNil(t, e.resolver.gotSub)
		assert.Equal(t, int64(5), e.resolver.gotSub.ID)
	})

	t.Run("несуществующая подписка", func(t *testing.T) {
		e := newEnv()
		req := validRequest()
		req.SubscriptionID = ptr.Ptr(int64(404))

		_, err := e.uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidSubscription)
	})

	t.Run("чужая подписка", func(t *testing.T) {
		e := newEnv()
		e.subs.subs[6] = foreignSub
		req := validRequest()
		req.SubscriptionID = ptr.Ptr(int64(6))

		_, err := e.uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidSubscription)
	})

	t.Run("истёкшая подписка", func(t *testing.T) {
		e := newEnv()
		e.subs.subs[7] = expiredSub
		req := validRequest()
		req.SubscriptionID = ptr.Ptr(int64(7))

		_, err := e.uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidSubscription)
		assert.Nil(t, e.bookings.created)
	})
}

func TestExecute_TariffNotConfigured(t *testing.T) {
	e := newEnv()
	e.resolver.err = pricing.ErrTariffNotConfigured

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrTariffNotConfigured)
	assert.Nil(t, e.bookings.created)
}

func TestExecute_SerializationRaceLoserGetsRoomUnavailable(t *testing.T) {
	e := newEnv()
	e.tx.err = &pq.Error{Code: "40001"}

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestExecute_NotifierFailureDoesNotFailBooking(t *testing.T) {
	e := newEnv()
	e.notifier.err = errors.New("broker unreachable")

	resp, err := e.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}

func TestExecute_InputValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"нулевой userID", func(r *Request) { r.UserID = 0 }},
		{"отрицательный roomID", func(r *Request) { r.RoomID = -1 }},
		{"пустое время начала", func(r *Request) { r.StartTime = time.Time{} }},
		{"нулевой subscriptionID", func(r *Request) { r.SubscriptionID = ptr.Ptr(int64(0)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			req := validRequest()
			tt.mutate(req)

			_, err := e.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
