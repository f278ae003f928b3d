package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coworking-lounge/zone-service/internal/domain"
	catalogRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/catalog"
	"github.com/coworking-lounge/zone-service/internal/infra/storage/handoff"
	subscriptionRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/subscription"
	"github.com/coworking-lounge/zone-service/internal/integrations/paymentgateway"
	"github.com/coworking-lounge/zone-service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  *domain.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	stored := *b
	stored.ID = 42
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

type fakeLedger struct {
	subs   map[int64]*domain.UserSubscription
	active *domain.UserSubscription
}

func (f *fakeLedger) GetByID(ctx context.Context, id int64) (*domain.UserSubscription, error) {
	sub, ok := f.subs[id]
	if !ok {
		return nil, subscriptionRepo.ErrSubscriptionNotFound
	}
	return sub, nil
}

func (f *fakeLedger) GetActiveByUser(ctx context.Context, userID int64, at time.Time) (*domain.UserSubscription, error) {
	if f.active == nil || f.active.UserID != userID {
		return nil, subscriptionRepo.ErrSubscriptionNotFound
	}
	return f.active, nil
}

type fakeResolver struct{ price float64 }

func (f *fakeResolver) Resolve(ctx context.Context, room *domain.Room, start, end time.Time, sub *domain.UserSubscription) (float64, error) {
	if sub != nil {
		return 0, nil
	}
	return f.price, nil
}

type fakeHandoffRepo struct {
	stored  map[string]*handoff.PendingBooking
	deleted []string
}

func (f *fakeHandoffRepo) Create(ctx context.Context, pending *handoff.PendingBooking) error {
	f.stored[pending.ID] = pending
	return nil
}

func (f *fakeHandoffRepo) GetByID(ctx context.Context, id string) (*handoff.PendingBooking, error) {
	pending, ok := f.stored[id]
	if !ok {
		return nil, handoff.ErrHandoffNotFound
	}
	return pending, nil
}

func (f *fakeHandoffRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.stored[id]; !ok {
		return handoff.ErrHandoffNotFound
	}
	delete(f.stored, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeGateway struct {
	sessions int
	err      error
}

func (f *fakeGateway) CreateSession(ctx context.Context, amount float64, metadata map[string]string) (*paymentgateway.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sessions++
	return &paymentgateway.Session{
		ID:          "sess-1",
		RedirectURL: "https://pay.example/sess-1",
	}, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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
	ledger   *fakeLedger
	resolver *fakeResolver
	handoffs *fakeHandoffRepo
	gateway  *fakeGateway
	notifier *fakeNotifier
	uc       *UseCase
}

var testNow = time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)

func newEnv() *env {
	e := &env{
		bookings: &fakeBookingRepo{},
		ledger:   &fakeLedger{subs: map[int64]*domain.UserSubscription{}},
		resolver: &fakeResolver{price: 40.00},
		handoffs: &fakeHandoffRepo{stored: map[string]*handoff.PendingBooking{}},
		gateway:  &fakeGateway{},
		notifier: &fakeNotifier{},
	}
	rooms := &fakeRooms{rooms: map[int64]*domain.Room{
		1: {ID: 1, Title: "Зал 1", Type: domain.RoomTypeStandard},
	}}
	e.uc = NewUseCase(e.bookings, rooms, e.ledger, e.resolver, e.handoffs, e.gateway,
		passthroughTx{}, e.notifier, nopLogger{}).
		WithTimeProvider(fixedTime{now: testNow})
	return e
}

func validRequest() *Request {
	return &Request{
		UserID:    7,
		RoomID:    1,
		StartTime: testNow.Add(time.Hour),
		EndTime:   testNow.Add(3 * time.Hour),
	}
}

func activeSub() *domain.UserSubscription {
	return &domain.UserSubscription{
		ID:        5,
		UserID:    7,
		StartDate: domain.DateOnly(testNow).AddDate(0, 0, -3),
		EndDate:   domain.DateOnly(testNow).AddDate(0, 0, 4),
	}
}

func TestExecute_PaidBookingGoesThroughGateway(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Nil(t, resp.Booking)
	require.NotNil(t, resp.Payment)
	assert.Equal(t, "sess-1", resp.Payment.SessionID)
	assert.Equal(t, "https://pay.example/sess-1", resp.Payment.RedirectURL)
	assert.Equal(t, 40.00, resp.Payment.Amount)
	assert.NotEmpty(t, resp.Payment.HandoffID)

	// Бронь не зафиксирована, заявка сохранена
	assert.Nil(t, e.bookings.created)
	assert.Len(t, e.handoffs.stored, 1)
	assert.Empty(t, e.notifier.confirmed)
}

func TestExecute_SubscriptionCoveredCommitsImmediately(t *testing.T) {
	e := newEnv()
	e.ledger.subs[5] = activeSub()
	req := validRequest()
	req.SubscriptionID = ptr.Ptr(int64(5))

	resp, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, resp.Booking)
	assert.Nil(t, resp.Payment)
	assert.Zero(t, resp.Booking.Price)
	assert.Equal(t, int64(42), resp.Booking.ID)

	// Шлюз не вызывался, нотификация ушла
	assert.Zero(t, e.gateway.sessions)
	require.Len(t, e.notifier.confirmed, 1)
}

func TestExecute_NotifyFailureDoesNotFailBooking(t *testing.T) {
	e := newEnv()
	e.ledger.subs[5] = activeSub()
	e.notifier.err = errors.New("mq down")
	req := validRequest()
	req.SubscriptionID = ptr.Ptr(int64(5))

	resp, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, int64(42), resp.Booking.ID)
}

func TestExecute_ActiveSubscriptionAutoAttached(t *testing.T) {
	e := newEnv()
	e.ledger.active = activeSub()

	resp, err := e.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotNil(t, resp.Booking)
	require.NotNil(t, resp.Booking.SubscriptionID)
	assert.Equal(t, int64(5), *resp.Booking.SubscriptionID)
	assert.Zero(t, resp.Booking.Price)
}

func TestExecute_ConflictCheckedBeforeGateway(t *testing.T) {
	e := newEnv()
	e.bookings.existing = []*domain.Booking{
		{ID: 1, RoomID: 1, StartTime: testNow.Add(2 * time.Hour), EndTime: testNow.Add(4 * time.Hour)},
	}

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.Zero(t, e.gateway.sessions)
	assert.Empty(t, e.handoffs.stored)
}

func TestExecute_GatewayRejection(t *testing.T) {
	e := newEnv()
	e.gateway.err = paymentgateway.ErrSessionRejected

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrPaymentRejected)
	assert.Empty(t, e.handoffs.stored)
}

func TestCommitPending_Success(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	handoffID := resp.Payment.HandoffID

	committed, err := e.uc.CommitPending(context.Background(), handoffID)

	require.NoError(t, err)
	require.NotNil(t, committed.Booking)
	assert.Equal(t, int64(42), committed.Booking.ID)
	assert.Equal(t, 40.00, committed.Booking.Price)

	// Заявка удалена, нотификация ушла
	assert.Empty(t, e.handoffs.stored)
	require.Len(t, e.notifier.confirmed, 1)
}

func TestCommitPending_RaceLoserGetsRoomUnavailable(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Пока шла оплата, интервал занял кто-то другой
	e.bookings.existing = []*domain.Booking{
		{ID: 9, RoomID: 1, StartTime: testNow.Add(time.Hour), EndTime: testNow.Add(2 * time.Hour)},
	}

	_, err = e.uc.CommitPending(context.Background(), resp.Payment.HandoffID)

	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.Nil(t, e.bookings.created)
	// Заявка остаётся: повторная оплата не потребуется при разборе вручную
	assert.Len(t, e.handoffs.stored, 1)
}

func TestCommitPending_NotFound(t *testing.T) {
	e := newEnv()

	_, err := e.uc.CommitPending(context.Background(), "deadbeef")

	assert.ErrorIs(t, err, ErrHandoffNotFound)
}

func TestExecute_RoomNotFound(t *testing.T) {
	e := newEnv()
	req := validRequest()
	req.RoomID = 99

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_ForeignSubscriptionRejected(t *testing.T) {
	e := newEnv()
	foreign := activeSub()
	foreign.UserID = 8
	e.ledger.subs[5] = foreign
	req := validRequest()
	req.SubscriptionID = ptr.Ptr(int64(5))

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidSubscription)
}
