package create_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coworking-lounge/zone-service/internal/api/middleware"
	createBooking "github.com/coworking-lounge/zone-service/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubUseCase struct {
	resp *createBooking.Response
	err  error
	got  *createBooking.Request
}

func (s *stubUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newRouter(uc *stubUseCase) *mux.Router {
	h := NewHandler(uc, nopLogger{})
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/bookings", h.Handle).Methods(http.MethodPost)
	return r
}

func doRequest(t *testing.T, router *mux.Router, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"roomId":1,"startTime":"2026-09-10T10:00:00Z","endTime":"2026-09-10T12:00:00Z"}`

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:        42,
		UserID:    7,
		RoomID:    1,
		StartTime: time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC),
		Price:     40.00,
	}}
	router := newRouter(uc)

	rec := doRequest(t, router, validBody, map[string]string{"X-User-ID": "7"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":42`)
	assert.Contains(t, rec.Body.String(), `"price":40`)

	// UserID берётся из заголовка, а не из тела
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(7), uc.got.UserID)
}

func TestHandle_MissingUserHeader(t *testing.T) {
	router := newRouter(&stubUseCase{})

	rec := doRequest(t, router, validBody, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"занятый интервал", createBooking.ErrRoomUnavailable, http.StatusConflict},
		{"комната не найдена", createBooking.ErrRoomNotFound, http.StatusNotFound},
		{"некорректный интервал", createBooking.ErrInvalidInterval, http.StatusBadRequest},
		{"недействительная подписка", createBooking.ErrInvalidSubscription, http.StatusBadRequest},
		{"нет тарифа", createBooking.ErrTariffNotConfigured, http.StatusUnprocessableEntity},
		{"внутренняя ошибка", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&stubUseCase{err: tt.err})

			rec := doRequest(t, router, validBody, map[string]string{"X-User-ID": "7"})

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_MalformedBody(t *testing.T) {
	router := newRouter(&stubUseCase{})

	rec := doRequest(t, router, `{"roomId":`, map[string]string{"X-User-ID": "7"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_BadTimeFormat(t *testing.T) {
	router := newRouter(&stubUseCase{})

	body := `{"roomId":1,"startTime":"10:00","endTime":"12:00"}`
	rec := doRequest(t, router, body, map[string]string{"X-User-ID": "7"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
