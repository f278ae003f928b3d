package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/coworking-lounge/zone-service/internal/api/handlers"
	"github.com/coworking-lounge/zone-service/internal/api/middleware"
	updateBooking "github.com/coworking-lounge/zone-service/internal/usecase/update_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidBookingID    = "некорректный идентификатор бронирования"
	msgInvalidTime         = "некорректный формат времени, ожидается RFC3339"
	msgBookingNotFound     = "бронирование не найдено"
	msgAccessDenied        = "нет доступа к этому бронированию"
	msgRoomUnavailable     = "комната занята на выбранный интервал"
	msgInvalidInterval     = "некорректный интервал бронирования"
	msgInvalidSubscription = "подписка недействительна для этой брони"
	msgTariffNotConfigured = "для категории комнаты не настроен тариф"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/%d - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, userID)
	if err != nil {
		h.logger.Warn("PUT /bookings/%d - Failed to parse request: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/%d - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/%d - Access denied: user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, updateBooking.ErrRoomUnavailable):
			h.logger.Warn("PUT /bookings/%d - Room unavailable: user_id=%d", bookingID, userID)
			handlers.RespondError(w, http.StatusConflict, msgRoomUnavailable)

		case errors.Is(err, updateBooking.ErrInvalidInterval):
			h.logger.Warn("PUT /bookings/%d - Invalid interval: user_id=%d", bookingID, userID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, updateBooking.ErrInvalidSubscription):
			h.logger.Warn("PUT /bookings/%d - Invalid subscription: user_id=%d", bookingID, userID)
			handlers.RespondBadRequest(w, msgInvalidSubscription)

		case errors.Is(err, updateBooking.ErrTariffNotConfigured):
			h.logger.Error("PUT /bookings/%d - Tariff not configured", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgTariffNotConfigured)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/%d - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /bookings/%d - Failed to update booking: user_id=%d, error=%v",
				bookingID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/%d - Booking updated successfully: user_id=%d, price=%.2f",
		bookingID, userID, result.Price)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
