package payment_callback

import (
	"errors"
	"net/http"

	"github.com/coworking-lounge/zone-service/internal/api/handlers"
	checkoutUseCase "github.com/coworking-lounge/zone-service/internal/usecase/checkout"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingHandoffID   = "в metadata отсутствует handoff_id"
	msgHandoffNotFound    = "платёжная заявка не найдена"
	msgRoomUnavailable    = "комната занята, бронь не зафиксирована"

	statusSucceeded = "succeeded"

	resultCommitted = "committed"
	resultIgnored   = "ignored"
)

type Handler struct {
	useCase CheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/callback
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PaymentCallbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/callback - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Неуспешные оплаты брони не создают; заявка останется без движения
	if req.Status != statusSucceeded {
		h.logger.Info("POST /payments/callback - Ignoring callback with status=%s, session=%s",
			req.Status, req.SessionID)
		handlers.RespondJSON(w, http.StatusOK, PaymentCallbackResponse{Result: resultIgnored})
		return
	}

	handoffID := req.Metadata["handoff_id"]
	if handoffID == "" {
		h.logger.Warn("POST /payments/callback - Missing handoff_id in metadata, session=%s", req.SessionID)
		handlers.RespondBadRequest(w, msgMissingHandoffID)
		return
	}

	result, err := h.useCase.CommitPending(r.Context(), handoffID)
	if err != nil {
		switch {
		case errors.Is(err, checkoutUseCase.ErrHandoffNotFound):
			h.logger.Warn("POST /payments/callback - Handoff not found: handoff=%s", handoffID)
			handlers.RespondNotFound(w, msgHandoffNotFound)

		case errors.Is(err, checkoutUseCase.ErrRoomUnavailable):
			h.logger.Warn("POST /payments/callback - Room no longer available: handoff=%s", handoffID)
			handlers.RespondError(w, http.StatusConflict, msgRoomUnavailable)

		default:
			h.logger.Error("POST /payments/callback - Failed to commit pending booking: handoff=%s, error=%v",
				handoffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/callback - Booking committed: booking_id=%d, handoff=%s",
		result.Booking.ID, handoffID)
	handlers.RespondJSON(w, http.StatusOK, PaymentCallbackResponse{
		BookingID: result.Booking.ID,
		Result:    resultCommitted,
	})
}
