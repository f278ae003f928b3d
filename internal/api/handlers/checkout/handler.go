package checkout

import (
	"errors"
	"net/http"

	"github.com/coworking-lounge/zone-service/internal/api/handlers"
	"github.com/coworking-lounge/zone-service/internal/api/middleware"
	checkoutUseCase "github.com/coworking-lounge/zone-service/internal/usecase/checkout"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTime         = "некорректный формат времени, ожидается RFC3339"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgRoomNotFound        = "комната не найдена"
	msgRoomUnavailable     = "комната занята на выбранный интервал"
	msgInvalidInterval     = "некорректный интервал бронирования"
	msgInvalidSubscription = "подписка недействительна для этой брони"
	msgTariffNotConfigured = "для категории комнаты не настроен тариф"
	msgPaymentRejected     = "платёжный шлюз отклонил оплату"
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

// Handle POST /api/v1/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /checkout - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /checkout - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkoutUseCase.ErrRoomNotFound):
			h.logger.Warn("POST /checkout - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, checkoutUseCase.ErrRoomUnavailable):
			h.logger.Warn("POST /checkout - Room unavailable: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondError(w, http.StatusConflict, msgRoomUnavailable)

		case errors.Is(err, checkoutUseCase.ErrInvalidInterval):
			h.logger.Warn("POST /checkout - Invalid interval: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, checkoutUseCase.ErrInvalidSubscription):
			h.logger.Warn("POST /checkout - Invalid subscription: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidSubscription)

		case errors.Is(err, checkoutUseCase.ErrTariffNotConfigured):
			h.logger.Error("POST /checkout - Tariff not configured: room_id=%d", req.RoomID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgTariffNotConfigured)

		case errors.Is(err, checkoutUseCase.ErrPaymentRejected):
			h.logger.Warn("POST /checkout - Payment rejected: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentRejected)

		case errors.Is(err, checkoutUseCase.ErrInvalidInput):
			h.logger.Warn("POST /checkout - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /checkout - Checkout failed: user_id=%d, room_id=%d, error=%v",
				userID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Payment != nil {
		// Бронь ещё не зафиксирована, ждём подтверждение оплаты
		status = http.StatusAccepted
	}

	h.logger.Info("POST /checkout - Checkout processed: user_id=%d, room_id=%d, immediate=%t",
		userID, req.RoomID, result.Booking != nil)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
