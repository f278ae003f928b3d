package purchase_subscription

import (
	"errors"
	"net/http"

	"github.com/coworking-lounge/zone-service/internal/api/handlers"
	"github.com/coworking-lounge/zone-service/internal/api/middleware"
	purchaseSubscription "github.com/coworking-lounge/zone-service/internal/usecase/purchase_subscription"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPlanNotFound       = "тарифный план не найден"
	msgStartDateInPast    = "дата начала подписки в прошлом"
)

type Handler struct {
	useCase PurchaseSubscriptionUseCase
	logger  Logger
}

func NewHandler(useCase PurchaseSubscriptionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/subscriptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /subscriptions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PurchaseSubscriptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /subscriptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /subscriptions - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, purchaseSubscription.ErrPlanNotFound):
			h.logger.Warn("POST /subscriptions - Plan not found: plan_id=%d", req.PlanID)
			handlers.RespondNotFound(w, msgPlanNotFound)

		case errors.Is(err, purchaseSubscription.ErrStartDateInPast):
			h.logger.Warn("POST /subscriptions - Start date in past: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgStartDateInPast)

		case errors.Is(err, purchaseSubscription.ErrInvalidInput):
			h.logger.Warn("POST /subscriptions - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /subscriptions - Failed to purchase subscription: user_id=%d, plan_id=%d, error=%v",
				userID, req.PlanID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Extended {
		status = http.StatusOK
	}

	h.logger.Info("POST /subscriptions - Subscription processed: subscription_id=%d, user_id=%d, extended=%t",
		result.ID, userID, result.Extended)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
