package purchase_subscription

import (
	"context"

	purchaseSubscription "github.com/coworking-lounge/zone-service/internal/usecase/purchase_subscription"
)

type PurchaseSubscriptionUseCase interface {
	Execute(ctx context.Context, req *purchaseSubscription.Request) (*purchaseSubscription.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
