package payment_callback

import (
	"context"

	checkoutUseCase "github.com/coworking-lounge/zone-service/internal/usecase/checkout"
)

type CheckoutUseCase interface {
	CommitPending(ctx context.Context, handoffID string) (*checkoutUseCase.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
