package get_booking

import (
	"context"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

type BookingService interface {
	GetByID(ctx context.Context, id, requesterID int64, isStaff bool) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
