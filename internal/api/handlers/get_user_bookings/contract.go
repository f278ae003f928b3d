package get_user_bookings

import (
	"context"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

type BookingService interface {
	GetUserBookings(ctx context.Context, userID, requesterID int64, isStaff bool) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
