package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens today's record for the user
	CheckIn(ctx context.Context, userID string, req CheckInRequest) (CheckInResponse, error)

	// CheckOut closes today's record for the user
	CheckOut(ctx context.Context, userID string, req CheckOutRequest) (CheckOutResponse, error)

	// GetToday returns the user's attendance snapshot for today
	GetToday(ctx context.Context, userID string) (TodayResponse, error)

	// GetHistory lists the user's records, newest first
	GetHistory(ctx context.Context, userID string, filter HistoryFilter) (ListAttendanceResponse, error)

	// AutoCheckout force-closes today's open records at the cutoff
	AutoCheckout(ctx context.Context) (int, error)
}
