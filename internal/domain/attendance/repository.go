package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// GetByUserAndDate returns ErrAttendanceNotFound when the user has no row for date.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (Attendance, error)
	// Create returns ErrAlreadyCheckedIn when a row for (user, date) already exists.
	Create(ctx context.Context, a Attendance) (Attendance, error)
	// CheckOut writes the check-out side only if the row is checked in and still open;
	// otherwise it returns ErrAlreadyCheckedOut.
	CheckOut(ctx context.Context, a Attendance) (Attendance, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Attendance, int64, error)
	ListOpenByDate(ctx context.Context, date time.Time) ([]Attendance, error)
}
