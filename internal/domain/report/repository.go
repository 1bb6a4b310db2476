package report

import (
	"context"
	"time"
)

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	// Rollups are keyed by period; upserting the same period replaces its counts.
	UpsertDaily(ctx context.Context, r DailyReport) (DailyReport, error)
	UpsertWeekly(ctx context.Context, r WeeklyReport) (WeeklyReport, error)
	UpsertMonthly(ctx context.Context, r MonthlyReport) (MonthlyReport, error)

	// Latest* return the matching Err*ReportNotFound when no row exists.
	LatestDaily(ctx context.Context) (DailyReport, error)
	LatestWeekly(ctx context.Context) (WeeklyReport, error)
	LatestMonthly(ctx context.Context) (MonthlyReport, error)

	// CountAttendance tallies rows dated within [start, end] (calendar dates, inclusive).
	CountAttendance(ctx context.Context, start, end time.Time) (AttendanceCount, error)

	// ListAttendanceRows joins rows dated within [start, end] with their users.
	ListAttendanceRows(ctx context.Context, start, end time.Time, department *string) ([]AttendanceRow, error)
}
