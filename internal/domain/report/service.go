package report

import (
	"context"
	"time"
)

// ReportService defines the interface for report generation
type ReportService interface {
	// Scheduled rollups
	GenerateDaily(ctx context.Context, day time.Time) (DailyReport, error)
	GenerateWeekly(ctx context.Context, weekStart time.Time) (WeeklyReport, error)
	GenerateMonthly(ctx context.Context, month time.Time) (MonthlyReport, error)

	// Admin reads
	GetDashboard(ctx context.Context) (DashboardResponse, error)
	GetLatestDaily(ctx context.Context) (DailyReport, error)
	GetLatestWeekly(ctx context.Context) (WeeklyReport, error)
	GetLatestMonthly(ctx context.Context) (MonthlyReport, error)

	// Ad-hoc department/employee breakdown
	GenerateAttendanceReport(ctx context.Context, req AttendanceReportRequest) (AttendanceReport, error)
}
