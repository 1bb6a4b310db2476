package report

import "errors"

var (
	ErrDailyReportNotFound   = errors.New("no daily report found")
	ErrWeeklyReportNotFound  = errors.New("no weekly report found")
	ErrMonthlyReportNotFound = errors.New("no monthly report found")
	ErrInvalidDateRange      = errors.New("end date must not be before start date")
)
