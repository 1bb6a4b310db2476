package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/utils"
)

// ReportSchedule holds the cron expressions of the rollup jobs.
type ReportSchedule struct {
	Daily   string
	Weekly  string
	Monthly string
}

// ReportJobs rolls up the previous completed day, week and month.
type ReportJobs struct {
	reportService report.ReportService
	schedule      ReportSchedule
	loc           *time.Location
	now           func() time.Time
}

func NewReportJobs(reportService report.ReportService, schedule ReportSchedule, loc *time.Location) *ReportJobs {
	return &ReportJobs{
		reportService: reportService,
		schedule:      schedule,
		loc:           loc,
		now:           time.Now,
	}
}

// RegisterJobs registers all report-related cron jobs
func (j *ReportJobs) RegisterJobs(scheduler *Scheduler) error {
	if err := scheduler.AddJob("daily_report", j.schedule.Daily, j.DailyReport); err != nil {
		return err
	}
	if err := scheduler.AddJob("weekly_report", j.schedule.Weekly, j.WeeklyReport); err != nil {
		return err
	}
	return scheduler.AddJob("monthly_report", j.schedule.Monthly, j.MonthlyReport)
}

// DailyReport rolls up yesterday.
func (j *ReportJobs) DailyReport(ctx context.Context) error {
	yesterday := utils.DateOf(j.now(), j.loc).AddDate(0, 0, -1)
	if _, err := j.reportService.GenerateDaily(ctx, yesterday); err != nil {
		return fmt.Errorf("daily report for %s: %w", yesterday.Format(utils.DateLayout), err)
	}
	return nil
}

// WeeklyReport rolls up the previous Monday to Sunday week.
func (j *ReportJobs) WeeklyReport(ctx context.Context) error {
	weekStart := utils.WeekStart(j.now(), j.loc).AddDate(0, 0, -7)
	if _, err := j.reportService.GenerateWeekly(ctx, weekStart); err != nil {
		return fmt.Errorf("weekly report for %s: %w", weekStart.Format(utils.DateLayout), err)
	}
	return nil
}

// MonthlyReport rolls up the previous calendar month.
func (j *ReportJobs) MonthlyReport(ctx context.Context) error {
	month := utils.MonthStart(j.now(), j.loc).AddDate(0, -1, 0)
	if _, err := j.reportService.GenerateMonthly(ctx, month); err != nil {
		return fmt.Errorf("monthly report for %s: %w", month.Format(utils.MonthLayout), err)
	}
	return nil
}
