package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/utils"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
	userRepo   user.UserRepository
}

func NewReportService(reportRepo report.ReportRepository, userRepo user.UserRepository) report.ReportService {
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		userRepo:   userRepo,
	}
}

// GenerateDaily implements report.ReportService.
func (s *ReportServiceImpl) GenerateDaily(ctx context.Context, day time.Time) (report.DailyReport, error) {
	activeUsers, err := s.userRepo.CountActive(ctx)
	if err != nil {
		return report.DailyReport{}, err
	}

	count, err := s.reportRepo.CountAttendance(ctx, day, day)
	if err != nil {
		return report.DailyReport{}, err
	}

	saved, err := s.reportRepo.UpsertDaily(ctx, report.DailyReport{
		ReportDate:   day,
		TotalPresent: count.Present,
		TotalLate:    count.Late,
		TotalAbsent:  floorZero(activeUsers - count.Total),
	})
	if err != nil {
		return report.DailyReport{}, err
	}

	slog.Info("daily report generated", "date", day.Format(utils.DateLayout),
		"present", saved.TotalPresent, "late", saved.TotalLate, "absent", saved.TotalAbsent)
	return saved, nil
}

// GenerateWeekly implements report.ReportService.
func (s *ReportServiceImpl) GenerateWeekly(ctx context.Context, weekStart time.Time) (report.WeeklyReport, error) {
	weekEnd := weekStart.AddDate(0, 0, 6)

	present, late, absent, err := s.rollup(ctx, weekStart, weekEnd)
	if err != nil {
		return report.WeeklyReport{}, err
	}

	saved, err := s.reportRepo.UpsertWeekly(ctx, report.WeeklyReport{
		WeekStart:    weekStart,
		WeekEnd:      weekEnd,
		TotalPresent: present,
		TotalLate:    late,
		TotalAbsent:  absent,
	})
	if err != nil {
		return report.WeeklyReport{}, err
	}

	slog.Info("weekly report generated", "week_start", weekStart.Format(utils.DateLayout),
		"present", saved.TotalPresent, "late", saved.TotalLate, "absent", saved.TotalAbsent)
	return saved, nil
}

// GenerateMonthly implements report.ReportService.
func (s *ReportServiceImpl) GenerateMonthly(ctx context.Context, month time.Time) (report.MonthlyReport, error) {
	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	present, late, absent, err := s.rollup(ctx, monthStart, monthEnd)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	saved, err := s.reportRepo.UpsertMonthly(ctx, report.MonthlyReport{
		Month:        monthStart.Format(utils.MonthLayout),
		TotalPresent: present,
		TotalLate:    late,
		TotalAbsent:  absent,
	})
	if err != nil {
		return report.MonthlyReport{}, err
	}

	slog.Info("monthly report generated", "month", saved.Month,
		"present", saved.TotalPresent, "late", saved.TotalLate, "absent", saved.TotalAbsent)
	return saved, nil
}

// rollup counts attendance over [start, end]; absent is the expected user-workdays not
// covered by a present or late record.
func (s *ReportServiceImpl) rollup(ctx context.Context, start, end time.Time) (present, late, absent int, err error) {
	activeUsers, err := s.userRepo.CountActive(ctx)
	if err != nil {
		return 0, 0, 0, err
	}

	count, err := s.reportRepo.CountAttendance(ctx, start, end)
	if err != nil {
		return 0, 0, 0, err
	}

	expected := activeUsers * utils.CountWorkdays(start, end)
	return count.Present, count.Late, floorZero(expected - count.Present - count.Late), nil
}

// GetDashboard implements report.ReportService.
func (s *ReportServiceImpl) GetDashboard(ctx context.Context) (report.DashboardResponse, error) {
	var resp report.DashboardResponse

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		daily, err := s.reportRepo.LatestDaily(gCtx)
		if err != nil {
			if errors.Is(err, report.ErrDailyReportNotFound) {
				return nil
			}
			return err
		}
		resp.Daily = &daily
		return nil
	})

	g.Go(func() error {
		weekly, err := s.reportRepo.LatestWeekly(gCtx)
		if err != nil {
			if errors.Is(err, report.ErrWeeklyReportNotFound) {
				return nil
			}
			return err
		}
		resp.Weekly = &weekly
		return nil
	})

	g.Go(func() error {
		monthly, err := s.reportRepo.LatestMonthly(gCtx)
		if err != nil {
			if errors.Is(err, report.ErrMonthlyReportNotFound) {
				return nil
			}
			return err
		}
		resp.Monthly = &monthly
		return nil
	})

	if err := g.Wait(); err != nil {
		return report.DashboardResponse{}, fmt.Errorf("failed to load dashboard: %w", err)
	}

	return resp, nil
}

// GetLatestDaily implements report.ReportService.
func (s *ReportServiceImpl) GetLatestDaily(ctx context.Context) (report.DailyReport, error) {
	return s.reportRepo.LatestDaily(ctx)
}

// GetLatestWeekly implements report.ReportService.
func (s *ReportServiceImpl) GetLatestWeekly(ctx context.Context) (report.WeeklyReport, error) {
	return s.reportRepo.LatestWeekly(ctx)
}

// GetLatestMonthly implements report.ReportService.
func (s *ReportServiceImpl) GetLatestMonthly(ctx context.Context) (report.MonthlyReport, error) {
	return s.reportRepo.LatestMonthly(ctx)
}

// GenerateAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateAttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}
	start, end := req.Range()

	rows, err := s.reportRepo.ListAttendanceRows(ctx, start, end, req.Department)
	if err != nil {
		return report.AttendanceReport{}, fmt.Errorf("failed to get attendance data: %w", err)
	}

	workdays := utils.CountWorkdays(start, end)

	// department -> user id -> tally
	departments := make(map[string]map[string]*report.EmployeeReport)
	for _, row := range rows {
		employees, ok := departments[row.Department]
		if !ok {
			employees = make(map[string]*report.EmployeeReport)
			departments[row.Department] = employees
		}

		emp, ok := employees[row.UserID]
		if !ok {
			fullName := row.FirstName
			if row.LastName != "" {
				fullName += " " + row.LastName
			}
			emp = &report.EmployeeReport{
				UserID:   row.UserID,
				Username: row.Username,
				FullName: fullName,
				Position: row.Position,
			}
			employees[row.UserID] = emp
		}

		switch attendance.Status(row.Status) {
		case attendance.StatusPresent:
			emp.Present++
		case attendance.StatusLate:
			emp.Late++
		}
		if row.WorkDuration != nil {
			emp.TotalWorkDuration += *row.WorkDuration
		}
	}

	result := report.AttendanceReport{
		ReportPeriod: report.ReportPeriod{
			StartDate: start.Format(utils.DateLayout),
			EndDate:   end.Format(utils.DateLayout),
			TotalDays: utils.DaysInclusive(start, end),
			Workdays:  workdays,
		},
		Departments: make([]report.DepartmentReport, 0, len(departments)),
	}

	for name, employees := range departments {
		dept := report.DepartmentReport{
			Department:    name,
			EmployeeCount: len(employees),
			Employees:     make([]report.EmployeeReport, 0, len(employees)),
		}

		for _, emp := range employees {
			attended := emp.Present + emp.Late
			emp.Absent = floorZero(workdays - attended)
			emp.AverageWorkDuration = averageDuration(emp.TotalWorkDuration, attended)

			dept.Present += emp.Present
			dept.Late += emp.Late
			dept.TotalWorkDuration += emp.TotalWorkDuration
			dept.Employees = append(dept.Employees, *emp)
		}

		dept.Absent = floorZero(workdays*dept.EmployeeCount - dept.Present - dept.Late)
		dept.AverageWorkDuration = averageDuration(dept.TotalWorkDuration, dept.Present+dept.Late)
		sort.Slice(dept.Employees, func(i, j int) bool {
			return dept.Employees[i].Username < dept.Employees[j].Username
		})

		result.Departments = append(result.Departments, dept)
	}

	sort.Slice(result.Departments, func(i, j int) bool {
		return result.Departments[i].Department < result.Departments[j].Department
	})

	return result, nil
}

// averageDuration spreads total minutes over attended days.
func averageDuration(totalMinutes, days int) string {
	if days == 0 {
		return utils.FormatDuration(0)
	}
	return utils.FormatDuration(totalMinutes / days)
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
