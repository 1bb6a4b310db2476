package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/utils"
	"github.com/jackc/pgx/v5"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// UpsertDaily implements report.ReportRepository.
func (r *reportRepositoryImpl) UpsertDaily(ctx context.Context, d report.DailyReport) (report.DailyReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_report (report_date, total_present, total_late, total_absent)
		VALUES ($1::date, $2, $3, $4)
		ON CONFLICT (report_date) DO UPDATE
		SET total_present = EXCLUDED.total_present,
			total_late = EXCLUDED.total_late,
			total_absent = EXCLUDED.total_absent,
			updated_at = NOW()
		RETURNING id, report_date, total_present, total_late, total_absent, created_at, updated_at
	`

	var out report.DailyReport
	err := q.QueryRow(ctx, query, d.ReportDate.Format(utils.DateLayout), d.TotalPresent, d.TotalLate, d.TotalAbsent).Scan(
		&out.ID, &out.ReportDate, &out.TotalPresent, &out.TotalLate, &out.TotalAbsent, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return report.DailyReport{}, fmt.Errorf("failed to upsert daily report: %w", err)
	}
	return out, nil
}

// UpsertWeekly implements report.ReportRepository.
func (r *reportRepositoryImpl) UpsertWeekly(ctx context.Context, w report.WeeklyReport) (report.WeeklyReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO weekly_report (week_start, week_end, total_present, total_late, total_absent)
		VALUES ($1::date, $2::date, $3, $4, $5)
		ON CONFLICT (week_start) DO UPDATE
		SET week_end = EXCLUDED.week_end,
			total_present = EXCLUDED.total_present,
			total_late = EXCLUDED.total_late,
			total_absent = EXCLUDED.total_absent,
			updated_at = NOW()
		RETURNING id, week_start, week_end, total_present, total_late, total_absent, created_at, updated_at
	`

	var out report.WeeklyReport
	err := q.QueryRow(ctx, query,
		w.WeekStart.Format(utils.DateLayout), w.WeekEnd.Format(utils.DateLayout),
		w.TotalPresent, w.TotalLate, w.TotalAbsent,
	).Scan(&out.ID, &out.WeekStart, &out.WeekEnd, &out.TotalPresent, &out.TotalLate, &out.TotalAbsent, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return report.WeeklyReport{}, fmt.Errorf("failed to upsert weekly report: %w", err)
	}
	return out, nil
}

// UpsertMonthly implements report.ReportRepository.
func (r *reportRepositoryImpl) UpsertMonthly(ctx context.Context, m report.MonthlyReport) (report.MonthlyReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_report (month, total_present, total_late, total_absent)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (month) DO UPDATE
		SET total_present = EXCLUDED.total_present,
			total_late = EXCLUDED.total_late,
			total_absent = EXCLUDED.total_absent,
			updated_at = NOW()
		RETURNING id, month, total_present, total_late, total_absent, created_at, updated_at
	`

	var out report.MonthlyReport
	err := q.QueryRow(ctx, query, m.Month, m.TotalPresent, m.TotalLate, m.TotalAbsent).Scan(
		&out.ID, &out.Month, &out.TotalPresent, &out.TotalLate, &out.TotalAbsent, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to upsert monthly report: %w", err)
	}
	return out, nil
}

// LatestDaily implements report.ReportRepository.
func (r *reportRepositoryImpl) LatestDaily(ctx context.Context) (report.DailyReport, error) {
	q := GetQuerier(ctx, r.db)

	var out report.DailyReport
	err := q.QueryRow(ctx, `
		SELECT id, report_date, total_present, total_late, total_absent, created_at, updated_at
		FROM daily_report
		ORDER BY report_date DESC
		LIMIT 1
	`).Scan(&out.ID, &out.ReportDate, &out.TotalPresent, &out.TotalLate, &out.TotalAbsent, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.DailyReport{}, report.ErrDailyReportNotFound
		}
		return report.DailyReport{}, fmt.Errorf("failed to get latest daily report: %w", err)
	}
	return out, nil
}

// LatestWeekly implements report.ReportRepository.
func (r *reportRepositoryImpl) LatestWeekly(ctx context.Context) (report.WeeklyReport, error) {
	q := GetQuerier(ctx, r.db)

	var out report.WeeklyReport
	err := q.QueryRow(ctx, `
		SELECT id, week_start, week_end, total_present, total_late, total_absent, created_at, updated_at
		FROM weekly_report
		ORDER BY week_start DESC
		LIMIT 1
	`).Scan(&out.ID, &out.WeekStart, &out.WeekEnd, &out.TotalPresent, &out.TotalLate, &out.TotalAbsent, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.WeeklyReport{}, report.ErrWeeklyReportNotFound
		}
		return report.WeeklyReport{}, fmt.Errorf("failed to get latest weekly report: %w", err)
	}
	return out, nil
}

// LatestMonthly implements report.ReportRepository.
func (r *reportRepositoryImpl) LatestMonthly(ctx context.Context) (report.MonthlyReport, error) {
	q := GetQuerier(ctx, r.db)

	var out report.MonthlyReport
	err := q.QueryRow(ctx, `
		SELECT id, month, total_present, total_late, total_absent, created_at, updated_at
		FROM monthly_report
		ORDER BY month DESC
		LIMIT 1
	`).Scan(&out.ID, &out.Month, &out.TotalPresent, &out.TotalLate, &out.TotalAbsent, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.MonthlyReport{}, report.ErrMonthlyReportNotFound
		}
		return report.MonthlyReport{}, fmt.Errorf("failed to get latest monthly report: %w", err)
	}
	return out, nil
}

// CountAttendance implements report.ReportRepository.
func (r *reportRepositoryImpl) CountAttendance(ctx context.Context, start, end time.Time) (report.AttendanceCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'late'),
			COUNT(*)
		FROM attendance
		WHERE date BETWEEN $1::date AND $2::date
	`

	var c report.AttendanceCount
	err := q.QueryRow(ctx, query, start.Format(utils.DateLayout), end.Format(utils.DateLayout)).Scan(&c.Present, &c.Late, &c.Total)
	if err != nil {
		return report.AttendanceCount{}, fmt.Errorf("failed to count attendance: %w", err)
	}
	return c, nil
}

// ListAttendanceRows implements report.ReportRepository.
func (r *reportRepositoryImpl) ListAttendanceRows(ctx context.Context, start, end time.Time, department *string) ([]report.AttendanceRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.username, u.first_name, u.last_name, u.department, u.position,
			   a.status, a.work_duration
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		WHERE a.date BETWEEN $1::date AND $2::date
		  AND ($3::text IS NULL OR u.department = $3)
		ORDER BY u.department, u.username, a.date
	`

	rows, err := q.Query(ctx, query, start.Format(utils.DateLayout), end.Format(utils.DateLayout), department)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance rows: %w", err)
	}
	defer rows.Close()

	var result []report.AttendanceRow
	for rows.Next() {
		var row report.AttendanceRow
		if err := rows.Scan(
			&row.UserID, &row.Username, &row.FirstName, &row.LastName, &row.Department, &row.Position,
			&row.Status, &row.WorkDuration,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
