package report

import (
	"encoding/json"
	"time"

	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/validator"
)

// maxReportDays bounds the ad-hoc report window.
const maxReportDays = 366

// MarshalJSON renders the period as a calendar date.
func (r DailyReport) MarshalJSON() ([]byte, error) {
	type alias DailyReport
	return json.Marshal(struct {
		alias
		ReportDate string `json:"report_date"`
	}{alias(r), r.ReportDate.Format(utils.DateLayout)})
}

// MarshalJSON renders the period as calendar dates.
func (r WeeklyReport) MarshalJSON() ([]byte, error) {
	type alias WeeklyReport
	return json.Marshal(struct {
		alias
		WeekStart string `json:"week_start"`
		WeekEnd   string `json:"week_end"`
	}{alias(r), r.WeekStart.Format(utils.DateLayout), r.WeekEnd.Format(utils.DateLayout)})
}

type DashboardResponse struct {
	Daily   *DailyReport   `json:"daily"`
	Weekly  *WeeklyReport  `json:"weekly"`
	Monthly *MonthlyReport `json:"monthly"`
}

type AttendanceReportRequest struct {
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Department *string `json:"department,omitempty"`
}

func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if validator.IsEmpty(r.StartDate) {
		errs.Add("start_date", "start_date is required")
	} else if !okStart {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}

	end, okEnd := validator.IsValidDate(r.EndDate)
	if validator.IsEmpty(r.EndDate) {
		errs.Add("end_date", "end_date is required")
	} else if !okEnd {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}

	if okStart && okEnd {
		if end.Before(start) {
			errs.Add("end_date", ErrInvalidDateRange.Error())
		} else if utils.DaysInclusive(start, end) > maxReportDays {
			errs.Add("end_date", "date range must not exceed 366 days")
		}
	}

	if r.Department != nil && validator.IsEmpty(*r.Department) {
		r.Department = nil
	}

	return errs.Err()
}

// Range parses the request dates. Unparseable dates come back as the zero time.
func (r *AttendanceReportRequest) Range() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

type ReportPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	TotalDays int    `json:"total_days"`
	Workdays  int    `json:"workdays"`
}

type EmployeeReport struct {
	UserID              string `json:"user_id"`
	Username            string `json:"username"`
	FullName            string `json:"full_name"`
	Position            string `json:"position"`
	Present             int    `json:"present"`
	Late                int    `json:"late"`
	Absent              int    `json:"absent"`
	TotalWorkDuration   int    `json:"total_work_duration"`
	AverageWorkDuration string `json:"average_work_duration"`
}

type DepartmentReport struct {
	Department          string           `json:"department"`
	EmployeeCount       int              `json:"employee_count"`
	Present             int              `json:"present"`
	Late                int              `json:"late"`
	Absent              int              `json:"absent"`
	TotalWorkDuration   int              `json:"total_work_duration"`
	AverageWorkDuration string           `json:"average_work_duration"`
	Employees           []EmployeeReport `json:"employees"`
}

type AttendanceReport struct {
	ReportPeriod ReportPeriod       `json:"report_period"`
	Departments  []DepartmentReport `json:"departments"`
}

type GenerateDailyRequest struct {
	Date string `json:"date"`
}

func (r *GenerateDailyRequest) Validate() (time.Time, error) {
	d, ok := validator.IsValidDate(r.Date)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return d, nil
}

type GenerateWeeklyRequest struct {
	WeekStart string `json:"week_start"`
}

func (r *GenerateWeeklyRequest) Validate() (time.Time, error) {
	d, ok := validator.IsValidDate(r.WeekStart)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{Field: "week_start", Message: "week_start must be in YYYY-MM-DD format"}}
	}
	if d.Weekday() != time.Monday {
		return time.Time{}, validator.ValidationErrors{{Field: "week_start", Message: "week_start must be a Monday"}}
	}
	return d, nil
}

type GenerateMonthlyRequest struct {
	Month string `json:"month"`
}

func (r *GenerateMonthlyRequest) Validate() (time.Time, error) {
	m, err := time.Parse(utils.MonthLayout, r.Month)
	if err != nil {
		return time.Time{}, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}
	return m, nil
}
