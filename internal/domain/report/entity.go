package report

import "time"

type DailyReport struct {
	ID           string    `json:"id"`
	ReportDate   time.Time `json:"-"`
	TotalPresent int       `json:"total_present"`
	TotalLate    int       `json:"total_late"`
	TotalAbsent  int       `json:"total_absent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type WeeklyReport struct {
	ID           string    `json:"id"`
	WeekStart    time.Time `json:"-"`
	WeekEnd      time.Time `json:"-"`
	TotalPresent int       `json:"total_present"`
	TotalLate    int       `json:"total_late"`
	TotalAbsent  int       `json:"total_absent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type MonthlyReport struct {
	ID           string    `json:"id"`
	Month        string    `json:"month"` // YYYY-MM
	TotalPresent int       `json:"total_present"`
	TotalLate    int       `json:"total_late"`
	TotalAbsent  int       `json:"total_absent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AttendanceCount tallies attendance rows in a date window.
type AttendanceCount struct {
	Present int
	Late    int
	Total   int
}

// AttendanceRow is an attendance record joined with its owner, used by the ad-hoc report.
type AttendanceRow struct {
	UserID       string
	Username     string
	FirstName    string
	LastName     string
	Department   string
	Position     string
	Status       string
	WorkDuration *int
}
