package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/validator"
)

const (
	TodayNotCheckedIn = "Belum check-in"
	TodayCheckedIn    = "Check-in"
	TodayCompleted    = "Selesai"
)

type CheckInRequest struct {
	Location *Location `json:"location,omitempty"`
	IP       string    `json:"-"`
	Device   string    `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors
	validateLocation(&errs, r.Location)
	return errs.Err()
}

type CheckOutRequest struct {
	Location *Location `json:"location,omitempty"`
	IP       string    `json:"-"`
	Device   string    `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors
	validateLocation(&errs, r.Location)
	return errs.Err()
}

func validateLocation(errs *validator.ValidationErrors, loc *Location) {
	if loc == nil {
		return
	}
	if !validator.IsValidLatitude(loc.Lat) {
		errs.Add("location.lat", "lat must be between -90 and 90")
	}
	if !validator.IsValidLongitude(loc.Lng) {
		errs.Add("location.lng", "lng must be between -180 and 180")
	}
}

type CheckInResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	CheckInTime string    `json:"check_in_time"`
	Location    *Location `json:"location"`
	IP          *string   `json:"ip"`
	Device      *string   `json:"device"`
	Status      Status    `json:"status"`
	Notes       *string   `json:"notes"`
}

type CheckOutResponse struct {
	ID           string       `json:"id"`
	Date         string       `json:"date"`
	CheckInTime  string       `json:"check_in_time"`
	CheckOutTime string       `json:"check_out_time"`
	WorkDuration int          `json:"work_duration"`
	Duration     string       `json:"duration"`
	Location     *Location    `json:"location"`
	IP           *string      `json:"ip"`
	Device       *string      `json:"device"`
	CheckOutType CheckOutType `json:"check_out_type"`
}

type TodayTimes struct {
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	Duration     *string `json:"duration"`
}

type TodayDevices struct {
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
}

type TodayLocations struct {
	CheckIn  *Location `json:"check_in"`
	CheckOut *Location `json:"check_out"`
}

type TodayResponse struct {
	Date             string         `json:"date"`
	AttendanceStatus string         `json:"attendance_status"`
	Status           *Status        `json:"status"`
	Notes            *string        `json:"notes"`
	Times            TodayTimes     `json:"times"`
	Devices          TodayDevices   `json:"devices"`
	Locations        TodayLocations `json:"locations"`
}

type HistoryFilter struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = 10
	}
	if f.Page < 1 {
		errs.Add("page", "page must be at least 1")
	}
	if f.Limit < 1 {
		errs.Add("limit", "limit must be at least 1")
	} else if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}

	return errs.Err()
}

type AttendanceResponse struct {
	ID               string        `json:"id"`
	Date             string        `json:"date"`
	CheckInTime      *string       `json:"check_in_time"`
	CheckOutTime     *string       `json:"check_out_time"`
	CheckInLocation  *Location     `json:"check_in_location"`
	CheckOutLocation *Location     `json:"check_out_location"`
	CheckInIP        *string       `json:"check_in_ip"`
	CheckOutIP       *string       `json:"check_out_ip"`
	CheckInDevice    *string       `json:"check_in_device"`
	CheckOutDevice   *string       `json:"check_out_device"`
	WorkDuration     *int          `json:"work_duration"`
	Duration         *string       `json:"duration"`
	Status           Status        `json:"status"`
	CheckOutType     *CheckOutType `json:"check_out_type"`
	Notes            *string       `json:"notes"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// NewAttendanceResponse renders a record with timestamps in loc.
func NewAttendanceResponse(a Attendance, loc *time.Location) AttendanceResponse {
	resp := AttendanceResponse{
		ID:               a.ID,
		Date:             a.Date.Format(utils.DateLayout),
		CheckInTime:      formatOptional(a.CheckInTime, loc),
		CheckOutTime:     formatOptional(a.CheckOutTime, loc),
		CheckInLocation:  a.CheckInLocation,
		CheckOutLocation: a.CheckOutLocation,
		CheckInIP:        a.CheckInIP,
		CheckOutIP:       a.CheckOutIP,
		CheckInDevice:    a.CheckInDevice,
		CheckOutDevice:   a.CheckOutDevice,
		WorkDuration:     a.WorkDuration,
		Status:           a.Status,
		CheckOutType:     a.CheckOutType,
		Notes:            a.Notes,
	}
	if a.WorkDuration != nil {
		d := utils.FormatDuration(*a.WorkDuration)
		resp.Duration = &d
	}
	return resp
}

// NewTodayResponse builds the today snapshot. a is nil when the user has no record.
func NewTodayResponse(today time.Time, a *Attendance, loc *time.Location) TodayResponse {
	resp := TodayResponse{
		Date:             today.Format(utils.DateLayout),
		AttendanceStatus: TodayNotCheckedIn,
	}
	if a == nil || !a.HasCheckedIn() {
		return resp
	}

	status := a.Status
	resp.Status = &status
	resp.Notes = a.Notes
	resp.AttendanceStatus = TodayCheckedIn
	if a.HasCheckedOut() {
		resp.AttendanceStatus = TodayCompleted
	}

	resp.Times = TodayTimes{
		CheckInTime:  formatOptional(a.CheckInTime, loc),
		CheckOutTime: formatOptional(a.CheckOutTime, loc),
	}
	if a.WorkDuration != nil {
		d := fmt.Sprintf("%d menit waktu kerja", *a.WorkDuration)
		resp.Times.Duration = &d
	}
	resp.Devices = TodayDevices{CheckIn: a.CheckInDevice, CheckOut: a.CheckOutDevice}
	resp.Locations = TodayLocations{CheckIn: a.CheckInLocation, CheckOut: a.CheckOutLocation}
	return resp
}

func formatOptional(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := utils.FormatDateTime(*t, loc)
	return &s
}
