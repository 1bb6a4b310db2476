package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
)

type CheckOutType string

const (
	CheckOutManual  CheckOutType = "manual"
	CheckOutAuto    CheckOutType = "auto"
	CheckOutMissing CheckOutType = "missing"
)

// Location is the geolocation payload sent with a check-in or check-out.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Attendance is one user's record for one calendar day.
type Attendance struct {
	ID               string
	UserID           string
	Date             time.Time // midnight of the local calendar day
	CheckInTime      *time.Time
	CheckOutTime     *time.Time
	CheckInLocation  *Location
	CheckOutLocation *Location
	CheckInIP        *string
	CheckOutIP       *string
	CheckInDevice    *string
	CheckOutDevice   *string
	WorkDuration     *int // minutes
	Status           Status
	CheckOutType     *CheckOutType
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (a *Attendance) HasCheckedIn() bool {
	return a.CheckInTime != nil
}

func (a *Attendance) HasCheckedOut() bool {
	return a.CheckOutTime != nil
}
