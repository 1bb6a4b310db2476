package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn   = errors.New("user already checked in today")
	ErrCheckInRequired    = errors.New("user has not checked in today")
	ErrAlreadyCheckedOut  = errors.New("user already checked out today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
