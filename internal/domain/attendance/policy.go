package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/utils"
)

const (
	NotesOnTime        = "Hadir tepat waktu"
	notesLateFmt       = "Terlambat %d menit"
	AutoCheckoutMarker = "auto"
)

// Policy holds the wall-clock rules of a working day in one named timezone.
type Policy struct {
	Location        *time.Location
	WorkStartHour   int
	WorkStartMinute int
	CutoffHour      int
	CutoffMinute    int
}

// Today returns midnight of now's calendar day in the policy timezone.
func (p Policy) Today(now time.Time) time.Time {
	return utils.DateOf(now, p.Location)
}

// WorkStart returns the lateness threshold on day.
func (p Policy) WorkStart(day time.Time) time.Time {
	return utils.AtClock(day, p.WorkStartHour, p.WorkStartMinute, p.Location)
}

// Cutoff returns the auto-checkout moment on day.
func (p Policy) Cutoff(day time.Time) time.Time {
	return utils.AtClock(day, p.CutoffHour, p.CutoffMinute, p.Location)
}

// Classify decides the status of a check-in at t: present on or before the
// work start, late afterwards with the whole minutes of lateness in the notes.
func (p Policy) Classify(t time.Time) (Status, string, int) {
	start := p.WorkStart(t)
	if !t.After(start) {
		return StatusPresent, NotesOnTime, 0
	}
	lateMinutes := utils.WholeMinutes(t.Sub(start))
	return StatusLate, fmt.Sprintf(notesLateFmt, lateMinutes), lateMinutes
}

// AutoCheckoutSpec renders the cutoff as a daily cron expression.
func (p Policy) AutoCheckoutSpec() string {
	return fmt.Sprintf("%d %d * * *", p.CutoffMinute, p.CutoffHour)
}
