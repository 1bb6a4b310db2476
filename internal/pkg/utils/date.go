package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout     = time.DateOnly
	DateTimeLayout = time.DateTime
	MonthLayout    = "2006-01"
)

// DateOf returns midnight of t's calendar day in loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// AtClock returns day's calendar date at hour:minute in loc.
func AtClock(day time.Time, hour, minute int, loc *time.Location) time.Time {
	d := day.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, loc)
}

// WeekStart returns the Monday of t's ISO week at midnight in loc.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	d := DateOf(t, loc)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// MonthStart returns the first day of t's month at midnight in loc.
func MonthStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

// DaysInclusive counts calendar days in [start, end]. Returns 0 when end is before start.
func DaysInclusive(start, end time.Time) int {
	s := civil(start)
	e := civil(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// CountWorkdays counts Monday-Friday calendar days in [start, end].
func CountWorkdays(start, end time.Time) int {
	s := civil(start)
	e := civil(end)
	count := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// civil drops the clock and zone so date arithmetic is immune to DST shifts.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WholeMinutes truncates d to whole minutes, never negative.
func WholeMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

// FormatDuration renders minutes as "H jam M menit".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d jam %d menit", minutes/60, minutes%60)
}

// FormatDateTime renders t in loc as "YYYY-MM-DD HH:mm:ss".
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateTimeLayout)
}
