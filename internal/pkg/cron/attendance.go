package cron

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/attendance"
)

// AttendanceJobs contains attendance-related cron jobs
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	policy            attendance.Policy
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, policy attendance.Policy) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		policy:            policy,
	}
}

// RegisterJobs schedules the auto-checkout at the policy cutoff.
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob("auto_checkout", j.policy.AutoCheckoutSpec(), j.AutoCheckout)
}

// AutoCheckout closes every record of today still missing a check-out.
func (j *AttendanceJobs) AutoCheckout(ctx context.Context) error {
	slog.Info("Cron: Starting auto checkout job")

	closed, err := j.attendanceService.AutoCheckout(ctx)
	if err != nil {
		return fmt.Errorf("auto checkout: %w", err)
	}

	slog.Info("Cron: Auto checkout job completed", "closed_count", closed)
	return nil
}
