package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	policy         attendance.Policy
	now            func() time.Time
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, policy attendance.Policy) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		policy:         policy,
		now:            time.Now,
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	now := a.now()
	today := a.policy.Today(now)

	// A row for today, with or without a check-in, blocks a second insert.
	_, err := a.attendanceRepo.GetByUserAndDate(ctx, userID, today)
	switch {
	case err == nil:
		return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
	case !errors.Is(err, attendance.ErrAttendanceNotFound):
		return attendance.CheckInResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	status, notes, _ := a.policy.Classify(now)

	newAttendance := attendance.Attendance{
		UserID:          userID,
		Date:            today,
		CheckInTime:     &now,
		CheckInLocation: req.Location,
		CheckInIP:       optionalString(req.IP),
		CheckInDevice:   optionalString(req.Device),
		Status:          status,
		Notes:           &notes,
	}

	created, err := a.attendanceRepo.Create(ctx, newAttendance)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.CheckInResponse{}, err
		}
		return attendance.CheckInResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return attendance.CheckInResponse{
		ID:          created.ID,
		Date:        created.Date.Format(utils.DateLayout),
		CheckInTime: utils.FormatDateTime(*created.CheckInTime, a.policy.Location),
		Location:    created.CheckInLocation,
		IP:          created.CheckInIP,
		Device:      created.CheckInDevice,
		Status:      created.Status,
		Notes:       created.Notes,
	}, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	now := a.now()
	today := a.policy.Today(now)

	existing, err := a.attendanceRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.CheckOutResponse{}, attendance.ErrCheckInRequired
		}
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if !existing.HasCheckedIn() {
		return attendance.CheckOutResponse{}, attendance.ErrCheckInRequired
	}
	if existing.HasCheckedOut() {
		return attendance.CheckOutResponse{}, attendance.ErrAlreadyCheckedOut
	}

	workDuration := utils.WholeMinutes(now.Sub(*existing.CheckInTime))
	checkOutType := attendance.CheckOutManual

	existing.CheckOutTime = &now
	existing.CheckOutLocation = req.Location
	existing.CheckOutIP = optionalString(req.IP)
	existing.CheckOutDevice = optionalString(req.Device)
	existing.WorkDuration = &workDuration
	existing.CheckOutType = &checkOutType

	updated, err := a.attendanceRepo.CheckOut(ctx, existing)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.CheckOutResponse{}, err
		}
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	return attendance.CheckOutResponse{
		ID:           updated.ID,
		Date:         updated.Date.Format(utils.DateLayout),
		CheckInTime:  utils.FormatDateTime(*updated.CheckInTime, a.policy.Location),
		CheckOutTime: utils.FormatDateTime(*updated.CheckOutTime, a.policy.Location),
		WorkDuration: workDuration,
		Duration:     utils.FormatDuration(workDuration),
		Location:     updated.CheckOutLocation,
		IP:           updated.CheckOutIP,
		Device:       updated.CheckOutDevice,
		CheckOutType: checkOutType,
	}, nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, userID string) (attendance.TodayResponse, error) {
	today := a.policy.Today(a.now())

	existing, err := a.attendanceRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.NewTodayResponse(today, nil, a.policy.Location), nil
		}
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	return attendance.NewTodayResponse(today, &existing, a.policy.Location), nil
}

// GetHistory implements attendance.AttendanceService.
// A page past the last one yields an empty list with the real total.
func (a *AttendanceServiceImpl) GetHistory(ctx context.Context, userID string, filter attendance.HistoryFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	offset := pageOffset(filter.Page, filter.Limit)

	records, total, err := a.attendanceRepo.ListByUser(ctx, userID, filter.Limit, offset)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r, a.policy.Location))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("0 of %d", total)
	if int64(offset) < total {
		showing = fmt.Sprintf("%d-%d of %d", offset+1, int64(offset)+int64(len(records)), total)
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// pageOffset returns the row offset of page, saturating at math.MaxInt.
func pageOffset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// AutoCheckout implements attendance.AttendanceService.
// Failures on individual records are logged and skipped; the count covers closed records only.
func (a *AttendanceServiceImpl) AutoCheckout(ctx context.Context) (int, error) {
	today := a.policy.Today(a.now())
	cutoff := a.policy.Cutoff(today)

	open, err := a.attendanceRepo.ListOpenByDate(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list open attendance: %w", err)
	}

	closed := 0
	for _, record := range open {
		checkOutTime := cutoff
		if checkOutTime.Before(*record.CheckInTime) {
			checkOutTime = *record.CheckInTime
		}
		workDuration := utils.WholeMinutes(checkOutTime.Sub(*record.CheckInTime))
		checkOutType := attendance.CheckOutAuto
		marker := attendance.AutoCheckoutMarker

		record.CheckOutTime = &checkOutTime
		record.CheckOutIP = &marker
		record.CheckOutDevice = &marker
		record.WorkDuration = &workDuration
		record.CheckOutType = &checkOutType

		if _, err := a.attendanceRepo.CheckOut(ctx, record); err != nil {
			if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
				continue
			}
			slog.Error("auto checkout failed", "attendance_id", record.ID, "user_id", record.UserID, "error", err)
			continue
		}
		closed++
	}

	slog.Info("auto checkout completed", "date", today.Format(utils.DateLayout), "open", len(open), "closed", closed)
	return closed, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
