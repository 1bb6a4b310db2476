package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/presensi-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Ad-hoc department/employee breakdown
	GetAttendanceReport(w http.ResponseWriter, r *http.Request)

	// Latest stored rollups
	GetLatestDaily(w http.ResponseWriter, r *http.Request)
	GetLatestWeekly(w http.ResponseWriter, r *http.Request)
	GetLatestMonthly(w http.ResponseWriter, r *http.Request)

	// On-demand rollups
	GenerateDaily(w http.ResponseWriter, r *http.Request)
	GenerateWeekly(w http.ResponseWriter, r *http.Request)
	GenerateMonthly(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetAttendanceReport handles GET /attendance/report
func (h *reportHandlerImpl) GetAttendanceReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := report.AttendanceReportRequest{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}
	if dept := query.Get("department"); dept != "" {
		req.Department = &dept
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.GenerateAttendanceReport(r.Context(), req)
	if err != nil {
		slog.Error("Attendance report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetLatestDaily handles GET /admin/reports/daily
func (h *reportHandlerImpl) GetLatestDaily(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetLatestDaily(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetLatestWeekly handles GET /admin/reports/weekly
func (h *reportHandlerImpl) GetLatestWeekly(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetLatestWeekly(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetLatestMonthly handles GET /admin/reports/monthly
func (h *reportHandlerImpl) GetLatestMonthly(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetLatestMonthly(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GenerateDaily handles POST /admin/reports/daily/generate
func (h *reportHandlerImpl) GenerateDaily(w http.ResponseWriter, r *http.Request) {
	var req report.GenerateDailyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	day, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.GenerateDaily(r.Context(), day)
	if err != nil {
		slog.Error("Generate daily report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Daily report generated", result)
}

// GenerateWeekly handles POST /admin/reports/weekly/generate
func (h *reportHandlerImpl) GenerateWeekly(w http.ResponseWriter, r *http.Request) {
	var req report.GenerateWeeklyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	weekStart, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.GenerateWeekly(r.Context(), weekStart)
	if err != nil {
		slog.Error("Generate weekly report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Weekly report generated", result)
}

// GenerateMonthly handles POST /admin/reports/monthly/generate
func (h *reportHandlerImpl) GenerateMonthly(w http.ResponseWriter, r *http.Request) {
	var req report.GenerateMonthlyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	month, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.GenerateMonthly(r.Context(), month)
	if err != nil {
		slog.Error("Generate monthly report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Monthly report generated", result)
}
