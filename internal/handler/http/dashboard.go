package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/presensi-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns the latest daily, weekly and monthly rollups
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	reportService report.ReportService
}

func NewDashboardHandler(reportService report.ReportService) DashboardHandler {
	return &dashboardHandlerImpl{reportService: reportService}
}

// GetDashboard implements DashboardHandler.
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetDashboard(r.Context())
	if err != nil {
		slog.Error("Get dashboard error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
