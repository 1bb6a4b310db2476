package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	employeeID        = "11111111-1111-4111-8111-111111111111"
	managerID         = "22222222-2222-4222-8222-222222222222"
	adminID           = "33333333-3333-4333-8333-333333333333"
)

// ===== FAKE SERVICES =====

type fakeAuthService struct {
	lastRefresh auth.RefreshTokenRequest
	lastSession auth.SessionTrackingRequest
	lastLogout  string
	err         error
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	if f.err != nil {
		return user.UserResponse{}, f.err
	}
	return user.UserResponse{ID: employeeID, Username: req.Username, Email: req.Email, Role: string(user.RoleEmployee)}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	f.lastSession = session
	if f.err != nil {
		return auth.TokenResponse{}, f.err
	}
	return f.tokens(), nil
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	f.lastRefresh = req
	f.lastSession = session
	if f.err != nil {
		return auth.TokenResponse{}, f.err
	}
	return f.tokens(), nil
}

func (f *fakeAuthService) Logout(ctx context.Context, userID string, req auth.RefreshTokenRequest) error {
	f.lastLogout = userID
	f.lastRefresh = req
	return f.err
}

func (f *fakeAuthService) tokens() auth.TokenResponse {
	return auth.TokenResponse{
		AccessToken:           "access",
		TokenType:             "Bearer",
		ExpiresIn:             900,
		RefreshToken:          "new-refresh-token",
		RefreshTokenExpiresAt: time.Now().Add(time.Hour).Unix(),
		User:                  user.UserResponse{ID: employeeID},
	}
}

type fakeUserService struct {
	lastActor user.Actor
	lastID    string
	err       error
}

func (f *fakeUserService) List(ctx context.Context, filter user.UserFilter) (user.ListUserResponse, error) {
	return user.ListUserResponse{
		Users:      []user.UserResponse{{ID: employeeID}},
		TotalCount: 1,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: 1,
	}, f.err
}

func (f *fakeUserService) GetByID(ctx context.Context, actor user.Actor, id string) (user.UserResponse, error) {
	f.lastActor, f.lastID = actor, id
	if f.err != nil {
		return user.UserResponse{}, f.err
	}
	return user.UserResponse{ID: id}, nil
}

func (f *fakeUserService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	return user.UserResponse{ID: employeeID, Username: req.Username}, f.err
}

func (f *fakeUserService) Update(ctx context.Context, actor user.Actor, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	f.lastActor, f.lastID = actor, id
	return user.UserResponse{ID: id}, f.err
}

func (f *fakeUserService) Delete(ctx context.Context, actor user.Actor, id string) error {
	f.lastActor, f.lastID = actor, id
	return f.err
}

type fakeAttendanceService struct {
	lastUserID  string
	lastCheckIn attendance.CheckInRequest
	lastFilter  attendance.HistoryFilter
	err         error
}

func (f *fakeAttendanceService) CheckIn(ctx context.Context, userID string, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	f.lastUserID, f.lastCheckIn = userID, req
	if f.err != nil {
		return attendance.CheckInResponse{}, f.err
	}
	return attendance.CheckInResponse{ID: "att-1", Status: attendance.StatusPresent}, nil
}

func (f *fakeAttendanceService) CheckOut(ctx context.Context, userID string, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	f.lastUserID = userID
	if f.err != nil {
		return attendance.CheckOutResponse{}, f.err
	}
	return attendance.CheckOutResponse{ID: "att-1", WorkDuration: 570, Duration: "9 jam 30 menit"}, nil
}

func (f *fakeAttendanceService) GetToday(ctx context.Context, userID string) (attendance.TodayResponse, error) {
	f.lastUserID = userID
	return attendance.TodayResponse{AttendanceStatus: attendance.TodayNotCheckedIn}, f.err
}

func (f *fakeAttendanceService) GetHistory(ctx context.Context, userID string, filter attendance.HistoryFilter) (attendance.ListAttendanceResponse, error) {
	f.lastUserID, f.lastFilter = userID, filter
	return attendance.ListAttendanceResponse{}, f.err
}

func (f *fakeAttendanceService) AutoCheckout(ctx context.Context) (int, error) {
	return 0, f.err
}

type fakeReportService struct {
	lastDay   time.Time
	lastReq   report.AttendanceReportRequest
	latestErr error
}

func (f *fakeReportService) GenerateDaily(ctx context.Context, day time.Time) (report.DailyReport, error) {
	f.lastDay = day
	return report.DailyReport{ReportDate: day, TotalPresent: 7, TotalLate: 1, TotalAbsent: 2}, nil
}

func (f *fakeReportService) GenerateWeekly(ctx context.Context, weekStart time.Time) (report.WeeklyReport, error) {
	f.lastDay = weekStart
	return report.WeeklyReport{WeekStart: weekStart, WeekEnd: weekStart.AddDate(0, 0, 6)}, nil
}

func (f *fakeReportService) GenerateMonthly(ctx context.Context, month time.Time) (report.MonthlyReport, error) {
	f.lastDay = month
	return report.MonthlyReport{Month: month.Format("2006-01")}, nil
}

func (f *fakeReportService) GetDashboard(ctx context.Context) (report.DashboardResponse, error) {
	return report.DashboardResponse{Daily: &report.DailyReport{TotalPresent: 3}}, nil
}

func (f *fakeReportService) GetLatestDaily(ctx context.Context) (report.DailyReport, error) {
	return report.DailyReport{}, f.latestErr
}

func (f *fakeReportService) GetLatestWeekly(ctx context.Context) (report.WeeklyReport, error) {
	return report.WeeklyReport{}, f.latestErr
}

func (f *fakeReportService) GetLatestMonthly(ctx context.Context) (report.MonthlyReport, error) {
	return report.MonthlyReport{}, f.latestErr
}

func (f *fakeReportService) GenerateAttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	f.lastReq = req
	return report.AttendanceReport{ReportPeriod: report.ReportPeriod{StartDate: req.StartDate, EndDate: req.EndDate}}, nil
}

// ===== TEST SERVER =====

type testServer struct {
	router     *chi.Mux
	jwt        jwt.Service
	auth       *fakeAuthService
	users      *fakeUserService
	attendance *fakeAttendanceService
	reports    *fakeReportService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		jwt:        jwt.NewJWTService(handlerTestSecret, time.Hour, 24*time.Hour, false),
		auth:       &fakeAuthService{},
		users:      &fakeUserService{},
		attendance: &fakeAttendanceService{},
		reports:    &fakeReportService{},
	}
	s.router = NewRouter(
		RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}},
		s.jwt,
		NewAuthHandler(s.jwt, s.auth),
		NewUserHandler(s.users),
		NewAttendanceHandler(s.attendance),
		NewReportHandler(s.reports),
		NewDashboardHandler(s.reports),
	)
	return s
}

func (s *testServer) token(t *testing.T, id string, role user.Role) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(user.User{ID: id, Username: string(role), Role: role})
	require.NoError(t, err)
	return token
}

// do sends a request through the router. body may be nil, a string or any JSON value.
func (s *testServer) do(t *testing.T, method, path, token string, body interface{}, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeBody(t, w)
	errDetail, ok := resp["error"].(map[string]interface{})
	require.True(t, ok, "response has no error object")
	return errDetail["code"].(string)
}
