package http

import (
	"net/http"
	"testing"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRealIP(ip string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("X-Real-IP", ip)
		r.Header.Set("User-Agent", "presensi-test/1.0")
	}
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Test Register - Success
func TestAuthHandler_Register_Success(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", auth.RegisterRequest{
		Username:  "budi",
		Email:     "Budi@Example.com",
		Password:  "SecurePass123!",
		FirstName: "Budi",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody(t, w)
	assert.True(t, resp["success"].(bool))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "budi@example.com", data["email"])
	assert.Equal(t, "employee", data["role"])
}

// Test Register - Validation errors
func TestAuthHandler_Register_ValidationError(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", auth.RegisterRequest{
		Username: "budi",
		Email:    "not-an-email",
		Password: "short",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeBody(t, w)
	details := resp["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Contains(t, details, "first_name")
}

// Test Register - Malformed JSON
func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", "{not json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, w))
}

// Test Register - Duplicate user
func TestAuthHandler_Register_Duplicate(t *testing.T) {
	s := newTestServer(t)
	s.auth.err = auth.ErrUserExists

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", auth.RegisterRequest{
		Username:  "budi",
		Email:     "budi@example.com",
		Password:  "SecurePass123!",
		FirstName: "Budi",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, w))
}

// Test Login - Sets refresh cookie and records the session
func TestAuthHandler_Login_Success(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{
		Username: "budi",
		Password: "SecurePass123!",
	}, withRealIP("203.0.113.7"))

	require.Equal(t, http.StatusOK, w.Code)

	cookie := findCookie(w.Result().Cookies(), jwt.RefreshTokenCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "new-refresh-token", cookie.Value)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)

	assert.Equal(t, "203.0.113.7", s.auth.lastSession.IPAddress)
	assert.Equal(t, "presensi-test/1.0", s.auth.lastSession.UserAgent)

	resp := decodeBody(t, w)
	assert.Equal(t, "Login successful", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Bearer", data["token_type"])
}

// Test Login - Invalid credentials
func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	s := newTestServer(t)
	s.auth.err = auth.ErrInvalidCredentials

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{
		Username: "budi",
		Password: "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
}

// Test Login - Deactivated account
func TestAuthHandler_Login_Deactivated(t *testing.T) {
	s := newTestServer(t)
	s.auth.err = auth.ErrAccountDeactivated

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{
		Username: "budi",
		Password: "SecurePass123!",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// Test Refresh - Cookie wins over body
func TestAuthHandler_Refresh_FromCookie(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/refresh-token", "", nil, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: jwt.RefreshTokenCookieName, Value: "cookie-token"})
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cookie-token", s.auth.lastRefresh.RefreshToken)
	assert.NotNil(t, findCookie(w.Result().Cookies(), jwt.RefreshTokenCookieName))
}

// Test Refresh - Body fallback
func TestAuthHandler_Refresh_FromBody(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/refresh-token", "", auth.RefreshTokenRequest{RefreshToken: "body-token"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body-token", s.auth.lastRefresh.RefreshToken)
}

// Test Refresh - Missing token
func TestAuthHandler_Refresh_Missing(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/refresh-token", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Test Refresh - Revoked token
func TestAuthHandler_Refresh_Revoked(t *testing.T) {
	s := newTestServer(t)
	s.auth.err = auth.ErrRefreshTokenRevoked

	w := s.do(t, http.MethodPost, "/api/v1/auth/refresh-token", "", auth.RefreshTokenRequest{RefreshToken: "old"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Test Logout - Requires access token
func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/logout", "", auth.RefreshTokenRequest{RefreshToken: "token"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, s.auth.lastLogout)
}

// Test Logout - Revokes and clears cookie
func TestAuthHandler_Logout_Success(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, employeeID, user.RoleEmployee)

	w := s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: jwt.RefreshTokenCookieName, Value: "session-token"})
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, employeeID, s.auth.lastLogout)
	assert.Equal(t, "session-token", s.auth.lastRefresh.RefreshToken)

	cookie := findCookie(w.Result().Cookies(), jwt.RefreshTokenCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

// Test Logout - Token owned by another user
func TestAuthHandler_Logout_Forbidden(t *testing.T) {
	s := newTestServer(t)
	s.auth.err = auth.ErrRefreshTokenForbidden
	token := s.token(t, employeeID, user.RoleEmployee)

	w := s.do(t, http.MethodPost, "/api/v1/auth/logout", token, auth.RefreshTokenRequest{RefreshToken: "someone-else"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "ok", data["status"])
	assert.NotEmpty(t, data["timestamp"])
}
