package auth

import (
	"strings"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/validator"
)

// RegisterRequest is public self-registration. Role is always employee;
// admins create other roles through the user endpoints.
type RegisterRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

func (r *RegisterRequest) Validate() error {
	create := r.ToCreateUserRequest()
	if err := create.Validate(); err != nil {
		return err
	}
	r.Username = create.Username
	r.Email = create.Email
	return nil
}

func (r *RegisterRequest) ToCreateUserRequest() user.CreateUserRequest {
	return user.CreateUserRequest{
		Username:   r.Username,
		Email:      r.Email,
		Password:   r.Password,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Role:       string(user.RoleEmployee),
		Department: r.Department,
		Position:   r.Position,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.TrimSpace(r.Username)
	if validator.IsEmpty(r.Username) {
		errs.Add("username", "username is required")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	if validator.IsEmpty(r.RefreshToken) {
		return ErrRefreshTokenRequired
	}
	return nil
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string            `json:"access_token"`
	TokenType             string            `json:"token_type"`
	ExpiresIn             int64             `json:"expires_in"`
	AccessTokenExpiresAt  int64             `json:"access_token_expires_at"`
	RefreshToken          string            `json:"refresh_token"`
	RefreshTokenExpiresAt int64             `json:"refresh_token_expires_at"`
	User                  user.UserResponse `json:"user"`
}
