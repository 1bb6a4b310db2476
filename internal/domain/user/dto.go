package user

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Role       string     `json:"role"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	IsActive   bool       `json:"is_active"`
	LastLogin  *time.Time `json:"last_login"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewUserResponse strips credentials from u.
func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       string(u.Role),
		Department: u.Department,
		Position:   u.Position,
		IsActive:   u.IsActive,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type ListUserResponse struct {
	Users      []UserResponse `json:"users"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

type UserFilter struct {
	Search     *string
	Role       *string
	Department *string
	Page       int
	Limit      int
}

func (f *UserFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}
	if f.Role != nil && !validator.IsInSlice(*f.Role, Roles) {
		errs.Add("role", "role must be one of admin, manager, employee")
	}

	return errs.Err()
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if validator.IsEmpty(r.Username) {
		errs.Add("username", "username is required")
	} else if !validator.IsValidUsername(r.Username) {
		errs.Add("username", "username must be 3-50 characters of letters, numbers, dots, underscores or hyphens")
	}

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}

	validatePassword(&errs, r.Password)

	if validator.IsEmpty(r.FirstName) {
		errs.Add("first_name", "first_name is required")
	} else if len(r.FirstName) > 100 {
		errs.Add("first_name", "first_name must not exceed 100 characters")
	}
	if len(r.LastName) > 100 {
		errs.Add("last_name", "last_name must not exceed 100 characters")
	}

	if validator.IsEmpty(r.Role) {
		r.Role = string(RoleEmployee)
	} else if !validator.IsInSlice(r.Role, Roles) {
		errs.Add("role", "role must be one of admin, manager, employee")
	}

	if len(r.Department) > 100 {
		errs.Add("department", "department must not exceed 100 characters")
	}
	if len(r.Position) > 100 {
		errs.Add("position", "position must not exceed 100 characters")
	}

	return errs.Err()
}

// UpdateUserRequest represents request to update user
type UpdateUserRequest struct {
	Email      *string `json:"email,omitempty"`
	Password   *string `json:"password,omitempty"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Role       *string `json:"role,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// IsEmpty reports whether no field is set.
func (r *UpdateUserRequest) IsEmpty() bool {
	return r.Email == nil && r.Password == nil && r.FirstName == nil && r.LastName == nil &&
		r.Role == nil && r.Department == nil && r.Position == nil && r.IsActive == nil
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
		if validator.IsEmpty(email) {
			errs.Add("email", "email must not be empty")
		} else if !validator.IsValidEmail(email) {
			errs.Add("email", "invalid email format")
		}
	}

	if r.Password != nil {
		validatePassword(&errs, *r.Password)
	}

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs.Add("first_name", "first_name must not be empty")
	}

	if r.Role != nil && !validator.IsInSlice(*r.Role, Roles) {
		errs.Add("role", "role must be one of admin, manager, employee")
	}

	return errs.Err()
}

func validatePassword(errs *validator.ValidationErrors, password string) {
	switch {
	case validator.IsEmpty(password):
		errs.Add("password", "password is required")
	case len(password) < 8:
		errs.Add("password", "password must be at least 8 characters")
	case len(password) > 72:
		// bcrypt ignores input beyond 72 bytes
		errs.Add("password", "password must not exceed 72 characters")
	}
}
