package user

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	userRepo user.UserRepository
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// HashPassword bcrypts a plaintext password with the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.UserFilter) (user.ListUserResponse, error) {
	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return user.ListUserResponse{}, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}

	return user.ListUserResponse{
		Users:      responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// GetByID implements user.UserService.
// Employees may only read themselves; managers and admins may read anyone.
func (s *UserServiceImpl) GetByID(ctx context.Context, actor user.Actor, id string) (user.UserResponse, error) {
	if actor.ID != id && actor.Role != user.RoleAdmin && actor.Role != user.RoleManager {
		return user.UserResponse{}, user.ErrForbidden
	}

	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, err
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         user.Role(req.Role),
		Department:   req.Department,
		Position:     req.Position,
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.NewUserResponse(created), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, actor user.Actor, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	isAdmin := actor.Role == user.RoleAdmin
	if actor.ID != id && !isAdmin {
		return user.UserResponse{}, user.ErrForbidden
	}
	if (req.Role != nil || req.IsActive != nil) && !isAdmin {
		return user.UserResponse{}, user.ErrRoleChangeForbidden
	}
	if req.IsEmpty() {
		return user.UserResponse{}, user.ErrNoFieldsToUpdate
	}

	var passwordHash *string
	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return user.UserResponse{}, err
		}
		passwordHash = &hash
	}

	updated, err := s.userRepo.Update(ctx, id, req, passwordHash)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) || errors.Is(err, user.ErrEmailExists) || errors.Is(err, user.ErrNoFieldsToUpdate) {
			return user.UserResponse{}, err
		}
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user.NewUserResponse(updated), nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, actor user.Actor, id string) error {
	if actor.Role != user.RoleAdmin {
		return user.ErrAdminAccessRequired
	}
	if actor.ID == id {
		return user.ErrCannotDeleteSelf
	}
	return s.userRepo.Delete(ctx, id)
}
