package user

import "context"

// Actor is the authenticated caller of a user operation.
type Actor struct {
	ID   string
	Role Role
}

type UserService interface {
	List(ctx context.Context, filter UserFilter) (ListUserResponse, error)
	GetByID(ctx context.Context, actor Actor, id string) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, actor Actor, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, actor Actor, id string) error
}
