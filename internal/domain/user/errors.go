package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailExists           = errors.New("email already in use")
	ErrUsernameExists        = errors.New("username already taken")
	ErrAdminAccessRequired   = errors.New("admin access required")
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrForbidden             = errors.New("access forbidden")
	ErrRoleChangeForbidden   = errors.New("only admin can change role or active status")
	ErrNoFieldsToUpdate      = errors.New("no fields to update")
	ErrCannotDeleteSelf      = errors.New("cannot delete your own account")
)
