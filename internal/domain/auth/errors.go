package auth

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountDeactivated    = errors.New("account is deactivated")
	ErrUserExists            = errors.New("username or email already exists")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrTokenExpired          = errors.New("refresh token has expired")
	ErrRefreshTokenRevoked   = errors.New("token already revoked")
	ErrRefreshTokenNotFound  = errors.New("refresh token not found")
	ErrRefreshTokenRequired  = errors.New("refresh token is required")
	ErrRefreshTokenForbidden = errors.New("refresh token does not belong to user")
)
