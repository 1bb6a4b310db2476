package middleware

import (
	"context"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// ActorFromContext reads the caller's id and role from the verified access token.
func ActorFromContext(ctx context.Context) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Actor{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Actor{}, auth.ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	return user.Actor{ID: userID, Role: user.Role(role)}, nil
}
