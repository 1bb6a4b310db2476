package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx               database.Transactor
	userRepo         user.UserRepository
	userService      user.UserService
	refreshTokenRepo auth.RefreshTokenRepository
	jwtService       jwt.Service
	now              func() time.Time
}

func NewAuthService(
	tx database.Transactor,
	userRepo user.UserRepository,
	userService user.UserService,
	refreshTokenRepo auth.RefreshTokenRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		tx:               tx,
		userRepo:         userRepo,
		userService:      userService,
		refreshTokenRepo: refreshTokenRepo,
		jwtService:       jwtService,
		now:              time.Now,
	}
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	created, err := a.userService.Create(ctx, req.ToCreateUserRequest())
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) || errors.Is(err, user.ErrUsernameExists) {
			return user.UserResponse{}, auth.ErrUserExists
		}
		return user.UserResponse{}, fmt.Errorf("failed to register user: %w", err)
	}

	slog.Info("user registered", "user_id", created.ID, "username", created.Username)
	return created, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrAccountDeactivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	var tokenResponse auth.TokenResponse
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		now := a.now()
		if err := a.userRepo.UpdateLastLogin(txCtx, userData.ID, now); err != nil {
			return fmt.Errorf("failed to update last login: %w", err)
		}
		userData.LastLogin = &now

		tokenResponse, err = a.issueTokens(txCtx, userData, session)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService.
// The presented token is revoked and replaced, so each refresh token is single-use.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		stored, err := a.refreshTokenRepo.GetByToken(txCtx, req.RefreshToken)
		if err != nil {
			if errors.Is(err, auth.ErrRefreshTokenNotFound) {
				return auth.ErrInvalidToken
			}
			return err
		}

		now := a.now()
		if stored.RevokedAt != nil {
			return auth.ErrRefreshTokenRevoked
		}
		if !now.Before(stored.ExpiresAt) {
			return auth.ErrTokenExpired
		}

		userData, err := a.userRepo.GetByID(txCtx, stored.UserID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return auth.ErrInvalidToken
			}
			return err
		}
		if !userData.IsActive {
			return auth.ErrAccountDeactivated
		}

		if err := a.refreshTokenRepo.Revoke(txCtx, req.RefreshToken, now); err != nil {
			return err
		}

		tokenResponse, err = a.issueTokens(txCtx, userData, session)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, userID string, req auth.RefreshTokenRequest) error {
	return a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		stored, err := a.refreshTokenRepo.GetByToken(txCtx, req.RefreshToken)
		if err != nil {
			return err
		}
		if stored.UserID != userID {
			return auth.ErrRefreshTokenForbidden
		}
		if stored.RevokedAt != nil {
			return auth.ErrRefreshTokenRevoked
		}
		return a.refreshTokenRepo.Revoke(txCtx, req.RefreshToken, a.now())
	})
}

// issueTokens signs an access token and persists a fresh refresh token for u.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	accessToken, accessExpiresAt, err := a.jwtService.GenerateAccessToken(u)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt := a.jwtService.GenerateRefreshToken()
	if err := a.refreshTokenRepo.Create(ctx, u.ID, refreshToken, time.Unix(refreshExpiresAt, 0), session); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(a.jwtService.AccessTokenTTL().Seconds()),
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
		User:                  user.NewUserResponse(u),
	}, nil
}
