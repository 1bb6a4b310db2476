package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presensi-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokenRepository_Lifecycle(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewRefreshTokenRepository(testDB)
	u := createTestUser(t, ctx, "budi", user.RoleEmployee, "Engineering")

	expiresAt := time.Now().Add(time.Hour)
	require.NoError(t, repo.Create(ctx, u.ID, "plain-token", expiresAt, auth.SessionTrackingRequest{
		UserAgent: "presensi-test/1.0",
		IPAddress: "203.0.113.7",
	}))

	var stored string
	require.NoError(t, testDB.QueryRow(ctx, `SELECT token_hash FROM refresh_tokens WHERE user_id = $1`, u.ID).Scan(&stored))
	assert.NotEqual(t, "plain-token", stored)

	rt, err := repo.GetByToken(ctx, "plain-token")
	require.NoError(t, err)
	assert.Equal(t, u.ID, rt.UserID)
	assert.True(t, rt.IsUsable(time.Now()))

	require.NoError(t, repo.Revoke(ctx, "plain-token", time.Now()))
	assert.ErrorIs(t, repo.Revoke(ctx, "plain-token", time.Now()), auth.ErrRefreshTokenRevoked)

	rt, err = repo.GetByToken(ctx, "plain-token")
	require.NoError(t, err)
	assert.NotNil(t, rt.RevokedAt)
	assert.False(t, rt.IsUsable(time.Now()))

	_, err = repo.GetByToken(ctx, "unknown")
	assert.ErrorIs(t, err, auth.ErrRefreshTokenNotFound)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewRefreshTokenRepository(testDB)
	u := createTestUser(t, ctx, "budi", user.RoleEmployee, "Engineering")

	errBoom := errors.New("boom")
	err := postgresql.NewTransactor(testDB).WithinTransaction(ctx, func(ctx context.Context) error {
		if err := repo.Create(ctx, u.ID, "tx-token", time.Now().Add(time.Hour), auth.SessionTrackingRequest{}); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	_, err = repo.GetByToken(ctx, "tx-token")
	assert.ErrorIs(t, err, auth.ErrRefreshTokenNotFound)
}
