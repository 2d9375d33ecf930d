//go:build unit

package commands

import (
	"context"
	"testing"
	"time"

	"slabstock/internal/pkg/jwt"
	"slabstock/internal/pkg/password"
	"slabstock/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	jwtService := jwt.NewService("test-secret", time.Hour)

	hash, err := password.HashPassword("correct horse")
	require.NoError(t, err)

	userID := uuid.New()
	activeUser := &shared.UserSnapshot{
		ID:           userID,
		Email:        "sales@slabstock.example",
		PasswordHash: hash,
		Role:         "sales",
		IsActive:     true,
	}

	t.Run("valid credentials return a token", func(t *testing.T) {
		uow := newFakeUow()
		uow.tx.reads.On("UserByEmail", ctx, "sales@slabstock.example").Return(activeUser, nil)
		uow.tx.users.On("UpdateLastLogin", ctx, nil, userID).Return(nil)

		result, err := NewAuthCommands(uow, jwtService).Login(ctx, LoginRequest{
			Email: "sales@slabstock.example", Password: "correct horse",
		})
		require.NoError(t, err)
		assert.Equal(t, userID, result.UserID)
		assert.Equal(t, "sales", result.Role)

		claims, err := jwtService.ValidateToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "sales", claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		uow := newFakeUow()
		uow.tx.reads.On("UserByEmail", ctx, "sales@slabstock.example").Return(activeUser, nil)

		_, err := NewAuthCommands(uow, jwtService).Login(ctx, LoginRequest{
			Email: "sales@slabstock.example", Password: "wrong battery staple",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to the same error as a bad password", func(t *testing.T) {
		uow := newFakeUow()
		uow.tx.reads.On("UserByEmail", ctx, "nobody@slabstock.example").Return(nil, notFoundErr())

		_, err := NewAuthCommands(uow, jwtService).Login(ctx, LoginRequest{
			Email: "nobody@slabstock.example", Password: "correct horse",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		uow := newFakeUow()
		inactive := *activeUser
		inactive.IsActive = false
		uow.tx.reads.On("UserByEmail", ctx, "sales@slabstock.example").Return(&inactive, nil)

		_, err := NewAuthCommands(uow, jwtService).Login(ctx, LoginRequest{
			Email: "sales@slabstock.example", Password: "correct horse",
		})
		assert.ErrorIs(t, err, ErrUserInactive)
	})

	t.Run("malformed email", func(t *testing.T) {
		uow := newFakeUow()

		_, err := NewAuthCommands(uow, jwtService).Login(ctx, LoginRequest{
			Email: "not-an-email", Password: "correct horse",
		})
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("failed last-login update does not fail the login", func(t *testing.T) {
		uow := newFakeUow()
		uow.tx.reads.On("UserByEmail", ctx, "sales@slabstock.example").Return(activeUser, nil)
		uow.tx.users.On("UpdateLastLogin", ctx, nil, userID).Return(notFoundErr())

		result, err := NewAuthCommands(uow, jwtService).Login(ctx, LoginRequest{
			Email: "sales@slabstock.example", Password: "correct horse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
	})
}
