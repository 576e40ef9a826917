package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cookbook-backend/infrastructure/persistence/memory"
	pkgerrors "cookbook-backend/pkg/errors"
)

func newAccountService() *AccountService {
	return NewAccountService(memory.NewUserRepository(), zap.NewNop())
}

func TestAccountService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a new account", func(t *testing.T) {
		svc := newAccountService()

		user, err := svc.Register(ctx, "alice", "hunter2")
		require.NoError(t, err)

		assert.Equal(t, "alice", user.Username())
		assert.NotEqual(t, "hunter2", user.PasswordHash())
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		svc := newAccountService()
		_, err := svc.Register(ctx, "alice", "hunter2")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice", "different")
		assert.True(t, pkgerrors.IsConflict(err))
	})
}

func TestAccountService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts correct credentials", func(t *testing.T) {
		svc := newAccountService()
		registered, err := svc.Register(ctx, "alice", "hunter2")
		require.NoError(t, err)

		user, err := svc.Authenticate(ctx, "alice", "hunter2")
		require.NoError(t, err)
		assert.True(t, user.ID().Equals(registered.ID()))
	})

	t.Run("wrong password and unknown user fail identically", func(t *testing.T) {
		svc := newAccountService()
		_, err := svc.Register(ctx, "alice", "hunter2")
		require.NoError(t, err)

		_, wrongPass := svc.Authenticate(ctx, "alice", "letmein")
		_, unknown := svc.Authenticate(ctx, "nobody", "hunter2")

		require.Error(t, wrongPass)
		require.Error(t, unknown)
		assert.True(t, pkgerrors.IsUnauthorized(wrongPass))
		assert.True(t, pkgerrors.IsUnauthorized(unknown))
		assert.Equal(t, wrongPass.Error(), unknown.Error())
	})
}
