package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookbook-backend/pkg/auth"
)

func TestSessionStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	sess, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.True(t, sess.Authenticated())

	found, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "user-1", found.UserID)

	require.NoError(t, store.Delete(ctx, sess.ID))

	gone, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSessionStore_AnonymousSession(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	sess, err := store.Create(ctx, "")
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestSessionStore_Flash(t *testing.T) {
	ctx := context.Background()

	t.Run("consume reads the flag exactly once", func(t *testing.T) {
		store := NewSessionStore()
		sess, err := store.Create(ctx, "")
		require.NoError(t, err)

		require.NoError(t, store.SetFlash(ctx, sess.ID, auth.FlowLogin))

		flash, err := store.ConsumeFlash(ctx, sess.ID, auth.FlowLogin)
		require.NoError(t, err)
		assert.Equal(t, auth.FlashFailed, flash)

		flash, err = store.ConsumeFlash(ctx, sess.ID, auth.FlowLogin)
		require.NoError(t, err)
		assert.Equal(t, auth.FlashUnset, flash)
	})

	t.Run("flows carry independent flags", func(t *testing.T) {
		store := NewSessionStore()
		sess, err := store.Create(ctx, "")
		require.NoError(t, err)

		require.NoError(t, store.SetFlash(ctx, sess.ID, auth.FlowRegister))

		flash, err := store.ConsumeFlash(ctx, sess.ID, auth.FlowLogin)
		require.NoError(t, err)
		assert.Equal(t, auth.FlashUnset, flash)

		flash, err = store.ConsumeFlash(ctx, sess.ID, auth.FlowRegister)
		require.NoError(t, err)
		assert.Equal(t, auth.FlashFailed, flash)
	})

	t.Run("unknown session reads as unset", func(t *testing.T) {
		store := NewSessionStore()
		flash, err := store.ConsumeFlash(ctx, "missing", auth.FlowLogin)
		require.NoError(t, err)
		assert.Equal(t, auth.FlashUnset, flash)
	})
}
