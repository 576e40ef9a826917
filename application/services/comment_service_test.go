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

func TestCommentService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the comment and references it on the recipe", func(t *testing.T) {
		f := newRecipeFixture()
		comments := NewCommentService(memory.NewCommentRepository(), f.recipes, zap.NewNop())
		alice := f.addUser(t, "alice")
		bob := f.addUser(t, "bob")

		recipe, err := f.svc.Create(ctx, alice, chiliAttrs())
		require.NoError(t, err)

		comment, err := comments.Add(ctx, bob, recipe.Slug().String(), "Needs more chili.")
		require.NoError(t, err)
		assert.True(t, comment.Author().Equals(bob.ID()))

		stored, err := f.svc.GetBySlug(ctx, recipe.Slug().String())
		require.NoError(t, err)
		require.Len(t, stored.Comments(), 1)
		assert.True(t, stored.Comments()[0].Equals(comment.ID()))
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		f := newRecipeFixture()
		comments := NewCommentService(memory.NewCommentRepository(), f.recipes, zap.NewNop())
		alice := f.addUser(t, "alice")

		recipe, err := f.svc.Create(ctx, alice, chiliAttrs())
		require.NoError(t, err)

		_, err = comments.Add(ctx, alice, recipe.Slug().String(), "")
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		f := newRecipeFixture()
		comments := NewCommentService(memory.NewCommentRepository(), f.recipes, zap.NewNop())
		alice := f.addUser(t, "alice")

		_, err := comments.Add(ctx, alice, "no-such-recipe", "hello")
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestCommentService_ListForRecipe(t *testing.T) {
	ctx := context.Background()
	f := newRecipeFixture()
	comments := NewCommentService(memory.NewCommentRepository(), f.recipes, zap.NewNop())
	alice := f.addUser(t, "alice")

	recipe, err := f.svc.Create(ctx, alice, chiliAttrs())
	require.NoError(t, err)

	first, err := comments.Add(ctx, alice, recipe.Slug().String(), "First!")
	require.NoError(t, err)
	second, err := comments.Add(ctx, alice, recipe.Slug().String(), "Second.")
	require.NoError(t, err)

	listed, err := comments.ListForRecipe(ctx, recipe)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.True(t, listed[0].ID().Equals(first.ID()))
	assert.True(t, listed[1].ID().Equals(second.ID()))
}
