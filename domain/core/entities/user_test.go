package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookbook-backend/domain/core/valueobjects"
)

func testRef(title string) RecipeRef {
	slug, _ := valueobjects.DeriveSlug(title)
	return RecipeRef{
		ID:    valueobjects.NewRecipeID(),
		Slug:  slug,
		Title: title,
		Image: "img.jpg",
	}
}

func TestNewUser(t *testing.T) {
	t.Run("creates user with empty lists", func(t *testing.T) {
		user, err := NewUser("alice", "hash")
		require.NoError(t, err)

		assert.Equal(t, "alice", user.Username())
		assert.False(t, user.ID().IsZero())
		assert.Empty(t, user.Recipes())
		assert.Empty(t, user.Saved())
	})

	t.Run("rejects empty username", func(t *testing.T) {
		_, err := NewUser("", "hash")
		assert.Error(t, err)
	})

	t.Run("rejects empty password hash", func(t *testing.T) {
		_, err := NewUser("alice", "")
		assert.Error(t, err)
	})
}

func TestUser_ToggleSaved(t *testing.T) {
	t.Run("first toggle saves", func(t *testing.T) {
		user, _ := NewUser("alice", "hash")
		ref := testRef("Chili")

		saved := user.ToggleSaved(ref)

		assert.True(t, saved)
		assert.True(t, user.HasSaved(ref.ID))
		assert.Len(t, user.Saved(), 1)
	})

	t.Run("second toggle restores the original list", func(t *testing.T) {
		user, _ := NewUser("alice", "hash")
		other := testRef("Tomato Soup")
		ref := testRef("Chili")
		user.ToggleSaved(other)

		user.ToggleSaved(ref)
		saved := user.ToggleSaved(ref)

		assert.False(t, saved)
		assert.False(t, user.HasSaved(ref.ID))
		require.Len(t, user.Saved(), 1)
		assert.True(t, user.Saved()[0].ID.Equals(other.ID))
	})

	t.Run("toggle collapses accumulated duplicates", func(t *testing.T) {
		ref := testRef("Chili")
		user := ReconstructUser(
			valueobjects.NewUserID(),
			"alice",
			"hash",
			nil,
			[]RecipeRef{ref, ref},
			time.Now(),
		)

		saved := user.ToggleSaved(ref)

		assert.False(t, saved)
		assert.Empty(t, user.Saved())
	})
}

func TestUser_HasSaved(t *testing.T) {
	t.Run("membership is by identifier, not by reference value", func(t *testing.T) {
		user, _ := NewUser("alice", "hash")
		ref := testRef("Chili")
		user.ToggleSaved(ref)

		stale := ref
		stale.Title = "Renamed Chili"

		assert.True(t, user.HasSaved(stale.ID))
	})
}

func TestUser_AddRecipe(t *testing.T) {
	user, _ := NewUser("alice", "hash")
	first := testRef("Chili")
	second := testRef("Tomato Soup")

	user.AddRecipe(first)
	user.AddRecipe(second)

	require.Len(t, user.Recipes(), 2)
	assert.True(t, user.Recipes()[0].ID.Equals(first.ID))
	assert.True(t, user.Recipes()[1].ID.Equals(second.ID))
}
