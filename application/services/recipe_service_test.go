package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cookbook-backend/domain/core/entities"
	"cookbook-backend/infrastructure/persistence/memory"
	pkgerrors "cookbook-backend/pkg/errors"
)

type recipeFixture struct {
	users   *memory.UserRepository
	recipes *memory.RecipeRepository
	svc     *RecipeService
}

func newRecipeFixture() *recipeFixture {
	users := memory.NewUserRepository()
	recipes := memory.NewRecipeRepository()
	return &recipeFixture{
		users:   users,
		recipes: recipes,
		svc:     NewRecipeService(users, recipes, zap.NewNop()),
	}
}

func (f *recipeFixture) addUser(t *testing.T, username string) *entities.User {
	t.Helper()
	user, err := entities.NewUser(username, "hash")
	require.NoError(t, err)
	require.NoError(t, f.users.Save(context.Background(), user))
	return user
}

func chiliAttrs() entities.RecipeAttributes {
	return entities.RecipeAttributes{
		Title:           "Chili",
		Image:           "chili.jpg",
		EstimatedTime:   45,
		NumServings:     4,
		EstimatedCost:   12.50,
		DifficultyLevel: "medium",
		Cuisine:         "mexican",
		Description:     "A hearty bowl.",
		Ingredients:     "beans, beef, chili",
		Instructions:    "Simmer everything.",
	}
}

func TestRecipeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("binds owner and derives slug from title", func(t *testing.T) {
		f := newRecipeFixture()
		alice := f.addUser(t, "alice")

		recipe, err := f.svc.Create(ctx, alice, chiliAttrs())
		require.NoError(t, err)

		assert.True(t, recipe.IsOwnedBy(alice.ID()))
		assert.Equal(t, "chili", recipe.Slug().String())

		stored, err := f.users.GetByID(ctx, alice.ID())
		require.NoError(t, err)
		require.Len(t, stored.Recipes(), 1)
		assert.True(t, stored.Recipes()[0].ID.Equals(recipe.ID()))
	})

	t.Run("duplicate titles get distinct slugs", func(t *testing.T) {
		f := newRecipeFixture()
		alice := f.addUser(t, "alice")

		first, err := f.svc.Create(ctx, alice, chiliAttrs())
		require.NoError(t, err)
		second, err := f.svc.Create(ctx, alice, chiliAttrs())
		require.NoError(t, err)

		assert.Equal(t, "chili", first.Slug().String())
		assert.False(t, second.Slug().Equals(first.Slug()))

		found, err := f.svc.GetBySlug(ctx, second.Slug().String())
		require.NoError(t, err)
		assert.True(t, found.ID().Equals(second.ID()))
	})
}

func TestRecipeService_Authorize(t *testing.T) {
	ctx := context.Background()
	f := newRecipeFixture()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	recipe, err := f.svc.Create(ctx, alice, chiliAttrs())
	require.NoError(t, err)

	t.Run("owner passes the gate", func(t *testing.T) {
		assert.NoError(t, f.svc.Authorize(alice, recipe))
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		err := f.svc.Authorize(bob, recipe)
		assert.True(t, pkgerrors.IsForbidden(err))
	})
}

func TestRecipeService_Edit(t *testing.T) {
	ctx := context.Background()

	t.Run("owner edit overwrites attributes, slug survives", func(t *testing.T) {
		f := newRecipeFixture()
		alice := f.addUser(t, "alice")
		recipe, err := f.svc.Create(ctx, alice, chiliAttrs())
		require.NoError(t, err)

		updated := chiliAttrs()
		updated.Title = "Five Alarm Chili"
		updated.Image = ""
		require.NoError(t, f.svc.Edit(ctx, alice, recipe.Slug().String(), updated))

		stored, err := f.svc.GetBySlug(ctx, recipe.Slug().String())
		require.NoError(t, err)
		assert.Equal(t, "Five Alarm Chili", stored.Attributes().Title)
		assert.Equal(t, "chili.jpg", stored.Attributes().Image)
		assert.Equal(t, "chili", stored.Slug().String())
	})

	t.Run("non-owner edit is forbidden and writes nothing", func(t *testing.T) {
		f := newRecipeFixture()
		alice := f.addUser(t, "alice")
		bob := f.addUser(t, "bob")
		recipe, err := f.svc.Create(ctx, alice, chiliAttrs())
		require.NoError(t, err)

		updated := chiliAttrs()
		updated.Title = "Stolen Chili"
		err = f.svc.Edit(ctx, bob, recipe.Slug().String(), updated)
		assert.True(t, pkgerrors.IsForbidden(err))

		stored, err := f.svc.GetBySlug(ctx, recipe.Slug().String())
		require.NoError(t, err)
		assert.Equal(t, "Chili", stored.Attributes().Title)
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		f := newRecipeFixture()
		alice := f.addUser(t, "alice")
		err := f.svc.Edit(ctx, alice, "no-such-recipe", chiliAttrs())
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestRecipeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner delete removes the recipe", func(t *testing.T) {
		f := newRecipeFixture()
		alice := f.addUser(t, "alice")
		recipe, err := f.svc.Create(ctx, alice, chiliAttrs())
		require.NoError(t, err)

		require.NoError(t, f.svc.Delete(ctx, alice, recipe.Slug().String()))

		_, err = f.svc.GetBySlug(ctx, recipe.Slug().String())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("non-owner delete is forbidden", func(t *testing.T) {
		f := newRecipeFixture()
		alice := f.addUser(t, "alice")
		bob := f.addUser(t, "bob")
		recipe, err := f.svc.Create(ctx, alice, chiliAttrs())
		require.NoError(t, err)

		err = f.svc.Delete(ctx, bob, recipe.Slug().String())
		assert.True(t, pkgerrors.IsForbidden(err))

		_, err = f.svc.GetBySlug(ctx, recipe.Slug().String())
		assert.NoError(t, err)
	})
}

func TestRecipeService_ToggleSaved(t *testing.T) {
	ctx := context.Background()
	f := newRecipeFixture()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	recipe, err := f.svc.Create(ctx, alice, chiliAttrs())
	require.NoError(t, err)

	saved, err := f.svc.ToggleSaved(ctx, bob, recipe.Slug().String())
	require.NoError(t, err)
	assert.True(t, saved)

	stored, err := f.users.GetByID(ctx, bob.ID())
	require.NoError(t, err)
	assert.True(t, stored.HasSaved(recipe.ID()))

	saved, err = f.svc.ToggleSaved(ctx, bob, recipe.Slug().String())
	require.NoError(t, err)
	assert.False(t, saved)

	stored, err = f.users.GetByID(ctx, bob.ID())
	require.NoError(t, err)
	assert.False(t, stored.HasSaved(recipe.ID()))
}

func TestRecipeService_Listings(t *testing.T) {
	ctx := context.Background()
	f := newRecipeFixture()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	chili, err := f.svc.Create(ctx, alice, chiliAttrs())
	require.NoError(t, err)

	soupAttrs := chiliAttrs()
	soupAttrs.Title = "Tomato Soup"
	soup, err := f.svc.Create(ctx, bob, soupAttrs)
	require.NoError(t, err)

	t.Run("browse lists everything newest first", func(t *testing.T) {
		all, err := f.svc.Browse(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.True(t, all[0].ID().Equals(soup.ID()))
		assert.True(t, all[1].ID().Equals(chili.ID()))
	})

	t.Run("owned listing is scoped to the actor", func(t *testing.T) {
		owned, err := f.svc.ListOwned(ctx, alice)
		require.NoError(t, err)
		require.Len(t, owned, 1)
		assert.True(t, owned[0].ID().Equals(chili.ID()))
	})
}

func TestRecipeService_DeleteAllOwned(t *testing.T) {
	ctx := context.Background()
	f := newRecipeFixture()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	chili, err := f.svc.Create(ctx, alice, chiliAttrs())
	require.NoError(t, err)

	soupAttrs := chiliAttrs()
	soupAttrs.Title = "Tomato Soup"
	soup, err := f.svc.Create(ctx, bob, soupAttrs)
	require.NoError(t, err)

	_, err = f.svc.ToggleSaved(ctx, bob, chili.Slug().String())
	require.NoError(t, err)
	_, err = f.svc.ToggleSaved(ctx, alice, soup.Slug().String())
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteAllOwned(ctx, alice))

	owned, err := f.svc.ListOwned(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, owned)

	all, err := f.svc.Browse(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Tomato Soup", all[0].Attributes().Title)

	// Saved lists keep their now-stale references
	storedBob, err := f.users.GetByID(ctx, bob.ID())
	require.NoError(t, err)
	assert.True(t, storedBob.HasSaved(chili.ID()))

	// The actor's own saved list is untouched by the wipe
	storedAlice, err := f.users.GetByID(ctx, alice.ID())
	require.NoError(t, err)
	assert.True(t, storedAlice.HasSaved(soup.ID()))
}
