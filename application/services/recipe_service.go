package services

import (
	"context"
	"strings"

	"cookbook-backend/application/ports"
	"cookbook-backend/domain/core/entities"
	"cookbook-backend/domain/core/valueobjects"
	pkgerrors "cookbook-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecipeService implements the recipe lifecycle: creation with slug
// assignment, owner-gated edit and delete, the saved-list toggle, and the
// listing views. All mutations go through the acting user so the ownership
// gate sits in one place.
type RecipeService struct {
	userRepo   ports.UserRepository
	recipeRepo ports.RecipeRepository
	logger     *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	userRepo ports.UserRepository,
	recipeRepo ports.RecipeRepository,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
		logger:     logger,
	}
}

// Create persists a new recipe owned by the actor. The slug is assigned here,
// once, from the title. Appending the reference to the actor's owned list is
// best-effort: a failure there leaves the already-persisted recipe in place.
func (s *RecipeService) Create(ctx context.Context, actor *entities.User, attrs entities.RecipeAttributes) (*entities.Recipe, error) {
	slug, err := s.assignSlug(ctx, attrs.Title)
	if err != nil {
		return nil, err
	}

	recipe, err := entities.NewRecipe(actor.ID(), slug, attrs)
	if err != nil {
		return nil, err
	}

	if err := s.recipeRepo.Save(ctx, recipe); err != nil {
		return nil, err
	}

	actor.AddRecipe(recipe.Ref())
	if err := s.userRepo.Save(ctx, actor); err != nil {
		s.logger.Warn("Recipe saved but owner's recipe list was not updated",
			zap.String("recipeID", recipe.ID().String()),
			zap.String("userID", actor.ID().String()),
			zap.Error(err),
		)
	}

	s.logger.Info("Created recipe",
		zap.String("recipeID", recipe.ID().String()),
		zap.String("slug", slug.String()),
		zap.String("userID", actor.ID().String()),
	)
	return recipe, nil
}

// GetBySlug resolves a recipe from a request path slug
func (s *RecipeService) GetBySlug(ctx context.Context, rawSlug string) (*entities.Recipe, error) {
	return resolveRecipe(ctx, s.recipeRepo, rawSlug)
}

// Authorize is the ownership gate for mutating operations. It is read-only:
// a forbidden result is reported, never retried, and nothing is written.
func (s *RecipeService) Authorize(actor *entities.User, recipe *entities.Recipe) error {
	if !recipe.IsOwnedBy(actor.ID()) {
		return pkgerrors.NewForbiddenError("you do not have access to this recipe")
	}
	return nil
}

// Edit applies a full-field overwrite to the actor's recipe. Slug and owner
// survive the edit; the image is only replaced when the update carries one.
func (s *RecipeService) Edit(ctx context.Context, actor *entities.User, rawSlug string, attrs entities.RecipeAttributes) error {
	recipe, err := s.GetBySlug(ctx, rawSlug)
	if err != nil {
		return err
	}
	if err := s.Authorize(actor, recipe); err != nil {
		return err
	}
	if err := recipe.ApplyEdit(attrs); err != nil {
		return err
	}
	return s.recipeRepo.Save(ctx, recipe)
}

// Delete removes the actor's recipe. Comments on it are orphaned and other
// users' saved lists keep their now-stale references.
func (s *RecipeService) Delete(ctx context.Context, actor *entities.User, rawSlug string) error {
	recipe, err := s.GetBySlug(ctx, rawSlug)
	if err != nil {
		return err
	}
	if err := s.Authorize(actor, recipe); err != nil {
		return err
	}
	return s.recipeRepo.Delete(ctx, recipe.Owner(), recipe.ID())
}

// ToggleSaved flips the recipe's membership in the actor's saved list and
// persists the whole user document in one write. Returns whether the recipe
// is saved afterwards.
func (s *RecipeService) ToggleSaved(ctx context.Context, actor *entities.User, rawSlug string) (bool, error) {
	recipe, err := s.GetBySlug(ctx, rawSlug)
	if err != nil {
		return false, err
	}

	saved := actor.ToggleSaved(recipe.Ref())
	if err := s.userRepo.Save(ctx, actor); err != nil {
		return false, err
	}
	return saved, nil
}

// Browse lists every recipe, newest first
func (s *RecipeService) Browse(ctx context.Context) ([]*entities.Recipe, error) {
	return s.recipeRepo.ListAll(ctx)
}

// ListOwned lists the actor's recipes, newest first
func (s *RecipeService) ListOwned(ctx context.Context, actor *entities.User) ([]*entities.Recipe, error) {
	return s.recipeRepo.ListByOwner(ctx, actor.ID())
}

// ListSaved returns the actor's saved references in the order they were
// saved. References may be stale when the underlying recipe was deleted.
func (s *RecipeService) ListSaved(actor *entities.User) []entities.RecipeRef {
	return actor.Saved()
}

// DeleteAllOwned removes every recipe the actor owns in one operation.
func (s *RecipeService) DeleteAllOwned(ctx context.Context, actor *entities.User) error {
	return s.recipeRepo.DeleteByOwner(ctx, actor.ID())
}

// assignSlug derives the slug from the title and probes the repository until
// it finds a free one, disambiguating with a uuid fragment. Derivation is
// deterministic; only collisions get a suffix.
func (s *RecipeService) assignSlug(ctx context.Context, title string) (valueobjects.Slug, error) {
	base, err := valueobjects.DeriveSlug(title)
	if err != nil {
		return valueobjects.Slug{}, pkgerrors.NewValidationError(err.Error())
	}

	candidate := base
	for {
		_, err := s.recipeRepo.GetBySlug(ctx, candidate)
		if pkgerrors.IsNotFound(err) {
			return candidate, nil
		}
		if err != nil {
			return valueobjects.Slug{}, err
		}
		suffix := strings.Split(uuid.New().String(), "-")[0]
		candidate = base.WithSuffix(suffix)
	}
}
