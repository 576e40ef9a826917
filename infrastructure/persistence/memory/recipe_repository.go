package memory

import (
	"context"
	"sort"
	"sync"

	"cookbook-backend/application/ports"
	"cookbook-backend/domain/core/entities"
	"cookbook-backend/domain/core/valueobjects"
	pkgerrors "cookbook-backend/pkg/errors"
)

// RecipeRepository is an in-memory implementation of ports.RecipeRepository
type RecipeRepository struct {
	mu     sync.RWMutex
	byID   map[string]*entities.Recipe
	bySlug map[string]string
}

// NewRecipeRepository creates an empty in-memory recipe repository
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{
		byID:   make(map[string]*entities.Recipe),
		bySlug: make(map[string]string),
	}
}

var _ ports.RecipeRepository = (*RecipeRepository)(nil)

// Save persists a snapshot of the recipe
func (r *RecipeRepository) Save(ctx context.Context, recipe *entities.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[recipe.ID().String()] = cloneRecipe(recipe)
	r.bySlug[recipe.Slug().String()] = recipe.ID().String()
	return nil
}

// GetBySlug retrieves a recipe by its slug
func (r *RecipeRepository) GetBySlug(ctx context.Context, slug valueobjects.Slug) (*entities.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySlug[slug.String()]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("recipe")
	}
	return cloneRecipe(r.byID[id]), nil
}

// ListAll retrieves every recipe, newest first
func (r *RecipeRepository) ListAll(ctx context.Context) ([]*entities.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipes := make([]*entities.Recipe, 0, len(r.byID))
	for _, recipe := range r.byID {
		recipes = append(recipes, cloneRecipe(recipe))
	}
	sortNewestFirst(recipes)
	return recipes, nil
}

// ListByOwner retrieves all recipes owned by a user, newest first
func (r *RecipeRepository) ListByOwner(ctx context.Context, owner valueobjects.UserID) ([]*entities.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var recipes []*entities.Recipe
	for _, recipe := range r.byID {
		if recipe.IsOwnedBy(owner) {
			recipes = append(recipes, cloneRecipe(recipe))
		}
	}
	sortNewestFirst(recipes)
	return recipes, nil
}

// Delete removes a single recipe
func (r *RecipeRepository) Delete(ctx context.Context, owner valueobjects.UserID, id valueobjects.RecipeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recipe, ok := r.byID[id.String()]
	if !ok {
		return pkgerrors.NewNotFoundError("recipe")
	}
	delete(r.bySlug, recipe.Slug().String())
	delete(r.byID, id.String())
	return nil
}

// DeleteByOwner removes every recipe owned by a user
func (r *RecipeRepository) DeleteByOwner(ctx context.Context, owner valueobjects.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, recipe := range r.byID {
		if recipe.IsOwnedBy(owner) {
			delete(r.bySlug, recipe.Slug().String())
			delete(r.byID, id)
		}
	}
	return nil
}

func sortNewestFirst(recipes []*entities.Recipe) {
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].CreatedAt().After(recipes[j].CreatedAt())
	})
}

func cloneRecipe(rec *entities.Recipe) *entities.Recipe {
	return entities.ReconstructRecipe(
		rec.ID(),
		rec.Owner(),
		rec.Slug(),
		rec.Attributes(),
		append([]valueobjects.CommentID{}, rec.Comments()...),
		rec.CreatedAt(),
	)
}
