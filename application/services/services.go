// Package services contains the application services sitting between the
// HTTP handlers and the repository ports.
package services

import (
	"context"

	"cookbook-backend/application/ports"
	"cookbook-backend/domain/core/entities"
	"cookbook-backend/domain/core/valueobjects"
	pkgerrors "cookbook-backend/pkg/errors"
)

// resolveRecipe turns a request-path slug into a recipe, folding slug parse
// failures into the same not-found result as a lookup miss.
func resolveRecipe(ctx context.Context, repo ports.RecipeRepository, rawSlug string) (*entities.Recipe, error) {
	slug, err := valueobjects.NewSlugFromString(rawSlug)
	if err != nil {
		return nil, pkgerrors.NewNotFoundError("recipe")
	}
	return repo.GetBySlug(ctx, slug)
}
