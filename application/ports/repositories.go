package ports

import (
	"context"

	"cookbook-backend/domain/core/entities"
	"cookbook-backend/domain/core/valueobjects"
)

// UserRepository defines the interface for user persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type UserRepository interface {
	// Save persists a user (create or update). The whole document is written
	// in one operation; saved-list consistency relies on that.
	Save(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by identifier
	GetByID(ctx context.Context, id valueobjects.UserID) (*entities.User, error)

	// GetByUsername retrieves a user by unique username
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
}

// RecipeRepository defines the interface for recipe persistence
type RecipeRepository interface {
	// Save persists a recipe (create or update)
	Save(ctx context.Context, recipe *entities.Recipe) error

	// GetBySlug retrieves a recipe by its slug
	GetBySlug(ctx context.Context, slug valueobjects.Slug) (*entities.Recipe, error)

	// ListAll retrieves every recipe, newest first
	ListAll(ctx context.Context) ([]*entities.Recipe, error)

	// ListByOwner retrieves all recipes owned by a user, newest first
	ListByOwner(ctx context.Context, owner valueobjects.UserID) ([]*entities.Recipe, error)

	// Delete removes a single recipe
	Delete(ctx context.Context, owner valueobjects.UserID, id valueobjects.RecipeID) error

	// DeleteByOwner removes every recipe owned by a user
	DeleteByOwner(ctx context.Context, owner valueobjects.UserID) error
}

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	// Save persists a comment
	Save(ctx context.Context, comment *entities.Comment) error

	// ListByRecipe retrieves the comments on a recipe in posting order
	ListByRecipe(ctx context.Context, recipe valueobjects.RecipeID) ([]*entities.Comment, error)
}
