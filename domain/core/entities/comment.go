package entities

import (
	"time"

	"cookbook-backend/domain/core/valueobjects"
	pkgerrors "cookbook-backend/pkg/errors"
)

// Comment is the entity representing a comment on a recipe. Comments are
// never edited or deleted; deleting a recipe leaves its comments orphaned.
type Comment struct {
	id        valueobjects.CommentID
	author    valueobjects.UserID
	recipe    valueobjects.RecipeID
	body      string
	createdAt time.Time
}

// NewComment creates a new comment with validation
func NewComment(author valueobjects.UserID, recipe valueobjects.RecipeID, body string) (*Comment, error) {
	if author.IsZero() {
		return nil, pkgerrors.NewValidationError("author cannot be empty")
	}
	if recipe.IsZero() {
		return nil, pkgerrors.NewValidationError("recipe cannot be empty")
	}
	if body == "" {
		return nil, pkgerrors.NewValidationError("comment body cannot be empty")
	}

	return &Comment{
		id:        valueobjects.NewCommentID(),
		author:    author,
		recipe:    recipe,
		body:      body,
		createdAt: time.Now(),
	}, nil
}

// ReconstructComment reconstructs a comment from repository data
func ReconstructComment(
	id valueobjects.CommentID,
	author valueobjects.UserID,
	recipe valueobjects.RecipeID,
	body string,
	createdAt time.Time,
) *Comment {
	return &Comment{
		id:        id,
		author:    author,
		recipe:    recipe,
		body:      body,
		createdAt: createdAt,
	}
}

// ID returns the comment's identifier
func (c *Comment) ID() valueobjects.CommentID { return c.id }

// Author returns the identifier of the commenting user
func (c *Comment) Author() valueobjects.UserID { return c.author }

// Recipe returns the identifier of the recipe commented on
func (c *Comment) Recipe() valueobjects.RecipeID { return c.recipe }

// Body returns the comment text
func (c *Comment) Body() string { return c.body }

// CreatedAt returns when the comment was posted
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
