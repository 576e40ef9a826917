package entities

import (
	"time"

	"cookbook-backend/domain/core/valueobjects"
	pkgerrors "cookbook-backend/pkg/errors"
)

// RecipeAttributes holds the editable fields of a recipe. Edit applies a
// full overwrite of these fields; owner and slug are never part of the set.
type RecipeAttributes struct {
	Title           string
	Image           string
	EstimatedTime   int
	NumServings     int
	EstimatedCost   float64
	DifficultyLevel string
	Cuisine         string
	Description     string
	Ingredients     string
	Instructions    string
}

// Recipe is the entity representing a submitted recipe. The owner and slug
// are fixed at creation: the slug is derived from the original title and
// survives later title edits, and edits cannot rebind ownership.
type Recipe struct {
	id        valueobjects.RecipeID
	owner     valueobjects.UserID
	slug      valueobjects.Slug
	attrs     RecipeAttributes
	comments  []valueobjects.CommentID
	createdAt time.Time
}

// NewRecipe creates a new recipe owned by the given user
func NewRecipe(owner valueobjects.UserID, slug valueobjects.Slug, attrs RecipeAttributes) (*Recipe, error) {
	if owner.IsZero() {
		return nil, pkgerrors.NewValidationError("owner cannot be empty")
	}
	if slug.IsZero() {
		return nil, pkgerrors.NewValidationError("slug cannot be empty")
	}
	if attrs.Title == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}

	return &Recipe{
		id:        valueobjects.NewRecipeID(),
		owner:     owner,
		slug:      slug,
		attrs:     attrs,
		comments:  []valueobjects.CommentID{},
		createdAt: time.Now(),
	}, nil
}

// ReconstructRecipe reconstructs a recipe from repository data
func ReconstructRecipe(
	id valueobjects.RecipeID,
	owner valueobjects.UserID,
	slug valueobjects.Slug,
	attrs RecipeAttributes,
	comments []valueobjects.CommentID,
	createdAt time.Time,
) *Recipe {
	if comments == nil {
		comments = []valueobjects.CommentID{}
	}
	return &Recipe{
		id:        id,
		owner:     owner,
		slug:      slug,
		attrs:     attrs,
		comments:  comments,
		createdAt: createdAt,
	}
}

// ID returns the recipe's identifier
func (r *Recipe) ID() valueobjects.RecipeID { return r.id }

// Owner returns the identifier of the user who created the recipe
func (r *Recipe) Owner() valueobjects.UserID { return r.owner }

// Slug returns the URL-safe identifier assigned at creation
func (r *Recipe) Slug() valueobjects.Slug { return r.slug }

// Attributes returns the current editable fields
func (r *Recipe) Attributes() RecipeAttributes { return r.attrs }

// Comments returns the identifiers of comments attached to the recipe
func (r *Recipe) Comments() []valueobjects.CommentID { return r.comments }

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time { return r.createdAt }

// IsOwnedBy reports whether the given user owns this recipe
func (r *Recipe) IsOwnedBy(userID valueobjects.UserID) bool {
	return r.owner.Equals(userID)
}

// ApplyEdit overwrites the editable fields. The image is only replaced when
// the update carries a new one; slug and owner are untouched.
func (r *Recipe) ApplyEdit(attrs RecipeAttributes) error {
	if attrs.Title == "" {
		return pkgerrors.NewValidationError("title cannot be empty")
	}
	if attrs.Image == "" {
		attrs.Image = r.attrs.Image
	}
	r.attrs = attrs
	return nil
}

// AddComment appends a comment reference to the recipe's comment list
func (r *Recipe) AddComment(id valueobjects.CommentID) {
	r.comments = append(r.comments, id)
}

// Ref returns the lightweight reference used in user owned/saved lists
func (r *Recipe) Ref() RecipeRef {
	return RecipeRef{
		ID:    r.id,
		Slug:  r.slug,
		Title: r.attrs.Title,
		Image: r.attrs.Image,
	}
}
