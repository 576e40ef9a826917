package valueobjects

import (
	"errors"

	goslug "github.com/gosimple/slug"
)

// Slug is a value object for the URL-safe identifier derived from a recipe
// title. A slug is assigned once at creation and never regenerated on edit.
type Slug struct {
	value string
}

// DeriveSlug builds a slug from a recipe title. Derivation is deterministic:
// the same title always yields the same slug.
func DeriveSlug(title string) (Slug, error) {
	s := goslug.Make(title)
	if s == "" {
		return Slug{}, errors.New("title does not contain sluggable characters")
	}
	return Slug{value: s}, nil
}

// NewSlugFromString creates a Slug from an already-derived value, as read
// back from persistence or a request path.
func NewSlugFromString(s string) (Slug, error) {
	if s == "" {
		return Slug{}, errors.New("slug cannot be empty")
	}
	if !goslug.IsSlug(s) {
		return Slug{}, errors.New("slug contains invalid characters")
	}
	return Slug{value: s}, nil
}

// WithSuffix returns a new Slug with a discriminator appended, used when the
// derived slug is already taken by another recipe.
func (s Slug) WithSuffix(suffix string) Slug {
	return Slug{value: s.value + "-" + suffix}
}

// String returns the string representation of the Slug
func (s Slug) String() string {
	return s.value
}

// Equals checks if two Slugs are equal
func (s Slug) Equals(other Slug) bool {
	return s.value == other.value
}

// IsZero checks if the Slug is the zero value
func (s Slug) IsZero() bool {
	return s.value == ""
}
