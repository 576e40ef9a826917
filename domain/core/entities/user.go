package entities

import (
	"time"

	"cookbook-backend/domain/core/valueobjects"
	pkgerrors "cookbook-backend/pkg/errors"
)

// RecipeRef is a lightweight reference to a recipe, held in a user's owned
// and saved lists. Equality between references is by recipe identifier, not
// by the reference value.
type RecipeRef struct {
	ID    valueobjects.RecipeID
	Slug  valueobjects.Slug
	Title string
	Image string
}

// User is the entity representing an account. Credential material is an
// opaque hash; verification happens in the account service.
//
// The saved list is the one piece of mutable state with real behavior in the
// system: ToggleSaved flips membership of a recipe reference, and the whole
// user document is persisted afterwards in a single write.
type User struct {
	// Private fields ensure encapsulation
	id           valueobjects.UserID
	username     string
	passwordHash string
	recipes      []RecipeRef
	saved        []RecipeRef
	createdAt    time.Time
}

// NewUser creates a new user with validation
func NewUser(username, passwordHash string) (*User, error) {
	if username == "" {
		return nil, pkgerrors.NewValidationError("username cannot be empty")
	}
	if passwordHash == "" {
		return nil, pkgerrors.NewValidationError("password hash cannot be empty")
	}

	return &User{
		id:           valueobjects.NewUserID(),
		username:     username,
		passwordHash: passwordHash,
		recipes:      []RecipeRef{},
		saved:        []RecipeRef{},
		createdAt:    time.Now(),
	}, nil
}

// ReconstructUser reconstructs a user from repository data with preserved state
func ReconstructUser(
	id valueobjects.UserID,
	username string,
	passwordHash string,
	recipes []RecipeRef,
	saved []RecipeRef,
	createdAt time.Time,
) *User {
	if recipes == nil {
		recipes = []RecipeRef{}
	}
	if saved == nil {
		saved = []RecipeRef{}
	}
	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		recipes:      recipes,
		saved:        saved,
		createdAt:    createdAt,
	}
}

// ID returns the user's identifier
func (u *User) ID() valueobjects.UserID { return u.id }

// Username returns the unique username
func (u *User) Username() string { return u.username }

// PasswordHash returns the stored credential material
func (u *User) PasswordHash() string { return u.passwordHash }

// Recipes returns the references to recipes the user owns, in creation order
func (u *User) Recipes() []RecipeRef { return u.recipes }

// Saved returns the saved-recipe references in the order they were saved
func (u *User) Saved() []RecipeRef { return u.saved }

// CreatedAt returns when the account was created
func (u *User) CreatedAt() time.Time { return u.createdAt }

// AddRecipe appends a reference to a recipe the user created
func (u *User) AddRecipe(ref RecipeRef) {
	u.recipes = append(u.recipes, ref)
}

// HasSaved reports whether a recipe with the given identifier is in the
// saved list. Membership is decided by identifier equality.
func (u *User) HasSaved(id valueobjects.RecipeID) bool {
	for _, ref := range u.saved {
		if ref.ID.Equals(id) {
			return true
		}
	}
	return false
}

// ToggleSaved flips membership of the given recipe in the saved list and
// returns true when the recipe is saved afterwards. When the recipe is
// already present, every entry with its identifier is removed, so a list
// that somehow accumulated duplicates collapses back to absent.
func (u *User) ToggleSaved(ref RecipeRef) bool {
	if u.HasSaved(ref.ID) {
		kept := u.saved[:0]
		for _, r := range u.saved {
			if !r.ID.Equals(ref.ID) {
				kept = append(kept, r)
			}
		}
		u.saved = kept
		return false
	}
	u.saved = append(u.saved, ref)
	return true
}
