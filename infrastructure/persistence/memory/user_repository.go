package memory

import (
	"context"
	"sync"

	"cookbook-backend/application/ports"
	"cookbook-backend/domain/core/entities"
	"cookbook-backend/domain/core/valueobjects"
	pkgerrors "cookbook-backend/pkg/errors"
)

// UserRepository is an in-memory implementation of ports.UserRepository,
// used by tests and development mode. Documents are stored as snapshots so
// callers never share mutable state with the repository.
type UserRepository struct {
	mu         sync.RWMutex
	byID       map[string]*entities.User
	byUsername map[string]string
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[string]*entities.User),
		byUsername: make(map[string]string),
	}
}

var _ ports.UserRepository = (*UserRepository)(nil)

// Save persists a snapshot of the user
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[user.ID().String()] = cloneUser(user)
	r.byUsername[user.Username()] = user.ID().String()
	return nil
}

// GetByID retrieves a user by identifier
func (r *UserRepository) GetByID(ctx context.Context, id valueobjects.UserID) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id.String()]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("user")
	}
	return cloneUser(user), nil
}

// GetByUsername retrieves a user by unique username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("user")
	}
	return cloneUser(r.byID[id]), nil
}

func cloneUser(u *entities.User) *entities.User {
	return entities.ReconstructUser(
		u.ID(),
		u.Username(),
		u.PasswordHash(),
		append([]entities.RecipeRef{}, u.Recipes()...),
		append([]entities.RecipeRef{}, u.Saved()...),
		u.CreatedAt(),
	)
}
