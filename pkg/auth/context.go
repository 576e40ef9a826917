package auth

import (
	"context"

	"cookbook-backend/domain/core/entities"
	pkgerrors "cookbook-backend/pkg/errors"
)

type contextKey string

const userContextKey contextKey = "authenticatedUser"

// WithUser stores the authenticated user on the request context
func WithUser(ctx context.Context, user *entities.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the authenticated user placed on the context by
// the auth middleware
func UserFromContext(ctx context.Context) (*entities.User, error) {
	user, ok := ctx.Value(userContextKey).(*entities.User)
	if !ok || user == nil {
		return nil, pkgerrors.NewUnauthorizedError("no authenticated user in context")
	}
	return user, nil
}
