package services

import (
	"context"

	"cookbook-backend/application/ports"
	"cookbook-backend/domain/core/entities"
	"cookbook-backend/pkg/auth"
	pkgerrors "cookbook-backend/pkg/errors"

	"go.uber.org/zap"
)

// AccountService handles registration and credential verification. Password
// hashes never leave this service.
type AccountService struct {
	userRepo ports.UserRepository
	logger   *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(userRepo ports.UserRepository, logger *zap.Logger) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register creates a new account. Returns a conflict error when the username
// is already taken; the caller turns that into the registration flash flag.
func (s *AccountService) Register(ctx context.Context, username, password string) (*entities.User, error) {
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, pkgerrors.NewConflictError("username already in use")
	} else if !pkgerrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, pkgerrors.NewInternalError("hash password").WithCause(err)
	}

	user, err := entities.NewUser(username, hash)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Registered user",
		zap.String("userID", user.ID().String()),
		zap.String("username", username),
	)
	return user, nil
}

// Authenticate verifies a username/password pair. Both an unknown username
// and a wrong password produce the same unauthorized error, so the login
// form cannot be used to probe for accounts.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*entities.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.NewUnauthorizedError("incorrect username or password")
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash(), password) {
		return nil, pkgerrors.NewUnauthorizedError("incorrect username or password")
	}

	return user, nil
}
