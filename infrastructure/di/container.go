package di

import (
	"go.uber.org/zap"

	"cookbook-backend/application/ports"
	"cookbook-backend/application/services"
	"cookbook-backend/infrastructure/config"
	"cookbook-backend/interfaces/http/rest"
	"cookbook-backend/pkg/auth"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	UserRepo       ports.UserRepository
	RecipeRepo     ports.RecipeRepository
	CommentRepo    ports.CommentRepository
	Sessions       *auth.Manager
	ImageStore     ports.ImageStore
	AccountService *services.AccountService
	RecipeService  *services.RecipeService
	CommentService *services.CommentService
	Router         *rest.Router
}
