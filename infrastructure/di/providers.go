package di

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"cookbook-backend/application/ports"
	"cookbook-backend/application/services"
	"cookbook-backend/infrastructure/config"
	"cookbook-backend/infrastructure/persistence/dynamodb"
	"cookbook-backend/infrastructure/persistence/memory"
	"cookbook-backend/infrastructure/storage"
	"cookbook-backend/interfaces/http/rest"
	"cookbook-backend/interfaces/http/rest/handlers"
	"cookbook-backend/interfaces/http/web"
	"cookbook-backend/pkg/auth"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideUserRepository creates a user repository. Development runs against
// the in-memory store so the app works without AWS credentials.
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	if cfg.IsDevelopment() {
		return memory.NewUserRepository()
	}
	return dynamodb.NewUserRepository(client, cfg.DynamoDBTable, cfg.SlugIndexName, logger)
}

// ProvideRecipeRepository creates a recipe repository
func ProvideRecipeRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.RecipeRepository {
	if cfg.IsDevelopment() {
		return memory.NewRecipeRepository()
	}
	return dynamodb.NewRecipeRepository(client, cfg.DynamoDBTable, cfg.SlugIndexName, cfg.FeedIndexName, logger)
}

// ProvideCommentRepository creates a comment repository
func ProvideCommentRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CommentRepository {
	if cfg.IsDevelopment() {
		return memory.NewCommentRepository()
	}
	return dynamodb.NewCommentRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideSessionStore creates the server-side session store
func ProvideSessionStore() auth.SessionStore {
	return memory.NewSessionStore()
}

// ProvideSessionManager ties the session store to the session cookie
func ProvideSessionManager(store auth.SessionStore, cfg *config.Config) *auth.Manager {
	return auth.NewManager(store, cfg.SessionCookie, cfg.IsProduction())
}

// ProvideImageStore creates the local image store, creating its directory
func ProvideImageStore(cfg *config.Config, logger *zap.Logger) (ports.ImageStore, error) {
	return storage.NewLocalImageStore(cfg.ImageDir, logger)
}

// ProvideRenderer parses the embedded page templates
func ProvideRenderer(logger *zap.Logger) (*web.Renderer, error) {
	return web.NewRenderer(logger)
}

// ProvideAccountService creates the account service
func ProvideAccountService(userRepo ports.UserRepository, logger *zap.Logger) *services.AccountService {
	return services.NewAccountService(userRepo, logger)
}

// ProvideRecipeService creates the recipe service
func ProvideRecipeService(userRepo ports.UserRepository, recipeRepo ports.RecipeRepository, logger *zap.Logger) *services.RecipeService {
	return services.NewRecipeService(userRepo, recipeRepo, logger)
}

// ProvideCommentService creates the comment service
func ProvideCommentService(commentRepo ports.CommentRepository, recipeRepo ports.RecipeRepository, logger *zap.Logger) *services.CommentService {
	return services.NewCommentService(commentRepo, recipeRepo, logger)
}

// ProvideAuthHandler creates the auth handler
func ProvideAuthHandler(
	accounts *services.AccountService,
	sessions *auth.Manager,
	renderer *web.Renderer,
	logger *zap.Logger,
) *handlers.AuthHandler {
	return handlers.NewAuthHandler(accounts, sessions, renderer, logger)
}

// ProvideRecipeHandler creates the recipe handler
func ProvideRecipeHandler(
	recipes *services.RecipeService,
	comments *services.CommentService,
	users ports.UserRepository,
	images ports.ImageStore,
	renderer *web.Renderer,
	logger *zap.Logger,
) *handlers.RecipeHandler {
	return handlers.NewRecipeHandler(recipes, comments, users, images, renderer, logger)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	authHandler *handlers.AuthHandler,
	recipeHandler *handlers.RecipeHandler,
	sessions *auth.Manager,
	users ports.UserRepository,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(authHandler, recipeHandler, sessions, users, cfg.ImageDir, logger)
}
