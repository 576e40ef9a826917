package services

import (
	"context"

	"cookbook-backend/application/ports"
	"cookbook-backend/domain/core/entities"

	"go.uber.org/zap"
)

// CommentService handles posting and listing comments. Any authenticated
// user may comment; there is no ownership gate here.
type CommentService struct {
	commentRepo ports.CommentRepository
	recipeRepo  ports.RecipeRepository
	logger      *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo ports.CommentRepository,
	recipeRepo ports.RecipeRepository,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		recipeRepo:  recipeRepo,
		logger:      logger,
	}
}

// Add posts a comment on the recipe with the given slug. The recipe's own
// comment list gets the new comment's reference; updating it is best-effort
// since the comment collection is the source of truth for detail pages.
func (s *CommentService) Add(ctx context.Context, actor *entities.User, rawSlug, body string) (*entities.Comment, error) {
	recipe, err := resolveRecipe(ctx, s.recipeRepo, rawSlug)
	if err != nil {
		return nil, err
	}

	comment, err := entities.NewComment(actor.ID(), recipe.ID(), body)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	recipe.AddComment(comment.ID())
	if err := s.recipeRepo.Save(ctx, recipe); err != nil {
		s.logger.Warn("Comment saved but recipe's comment list was not updated",
			zap.String("commentID", comment.ID().String()),
			zap.String("recipeID", recipe.ID().String()),
			zap.Error(err),
		)
	}

	return comment, nil
}

// ListForRecipe retrieves the comments on a recipe in posting order
func (s *CommentService) ListForRecipe(ctx context.Context, recipe *entities.Recipe) ([]*entities.Comment, error) {
	return s.commentRepo.ListByRecipe(ctx, recipe.ID())
}
