package memory

import (
	"context"
	"sync"

	"cookbook-backend/application/ports"
	"cookbook-backend/domain/core/entities"
	"cookbook-backend/domain/core/valueobjects"
)

// CommentRepository is an in-memory implementation of ports.CommentRepository
type CommentRepository struct {
	mu       sync.RWMutex
	byRecipe map[string][]*entities.Comment
}

// NewCommentRepository creates an empty in-memory comment repository
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		byRecipe: make(map[string][]*entities.Comment),
	}
}

var _ ports.CommentRepository = (*CommentRepository)(nil)

// Save persists a comment in posting order
func (r *CommentRepository) Save(ctx context.Context, comment *entities.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := comment.Recipe().String()
	r.byRecipe[key] = append(r.byRecipe[key], cloneComment(comment))
	return nil
}

// ListByRecipe retrieves the comments on a recipe in posting order
func (r *CommentRepository) ListByRecipe(ctx context.Context, recipe valueobjects.RecipeID) ([]*entities.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.byRecipe[recipe.String()]
	comments := make([]*entities.Comment, 0, len(stored))
	for _, c := range stored {
		comments = append(comments, cloneComment(c))
	}
	return comments, nil
}

func cloneComment(c *entities.Comment) *entities.Comment {
	return entities.ReconstructComment(c.ID(), c.Author(), c.Recipe(), c.Body(), c.CreatedAt())
}
