package repository

import (
	"context"
	"time"

	"mindmaker-backend/internal/blog/domain"
)

// PostRepository defines the blog post storage operations
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// List returns every post, newest first.
	List(ctx context.Context) ([]*domain.Post, error)
	ListPublished(ctx context.Context) ([]*domain.Post, error)
	// SetPublished returns false when no post has the id.
	SetPublished(ctx context.Context, id string, published bool, publishedAt *time.Time) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// RoleRepository resolves the roles granted to a user
type RoleRepository interface {
	RoleNames(ctx context.Context, userID string) ([]string, error)
}
