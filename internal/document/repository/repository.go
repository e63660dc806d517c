package repository

import (
	"context"

	"mindmaker-backend/internal/document/domain"
)

// DocumentRepository persists documents. Lookups return (nil, nil) when nothing
// matches; owner-scoped writes filter on both id and user_id.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	FindByID(ctx context.Context, id string) (*domain.Document, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Document, error)
	ListPublic(ctx context.Context) ([]*domain.Document, error)
	// UpdateOwned applies fields to the row matching id and userID and returns
	// the updated row, or nil when no row matched.
	UpdateOwned(ctx context.Context, id, userID string, fields map[string]interface{}) (*domain.Document, error)
	// DeleteOwned removes the document with its cards and their comments.
	DeleteOwned(ctx context.Context, id, userID string) (bool, error)
}

// CardRepository persists cards.
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	FindByID(ctx context.Context, id string) (*domain.Card, error)
	// ListByDocument returns the document's cards oldest first.
	ListByDocument(ctx context.Context, documentID string) ([]domain.Card, error)
	// MaxPosition is the highest position in the (document, column) pair, 0 if empty.
	MaxPosition(ctx context.Context, documentID, columnID string) (int, error)
	// Delete removes the card and its comments.
	Delete(ctx context.Context, id string) error
}

// CommentRepository persists comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	// ListByCards returns comments of the given cards oldest first.
	ListByCards(ctx context.Context, cardIDs []string) ([]domain.Comment, error)
	DeleteOwned(ctx context.Context, id, userID string) (bool, error)
}
