package usecase

import (
	"context"

	"mindmaker-backend/internal/auth/identity"
	"mindmaker-backend/internal/document/domain"
	"mindmaker-backend/internal/document/dto"
)

// DocumentUsecase defines the document operations
type DocumentUsecase interface {
	Create(ctx context.Context, who identity.Identity, req *dto.CreateDocumentRequest) (*domain.Document, error)
	Update(ctx context.Context, who identity.Identity, req *dto.UpdateDocumentRequest) (*domain.Document, error)
	List(ctx context.Context, who identity.Identity) ([]*domain.Document, error)
	ListPublic(ctx context.Context) ([]*domain.Document, error)
	Delete(ctx context.Context, who identity.Identity, documentID string) error

	// Open loads a document for who. Private documents fail with
	// ErrDocumentPrivate unless who owns them.
	Open(ctx context.Context, who identity.Identity, documentID string) (*AggregateView, error)
	// OpenForCard opens the document that owns cardID.
	OpenForCard(ctx context.Context, who identity.Identity, cardID string) (*AggregateView, error)

	DeleteCard(ctx context.Context, who identity.Identity, cardID string) error
	DeleteComment(ctx context.Context, who identity.Identity, commentID string) error
}
