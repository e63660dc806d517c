package usecase

import (
	"context"
	"io"

	"mindmaker-backend/internal/auth/identity"
	"mindmaker-backend/internal/blog/domain"
	"mindmaker-backend/internal/blog/dto"
)

// ImageKind is the folder an uploaded blog image goes into.
type ImageKind string

const (
	ImageFeatured ImageKind = "featured"
	ImageContent  ImageKind = "content"
)

// Upload is a file received from a client.
type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// BlogUsecase defines the blog operations. Drafts are only visible to their
// author and to admins and editors.
type BlogUsecase interface {
	List(ctx context.Context, who identity.Identity) ([]*domain.Post, error)
	ListPublished(ctx context.Context) ([]*domain.Post, error)
	Get(ctx context.Context, who identity.Identity, slug string) (*domain.Post, error)
	Search(ctx context.Context, who identity.Identity, query string) ([]*domain.Post, error)
	Create(ctx context.Context, who identity.Identity, req *dto.CreatePostRequest) (*domain.Post, error)
	SetPublished(ctx context.Context, who identity.Identity, id string, published bool) (*domain.Post, error)
	Delete(ctx context.Context, who identity.Identity, id string) error
	UploadImage(ctx context.Context, who identity.Identity, kind ImageKind, file Upload) (*dto.ImageUploadResponse, error)
	CanManage(ctx context.Context, who identity.Identity) (bool, error)
}
