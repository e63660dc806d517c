package usecase

import (
	"context"
	"fmt"
	"math"
	"path"
	"sort"
	"strings"
	"time"

	"mindmaker-backend/internal/auth/identity"
	"mindmaker-backend/internal/blog/domain"
	"mindmaker-backend/internal/blog/dto"
	"mindmaker-backend/internal/blog/repository"
	"mindmaker-backend/pkg/fuzzy"
	"mindmaker-backend/pkg/storage"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
)

const wordsPerMinute = 200

// blogUsecase implements BlogUsecase interface
type blogUsecase struct {
	posts  repository.PostRepository
	roles  repository.RoleRepository
	bucket storage.Store
	log    zerolog.Logger
	now    func() time.Time
}

// NewBlogUsecase creates a new instance of blogUsecase
func NewBlogUsecase(posts repository.PostRepository, roles repository.RoleRepository, bucket storage.Store, log zerolog.Logger) BlogUsecase {
	return &blogUsecase{
		posts:  posts,
		roles:  roles,
		bucket: bucket,
		log:    log,
		now:    time.Now,
	}
}

func (u *blogUsecase) CanManage(ctx context.Context, who identity.Identity) (bool, error) {
	if !who.Authenticated() {
		return false, nil
	}
	roles, err := u.roles.RoleNames(ctx, who.UserID)
	if err != nil {
		return false, fmt.Errorf("load roles: %w", err)
	}
	return domain.CanManage(roles), nil
}

func (u *blogUsecase) requireManager(ctx context.Context, who identity.Identity) error {
	if !who.Authenticated() {
		return domain.ErrUnauthenticated
	}
	ok, err := u.CanManage(ctx, who)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

// visibleTo filters out drafts who may not see.
func (u *blogUsecase) visibleTo(ctx context.Context, who identity.Identity, posts []*domain.Post) ([]*domain.Post, error) {
	manager, err := u.CanManage(ctx, who)
	if err != nil {
		return nil, err
	}
	visible := make([]*domain.Post, 0, len(posts))
	for _, p := range posts {
		if p.IsPublished || manager || (who.Authenticated() && p.AuthorID == who.UserID) {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

func (u *blogUsecase) List(ctx context.Context, who identity.Identity) ([]*domain.Post, error) {
	posts, err := u.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	return u.visibleTo(ctx, who, posts)
}

func (u *blogUsecase) ListPublished(ctx context.Context) ([]*domain.Post, error) {
	return u.posts.ListPublished(ctx)
}

func (u *blogUsecase) Get(ctx context.Context, who identity.Identity, postSlug string) (*domain.Post, error) {
	post, err := u.posts.FindBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrPostNotFound
	}
	visible, err := u.visibleTo(ctx, who, []*domain.Post{post})
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

// Search ranks the visible posts by fuzzy relevance of title, tags and excerpt.
// An empty query returns the plain listing.
func (u *blogUsecase) Search(ctx context.Context, who identity.Identity, query string) ([]*domain.Post, error) {
	posts, err := u.List(ctx, who)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return posts, nil
	}

	type scored struct {
		post  *domain.Post
		score float64
	}
	var hits []scored
	for _, p := range posts {
		s := fuzzy.Score(query,
			fuzzy.Field{Text: p.Title, Weight: 3},
			fuzzy.Field{Text: strings.Join(p.Tags, " "), Weight: 2},
			fuzzy.Field{Text: p.Excerpt, Weight: 1},
		)
		if s > 0 {
			hits = append(hits, scored{post: p, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	results := make([]*domain.Post, len(hits))
	for i, h := range hits {
		results[i] = h.post
	}
	return results, nil
}

func (u *blogUsecase) Create(ctx context.Context, who identity.Identity, req *dto.CreatePostRequest) (*domain.Post, error) {
	if !who.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	title := strings.TrimSpace(req.Title)
	postSlug := slug.Make(title)
	if title == "" || postSlug == "" {
		return nil, domain.ErrEmptyTitle
	}

	exists, err := u.posts.SlugExists(ctx, postSlug)
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if exists {
		return nil, domain.ErrSlugTaken
	}

	now := u.now()
	post := &domain.Post{
		Title:           title,
		Slug:            postSlug,
		Content:         req.Content,
		Excerpt:         strings.TrimSpace(req.Excerpt),
		FeaturedImage:   req.FeaturedImage,
		AuthorID:        who.UserID,
		IsPublished:     false,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    domain.StringArray(req.MetaKeywords),
		Tags:            domain.StringArray(req.Tags),
		ReadingTime:     ReadingTime(req.Content),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := u.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	u.log.Info().Str("slug", post.Slug).Str("author_id", who.UserID).Msg("post created")
	return post, nil
}

func (u *blogUsecase) SetPublished(ctx context.Context, who identity.Identity, id string, published bool) (*domain.Post, error) {
	if err := u.requireManager(ctx, who); err != nil {
		return nil, err
	}

	var publishedAt *time.Time
	if published {
		at := u.now().UTC()
		publishedAt = &at
	}

	ok, err := u.posts.SetPublished(ctx, id, published, publishedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	post, err := u.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

// Delete removes the post. Its featured image is removed first on a best
// effort basis: a storage failure is logged and the post is deleted anyway.
func (u *blogUsecase) Delete(ctx context.Context, who identity.Identity, id string) error {
	if err := u.requireManager(ctx, who); err != nil {
		return err
	}

	post, err := u.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return domain.ErrPostNotFound
	}

	if post.FeaturedImage != "" {
		if key, ok := u.bucket.KeyFromURL(post.FeaturedImage); ok {
			if err := u.bucket.Delete(ctx, key); err != nil {
				u.log.Warn().Err(err).Str("key", key).Msg("failed to delete featured image")
			}
		}
	}

	deleted, err := u.posts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrPostNotFound
	}
	return nil
}

// UploadImage stores file under "<kind>/<unix seconds>_<name>" and returns its
// public URL.
func (u *blogUsecase) UploadImage(ctx context.Context, who identity.Identity, kind ImageKind, file Upload) (*dto.ImageUploadResponse, error) {
	if err := u.requireManager(ctx, who); err != nil {
		return nil, err
	}
	if kind != ImageFeatured && kind != ImageContent {
		return nil, domain.ErrInvalidImageKind
	}

	name := path.Base(strings.ReplaceAll(file.Filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "image"
	}
	key := fmt.Sprintf("%s/%d_%s", kind, u.now().Unix(), name)

	if err := u.bucket.Put(ctx, key, file.Body, file.Size, storage.ContentTypeFor(key)); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return &dto.ImageUploadResponse{URL: u.bucket.PublicURL(key), Key: key}, nil
}

// ReadingTime is the number of minutes needed to read content at 200 words per
// minute, rounded up and never less than one.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
