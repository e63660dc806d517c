package usecase

import (
	"context"
	"strings"
	"time"

	"mindmaker-backend/internal/auth/identity"
	"mindmaker-backend/internal/board"
	"mindmaker-backend/internal/document/domain"
	"mindmaker-backend/internal/document/dto"
	"mindmaker-backend/internal/document/repository"
)

type aggregateDeps struct {
	docs     repository.DocumentRepository
	cards    repository.CardRepository
	comments repository.CommentRepository
	notifier Notifier
	now      func() time.Time
}

// documentUsecase implements DocumentUsecase interface
type documentUsecase struct {
	deps     aggregateDeps
	sessions *identity.Sessions
}

// NewDocumentUsecase creates a new instance of documentUsecase. Views opened for
// the same user share that user's identity store from sessions; with nil
// sessions every view gets its own. A nil notifier drops failure notifications.
func NewDocumentUsecase(docs repository.DocumentRepository, cards repository.CardRepository, comments repository.CommentRepository, sessions *identity.Sessions, notifier Notifier) DocumentUsecase {
	return &documentUsecase{
		sessions: sessions,
		deps: aggregateDeps{
			docs:     docs,
			cards:    cards,
			comments: comments,
			notifier: notifier,
			now:      time.Now,
		},
	}
}

func (u *documentUsecase) Create(ctx context.Context, who identity.Identity, req *dto.CreateDocumentRequest) (*domain.Document, error) {
	if !who.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}

	kind, err := board.ParseKind(req.Template)
	if err != nil {
		return nil, err
	}

	status := domain.StatusPublic
	if req.Status != "" {
		status = domain.Status(req.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}

	doc := &domain.Document{
		UserID:      who.UserID,
		Template:    kind.String(),
		Title:       title,
		Status:      status,
		Description: strings.TrimSpace(req.Description),
	}
	if err := u.deps.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (u *documentUsecase) Update(ctx context.Context, who identity.Identity, req *dto.UpdateDocumentRequest) (*domain.Document, error) {
	if !who.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	fields := map[string]interface{}{}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		fields["status"] = status
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrEmptyTitle
		}
		fields["title"] = title
	}

	if len(fields) == 0 {
		existing, err := u.deps.docs.FindByID(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		if existing == nil || !existing.IsOwnedBy(who.UserID) {
			return nil, domain.ErrDocumentNotFound
		}
		return existing, nil
	}

	updated, err := u.deps.docs.UpdateOwned(ctx, req.ID, who.UserID, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrDocumentNotFound
	}
	return updated, nil
}

func (u *documentUsecase) List(ctx context.Context, who identity.Identity) ([]*domain.Document, error) {
	if !who.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	return u.deps.docs.ListByUser(ctx, who.UserID)
}

func (u *documentUsecase) ListPublic(ctx context.Context) ([]*domain.Document, error) {
	return u.deps.docs.ListPublic(ctx)
}

func (u *documentUsecase) Delete(ctx context.Context, who identity.Identity, documentID string) error {
	if !who.Authenticated() {
		return domain.ErrUnauthenticated
	}

	deleted, err := u.deps.docs.DeleteOwned(ctx, documentID, who.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (u *documentUsecase) Open(ctx context.Context, who identity.Identity, documentID string) (*AggregateView, error) {
	ids, release := u.identityStore(who)
	view, err := openAggregate(ctx, u.deps, ids, documentID)
	if err != nil {
		release()
		return nil, err
	}
	view.release = release
	return view, nil
}

func (u *documentUsecase) identityStore(who identity.Identity) (*identity.Store, func()) {
	if u.sessions == nil {
		return identity.NewStore(who), func() {}
	}
	return u.sessions.Acquire(who)
}

func (u *documentUsecase) OpenForCard(ctx context.Context, who identity.Identity, cardID string) (*AggregateView, error) {
	card, err := u.deps.cards.FindByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, domain.ErrCardNotFound
	}
	return u.Open(ctx, who, card.DocumentID)
}

func (u *documentUsecase) DeleteCard(ctx context.Context, who identity.Identity, cardID string) error {
	if !who.Authenticated() {
		return domain.ErrUnauthenticated
	}

	card, err := u.deps.cards.FindByID(ctx, cardID)
	if err != nil {
		return err
	}
	if card == nil {
		return domain.ErrCardNotFound
	}

	doc, err := u.deps.docs.FindByID(ctx, card.DocumentID)
	if err != nil {
		return err
	}
	if doc == nil || !doc.IsOwnedBy(who.UserID) {
		return domain.ErrForbidden
	}

	return u.deps.cards.Delete(ctx, cardID)
}

func (u *documentUsecase) DeleteComment(ctx context.Context, who identity.Identity, commentID string) error {
	if !who.Authenticated() {
		return domain.ErrUnauthenticated
	}

	deleted, err := u.deps.comments.DeleteOwned(ctx, commentID, who.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrCommentNotFound
	}
	return nil
}
