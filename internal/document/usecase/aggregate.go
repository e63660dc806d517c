package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"mindmaker-backend/internal/auth/identity"
	"mindmaker-backend/internal/board"
	"mindmaker-backend/internal/document/domain"
	"mindmaker-backend/internal/document/repository"

	"golang.org/x/sync/errgroup"
)

// reloadTimeout bounds the reload that runs when the owner signs back in.
const reloadTimeout = 10 * time.Second

// Snapshot is the loaded state of one document.
type Snapshot struct {
	Document domain.Document
	Cards    []domain.Card
	Comments []domain.Comment
}

// AggregateView is the handle a page works through: the current snapshot of a
// document, its cards and their comments, plus the mutations that change them.
// Every mutation re-reads canonical state from the store and swaps it in only
// on success; on failure the snapshot is left as it was and the notifier is told.
type AggregateView struct {
	docs     repository.DocumentRepository
	cards    repository.CardRepository
	comments repository.CommentRepository
	identity *identity.Store
	notifier Notifier
	now      func() time.Time

	mu          sync.RWMutex
	snap        Snapshot
	isOwner     bool
	withheld    bool
	unsubscribe func()
	release     func()
}

// openAggregate loads documentID for the current identity of ids. The document
// and its cards are fetched concurrently; comments follow once card ids are known.
func openAggregate(ctx context.Context, deps aggregateDeps, ids *identity.Store, documentID string) (*AggregateView, error) {
	var (
		doc   *domain.Document
		cards []domain.Card
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doc, err = deps.docs.FindByID(gctx, documentID)
		return err
	})
	g.Go(func() error {
		var err error
		cards, err = deps.cards.ListByDocument(gctx, documentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	if doc == nil {
		return nil, domain.ErrDocumentNotFound
	}

	who := ids.Current()
	if doc.Status == domain.StatusPrivate && !doc.IsOwnedBy(who.UserID) {
		return nil, domain.ErrDocumentPrivate
	}

	comments, err := deps.comments.ListByCards(ctx, cardIDs(cards))
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}

	v := &AggregateView{
		docs:     deps.docs,
		cards:    deps.cards,
		comments: deps.comments,
		identity: ids,
		notifier: deps.notifier,
		now:      deps.now,
		snap: Snapshot{
			Document: *doc,
			Cards:    cards,
			Comments: comments,
		},
		isOwner: doc.IsOwnedBy(who.UserID),
	}
	v.unsubscribe = ids.Subscribe(v.onIdentityChange)

	return v, nil
}

// Close detaches the view from its identity store.
func (v *AggregateView) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
	}
	if v.release != nil {
		v.release()
	}
}

// Snapshot returns a copy of the current state.
func (v *AggregateView) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Snapshot{
		Document: v.snap.Document,
		Cards:    append([]domain.Card(nil), v.snap.Cards...),
		Comments: append([]domain.Comment(nil), v.snap.Comments...),
	}
}

func (v *AggregateView) IsOwner() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.isOwner
}

// Render lays out the current snapshot.
func (v *AggregateView) Render(mode board.Mode) board.View {
	s := v.Snapshot()
	return board.Render(s.Document, s.Cards, s.Comments, mode)
}

// Refresh re-reads cards and then their comments.
func (v *AggregateView) Refresh(ctx context.Context) error {
	if err := v.RefreshCards(ctx); err != nil {
		return err
	}
	if err := v.RefreshComments(ctx); err != nil {
		return err
	}

	v.mu.Lock()
	if !v.hiddenLocked() {
		v.withheld = false
	}
	v.mu.Unlock()
	return nil
}

// RefreshCards replaces the cards with a fresh read of the document's cards.
func (v *AggregateView) RefreshCards(ctx context.Context) error {
	docID := v.documentID()

	cards, err := v.cards.ListByDocument(ctx, docID)
	if err != nil {
		return v.fail("refresh cards", err)
	}

	v.mu.Lock()
	if v.hiddenLocked() {
		cards = nil
	}
	v.snap.Cards = cards
	v.mu.Unlock()
	return nil
}

// RefreshComments replaces the comments with those of the current cards.
func (v *AggregateView) RefreshComments(ctx context.Context) error {
	v.mu.RLock()
	ids := cardIDs(v.snap.Cards)
	v.mu.RUnlock()

	comments, err := v.comments.ListByCards(ctx, ids)
	if err != nil {
		return v.fail("refresh comments", err)
	}

	v.mu.Lock()
	if v.hiddenLocked() {
		comments = nil
	}
	v.snap.Comments = comments
	v.mu.Unlock()
	return nil
}

// CreateCard appends a card to columnID at one past the column's highest
// position (1 for an empty column), then re-reads all cards. Only the owner may
// add cards.
func (v *AggregateView) CreateCard(ctx context.Context, columnID, content string) (*domain.Card, error) {
	const action = "create card"

	who := v.identity.Current()
	if !who.Authenticated() {
		return nil, v.fail(action, domain.ErrUnauthenticated)
	}

	v.mu.RLock()
	doc := v.snap.Document
	v.mu.RUnlock()

	if !doc.IsOwnedBy(who.UserID) {
		return nil, v.fail(action, domain.ErrForbidden)
	}

	kind, err := board.ParseKind(doc.Template)
	if err != nil {
		return nil, v.fail(action, err)
	}
	if !kind.Layout().HasColumn(columnID) {
		return nil, v.fail(action, fmt.Errorf("%w: %q", domain.ErrUnknownColumn, columnID))
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, v.fail(action, domain.ErrEmptyContent)
	}

	maxPosition, err := v.cards.MaxPosition(ctx, doc.ID, columnID)
	if err != nil {
		return nil, v.fail(action, err)
	}

	card := &domain.Card{
		DocumentID: doc.ID,
		ColumnID:   columnID,
		Content:    content,
		Position:   maxPosition + 1,
	}
	if err := v.cards.Create(ctx, card); err != nil {
		return nil, v.fail(action, err)
	}

	if err := v.RefreshCards(ctx); err != nil {
		return nil, err
	}

	return card, nil
}

// CreateComment attaches a comment by the current identity to cardID and then
// re-reads the comments of the current cards. Anonymous callers are rejected
// before anything reaches the store.
func (v *AggregateView) CreateComment(ctx context.Context, cardID, content string) (*domain.Comment, error) {
	const action = "create comment"

	who := v.identity.Current()
	if !who.Authenticated() {
		return nil, v.fail(action, domain.ErrUnauthenticated)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, v.fail(action, domain.ErrEmptyContent)
	}

	if !v.hasCard(cardID) {
		return nil, v.fail(action, domain.ErrCardNotFound)
	}

	comment := &domain.Comment{
		CardID:    cardID,
		UserID:    who.UserID,
		Content:   content,
		CreatedAt: v.now().UTC(),
	}
	if err := v.comments.Create(ctx, comment); err != nil {
		return nil, v.fail(action, err)
	}

	if err := v.RefreshComments(ctx); err != nil {
		return nil, err
	}

	return comment, nil
}

// SetStatus changes the visibility. The updated row returned by the store
// replaces the document; a caller who does not own it matches no row and gets
// ErrDocumentNotFound.
func (v *AggregateView) SetStatus(ctx context.Context, status domain.Status) error {
	if !status.Valid() {
		return v.fail("set status", domain.ErrInvalidStatus)
	}
	return v.update(ctx, "set status", map[string]interface{}{"status": status})
}

// SetTitle renames the document the same way SetStatus changes visibility.
func (v *AggregateView) SetTitle(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return v.fail("set title", domain.ErrEmptyTitle)
	}
	return v.update(ctx, "set title", map[string]interface{}{"title": title})
}

// ToggleStatus flips public and private.
func (v *AggregateView) ToggleStatus(ctx context.Context) error {
	v.mu.RLock()
	next := v.snap.Document.Status.Toggled()
	v.mu.RUnlock()
	return v.SetStatus(ctx, next)
}

func (v *AggregateView) update(ctx context.Context, action string, fields map[string]interface{}) error {
	who := v.identity.Current()
	if !who.Authenticated() {
		return v.fail(action, domain.ErrUnauthenticated)
	}

	updated, err := v.docs.UpdateOwned(ctx, v.documentID(), who.UserID, fields)
	if err != nil {
		return v.fail(action, err)
	}
	if updated == nil {
		return v.fail(action, domain.ErrDocumentNotFound)
	}

	v.mu.Lock()
	v.snap.Document = *updated
	v.mu.Unlock()
	return nil
}

// onIdentityChange recomputes ownership. A private document stops exposing its
// cards and comments to anyone but the owner, and reloads them when the owner
// signs back in.
func (v *AggregateView) onIdentityChange(who identity.Identity) {
	v.mu.Lock()
	v.isOwner = v.snap.Document.IsOwnedBy(who.UserID)
	if v.hiddenLocked() {
		v.snap.Cards = nil
		v.snap.Comments = nil
		v.withheld = true
	}
	reload := v.withheld && v.isOwner
	v.mu.Unlock()

	if !reload {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()
	// a failed reload has already been reported and leaves the view withheld
	_ = v.Refresh(ctx)
}

func (v *AggregateView) hiddenLocked() bool {
	return v.snap.Document.Status == domain.StatusPrivate && !v.isOwner
}

func (v *AggregateView) fail(action string, err error) error {
	if v.notifier == nil || Reported(err) {
		return err
	}
	v.notifier.Notify(action, err)
	return &reportedError{err: err}
}

func (v *AggregateView) documentID() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snap.Document.ID
}

func (v *AggregateView) hasCard(id string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, c := range v.snap.Cards {
		if c.ID == id {
			return true
		}
	}
	return false
}

func cardIDs(cards []domain.Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}
