// Package repotest provides in-memory document, card and comment repositories
// for tests of the layers above the database.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"mindmaker-backend/internal/document/domain"
	"mindmaker-backend/internal/document/repository"
)

// Store backs the in-memory repositories.
type Store struct {
	mu       sync.Mutex
	seq      int
	docs     map[string]domain.Document
	cards    []domain.Card
	comments []domain.Comment

	commentCreates int
	listCardsErr   error
	// maxBarrier, when set, holds every MaxPosition read until all expected
	// readers have read.
	maxBarrier *sync.WaitGroup
}

func NewStore() *Store {
	return &Store{docs: map[string]domain.Document{}}
}

// Repositories returns the three repositories sharing s.
func (s *Store) Repositories() (repository.DocumentRepository, repository.CardRepository, repository.CommentRepository) {
	return documents{s}, cards{s}, comments{s}
}

func (s *Store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *Store) AddDocument(doc domain.Document) domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID == "" {
		doc.ID = s.nextID("doc")
	}
	s.docs[doc.ID] = doc
	return doc
}

func (s *Store) AddCard(card domain.Card) domain.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	if card.ID == "" {
		card.ID = s.nextID("card")
	}
	s.cards = append(s.cards, card)
	return card
}

func (s *Store) AddComment(comment domain.Comment) domain.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if comment.ID == "" {
		comment.ID = s.nextID("comment")
	}
	s.comments = append(s.comments, comment)
	return comment
}

func (s *Store) Document(id string) (domain.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	return doc, ok
}

func (s *Store) DocumentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

func (s *Store) CardCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

func (s *Store) CommentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments)
}

// CommentCreates counts calls to the comment repository's Create.
func (s *Store) CommentCreates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commentCreates
}

// FailListCards makes every later ListByDocument return err; nil restores it.
func (s *Store) FailListCards(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCardsErr = err
}

// HoldMaxPosition makes MaxPosition wait until readers calls have all read, so
// that they observe the same maximum.
func (s *Store) HoldMaxPosition(readers int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxBarrier = &sync.WaitGroup{}
	s.maxBarrier.Add(readers)
}

type documents struct{ s *Store }

func (f documents) Create(_ context.Context, doc *domain.Document) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	doc.ID = f.s.nextID("doc")
	if doc.Status == "" {
		doc.Status = domain.StatusPublic
	}
	doc.CreatedAt = time.Now()
	f.s.docs[doc.ID] = *doc
	return nil
}

func (f documents) FindByID(_ context.Context, id string) (*domain.Document, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	doc, ok := f.s.docs[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (f documents) ListByUser(_ context.Context, userID string) ([]*domain.Document, error) {
	return f.filter(func(d domain.Document) bool { return d.UserID == userID }), nil
}

func (f documents) ListPublic(_ context.Context) ([]*domain.Document, error) {
	return f.filter(func(d domain.Document) bool { return d.Status == domain.StatusPublic }), nil
}

func (f documents) filter(keep func(domain.Document) bool) []*domain.Document {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*domain.Document
	for _, d := range f.s.docs {
		if keep(d) {
			d := d
			out = append(out, &d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f documents) UpdateOwned(_ context.Context, id, userID string, fields map[string]interface{}) (*domain.Document, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	doc, ok := f.s.docs[id]
	if !ok || doc.UserID != userID {
		return nil, nil
	}
	if status, ok := fields["status"].(domain.Status); ok {
		doc.Status = status
	}
	if title, ok := fields["title"].(string); ok {
		doc.Title = title
	}
	doc.UpdatedAt = time.Now()
	f.s.docs[id] = doc
	return &doc, nil
}

func (f documents) DeleteOwned(_ context.Context, id, userID string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	doc, ok := f.s.docs[id]
	if !ok || doc.UserID != userID {
		return false, nil
	}
	delete(f.s.docs, id)
	kept := f.s.cards[:0]
	for _, c := range f.s.cards {
		if c.DocumentID != id {
			kept = append(kept, c)
		}
	}
	f.s.cards = kept
	return true, nil
}

type cards struct{ s *Store }

func (f cards) Create(_ context.Context, card *domain.Card) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	card.ID = f.s.nextID("card")
	card.CreatedAt = time.Now()
	f.s.cards = append(f.s.cards, *card)
	return nil
}

func (f cards) FindByID(_ context.Context, id string) (*domain.Card, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.cards {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (f cards) ListByDocument(_ context.Context, documentID string) ([]domain.Card, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.listCardsErr != nil {
		return nil, f.s.listCardsErr
	}
	var out []domain.Card
	for _, c := range f.s.cards {
		if c.DocumentID == documentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f cards) MaxPosition(_ context.Context, documentID, columnID string) (int, error) {
	f.s.mu.Lock()
	highest := 0
	for _, c := range f.s.cards {
		if c.DocumentID == documentID && c.ColumnID == columnID && c.Position > highest {
			highest = c.Position
		}
	}
	barrier := f.s.maxBarrier
	f.s.mu.Unlock()

	if barrier != nil {
		barrier.Done()
		barrier.Wait()
	}
	return highest, nil
}

func (f cards) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i, c := range f.s.cards {
		if c.ID == id {
			f.s.cards = append(f.s.cards[:i], f.s.cards[i+1:]...)
			break
		}
	}
	return nil
}

type comments struct{ s *Store }

func (f comments) Create(_ context.Context, comment *domain.Comment) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.commentCreates++
	comment.ID = f.s.nextID("comment")
	f.s.comments = append(f.s.comments, *comment)
	return nil
}

func (f comments) ListByCards(_ context.Context, cardIDs []string) ([]domain.Comment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	wanted := make(map[string]bool, len(cardIDs))
	for _, id := range cardIDs {
		wanted[id] = true
	}
	var out []domain.Comment
	for _, c := range f.s.comments {
		if wanted[c.CardID] {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f comments) DeleteOwned(_ context.Context, id, userID string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i, c := range f.s.comments {
		if c.ID == id && c.UserID == userID {
			f.s.comments = append(f.s.comments[:i], f.s.comments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
