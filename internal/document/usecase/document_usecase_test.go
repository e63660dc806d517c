package usecase

import (
	"context"
	"errors"
	"testing"

	"mindmaker-backend/internal/auth/identity"
	"mindmaker-backend/internal/board"
	"mindmaker-backend/internal/document/domain"
	"mindmaker-backend/internal/document/dto"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDocument(t *testing.T) {
	uc, s, _ := newTestUsecase()
	ctx := context.Background()

	doc, err := uc.Create(ctx, owner, &dto.CreateDocumentRequest{Title: " Q3 review ", Template: "swot"})
	require.NoError(t, err)
	assert.Equal(t, "Q3 review", doc.Title)
	assert.Equal(t, domain.StatusPublic, doc.Status)
	assert.Equal(t, "owner", doc.UserID)
	stored, ok := s.Document(doc.ID)
	require.True(t, ok)
	assert.Equal(t, "swot", stored.Template)

	private, err := uc.Create(ctx, owner, &dto.CreateDocumentRequest{Title: "Plan", Template: "lean", Status: "private"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPrivate, private.Status)
}

func TestCreateDocumentRejections(t *testing.T) {
	uc, s, _ := newTestUsecase()
	ctx := context.Background()

	_, err := uc.Create(ctx, identity.Anonymous, &dto.CreateDocumentRequest{Title: "x", Template: "swot"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = uc.Create(ctx, owner, &dto.CreateDocumentRequest{Title: "x", Template: "okr"})
	assert.ErrorIs(t, err, board.ErrUnknownTemplate)

	_, err = uc.Create(ctx, owner, &dto.CreateDocumentRequest{Title: "  ", Template: "swot"})
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)

	_, err = uc.Create(ctx, owner, &dto.CreateDocumentRequest{Title: "x", Template: "swot", Status: "draft"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	assert.Zero(t, s.DocumentCount())
}

func TestUpdateDocument(t *testing.T) {
	uc, s, _ := newTestUsecase()
	doc := s.AddDocument(domain.Document{UserID: "owner", Template: "swot", Title: "Old", Status: domain.StatusPublic})
	ctx := context.Background()

	title := "New"
	status := "private"
	updated, err := uc.Update(ctx, owner, &dto.UpdateDocumentRequest{ID: doc.ID, Title: &title, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, domain.StatusPrivate, updated.Status)

	_, err = uc.Update(ctx, stranger, &dto.UpdateDocumentRequest{ID: doc.ID, Title: &title})
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	unchanged, err := uc.Update(ctx, owner, &dto.UpdateDocumentRequest{ID: doc.ID})
	require.NoError(t, err)
	assert.Equal(t, "New", unchanged.Title)

	_, err = uc.Update(ctx, stranger, &dto.UpdateDocumentRequest{ID: doc.ID})
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	bad := "archived"
	_, err = uc.Update(ctx, owner, &dto.UpdateDocumentRequest{ID: doc.ID, Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestListDocuments(t *testing.T) {
	uc, s, _ := newTestUsecase()
	s.AddDocument(domain.Document{UserID: "owner", Template: "swot", Status: domain.StatusPublic})
	s.AddDocument(domain.Document{UserID: "owner", Template: "lean", Status: domain.StatusPrivate})
	s.AddDocument(domain.Document{UserID: "stranger", Template: "pestel", Status: domain.StatusPublic})
	ctx := context.Background()

	mine, err := uc.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	public, err := uc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Len(t, public, 2)

	_, err = uc.List(ctx, identity.Anonymous)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestDeleteDocument(t *testing.T) {
	uc, s, _ := newTestUsecase()
	doc := s.AddDocument(domain.Document{UserID: "owner", Template: "swot", Status: domain.StatusPublic})
	ctx := context.Background()

	assert.ErrorIs(t, uc.Delete(ctx, stranger, doc.ID), domain.ErrDocumentNotFound)
	require.NoError(t, uc.Delete(ctx, owner, doc.ID))

	_, err := uc.Open(ctx, owner, doc.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestDeleteCard(t *testing.T) {
	uc, s, _ := newTestUsecase()
	doc := s.AddDocument(domain.Document{UserID: "owner", Template: "swot", Status: domain.StatusPublic})
	c := s.AddCard(domain.Card{DocumentID: doc.ID, ColumnID: "strengths", Content: "brand", Position: 1})
	ctx := context.Background()

	assert.ErrorIs(t, uc.DeleteCard(ctx, identity.Anonymous, c.ID), domain.ErrUnauthenticated)
	assert.ErrorIs(t, uc.DeleteCard(ctx, stranger, c.ID), domain.ErrForbidden)
	assert.ErrorIs(t, uc.DeleteCard(ctx, owner, "missing"), domain.ErrCardNotFound)

	require.NoError(t, uc.DeleteCard(ctx, owner, c.ID))
	assert.Equal(t, 0, s.CardCount())
}

func TestDeleteCommentOnlyByAuthor(t *testing.T) {
	uc, s, _ := newTestUsecase()
	doc := s.AddDocument(domain.Document{UserID: "owner", Template: "swot", Status: domain.StatusPublic})
	c := s.AddCard(domain.Card{DocumentID: doc.ID, ColumnID: "strengths", Content: "brand", Position: 1})
	s.AddComment(domain.Comment{ID: "m1", CardID: c.ID, UserID: "stranger", Content: "hm"})
	ctx := context.Background()

	assert.ErrorIs(t, uc.DeleteComment(ctx, owner, "m1"), domain.ErrCommentNotFound)
	require.NoError(t, uc.DeleteComment(ctx, stranger, "m1"))
	assert.Zero(t, s.CommentCount())
}

func TestOpenForCard(t *testing.T) {
	uc, s, _ := newTestUsecase()
	doc := s.AddDocument(domain.Document{UserID: "owner", Template: "porters", Status: domain.StatusPublic})
	c := s.AddCard(domain.Card{DocumentID: doc.ID, ColumnID: "competitiveRivalry", Content: "price war", Position: 1})
	ctx := context.Background()

	view, err := uc.OpenForCard(ctx, stranger, c.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, view.Snapshot().Document.ID)

	_, err = uc.OpenForCard(ctx, stranger, "missing")
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestIsUserError(t *testing.T) {
	assert.True(t, isUserError(domain.ErrForbidden))
	assert.True(t, isUserError(errors.Join(errors.New("wrapped"), domain.ErrUnknownColumn)))
	assert.False(t, isUserError(errors.New("connection refused")))

	// LogNotifier must accept both kinds without panicking.
	n := LogNotifier(zerolog.Nop())
	n.Notify("create card", domain.ErrEmptyContent)
	n.Notify("create card", errors.New("boom"))
}
