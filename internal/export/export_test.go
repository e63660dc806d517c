package export

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mindmaker-backend/internal/auth/identity"
	"mindmaker-backend/internal/document/domain"
	"mindmaker-backend/internal/document/repository/repotest"
	"mindmaker-backend/internal/document/usecase"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRasterizer records the page it was asked to capture.
type fakeRasterizer struct {
	page     string
	selector string
	settings Settings
	err      error
}

func (f *fakeRasterizer) Capture(_ context.Context, page []byte, selector string, settings Settings) ([]byte, error) {
	f.page = string(page)
	f.selector = selector
	f.settings = settings
	if f.err != nil {
		return nil, f.err
	}
	return []byte("\x89PNG"), nil
}

func newTestService(r Rasterizer) (*Service, *repotest.Store) {
	s := repotest.NewStore()
	docs, cards, comments := s.Repositories()
	uc := usecase.NewDocumentUsecase(docs, cards, comments, nil, nil)
	return NewService(uc, r, StaticSettings{Width: 1200, Scale: 2}, zerolog.Nop()), s
}

func TestExportRendersExportMode(t *testing.T) {
	r := &fakeRasterizer{}
	svc, s := newTestService(r)
	doc := s.AddDocument(domain.Document{UserID: "owner", Template: "swot", Title: "Coffee shop", Status: domain.StatusPublic})
	s.AddCard(domain.Card{DocumentID: doc.ID, ColumnID: "strengths", Content: "great beans", Position: 1})

	result, err := svc.Export(context.Background(), identity.Anonymous, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coffee shop.png", result.Filename)
	assert.Equal(t, []byte("\x89PNG"), result.PNG)

	assert.Equal(t, ExportSelector, r.selector)
	assert.Equal(t, Settings{Width: 1200, Scale: 2}, r.settings)
	assert.Contains(t, r.page, `id="export-view"`)
	assert.Contains(t, r.page, "width: 1200px")
	assert.Contains(t, r.page, "great beans")
	assert.NotContains(t, r.page, "add-card")
	assert.NotContains(t, r.page, "add-comment")
}

// lateWriter adds a card to the store right after the view is opened, as a
// concurrent editor would.
type lateWriter struct {
	usecase.DocumentUsecase
	store *repotest.Store
	card  domain.Card
}

func (w lateWriter) Open(ctx context.Context, who identity.Identity, documentID string) (*usecase.AggregateView, error) {
	view, err := w.DocumentUsecase.Open(ctx, who, documentID)
	if err == nil {
		w.store.AddCard(w.card)
	}
	return view, err
}

func TestExportSeesCardsAddedAfterOpen(t *testing.T) {
	s := repotest.NewStore()
	docs, cards, comments := s.Repositories()
	doc := s.AddDocument(domain.Document{UserID: "owner", Template: "pestel", Title: "Market", Status: domain.StatusPublic})

	documents := lateWriter{
		DocumentUsecase: usecase.NewDocumentUsecase(docs, cards, comments, nil, nil),
		store:           s,
		card:            domain.Card{DocumentID: doc.ID, ColumnID: "legal", Content: "new regulation", Position: 1},
	}
	r := &fakeRasterizer{}
	svc := NewService(documents, r, StaticSettings{Width: 1200, Scale: 2}, zerolog.Nop())

	_, err := svc.Export(context.Background(), identity.Anonymous, doc.ID)
	require.NoError(t, err)
	assert.Contains(t, r.page, "new regulation")
}

func TestExportCaptureFailure(t *testing.T) {
	r := &fakeRasterizer{err: errors.New("chromium crashed")}
	svc, s := newTestService(r)
	doc := s.AddDocument(domain.Document{UserID: "owner", Template: "swot", Title: "Plan", Status: domain.StatusPublic})

	result, err := svc.Export(context.Background(), identity.Anonymous, doc.ID)
	assert.ErrorIs(t, err, ErrCapture)
	assert.Nil(t, result)
}

func TestExportPrivateDocument(t *testing.T) {
	r := &fakeRasterizer{}
	svc, s := newTestService(r)
	doc := s.AddDocument(domain.Document{UserID: "owner", Template: "swot", Title: "Plan", Status: domain.StatusPrivate})

	_, err := svc.Export(context.Background(), identity.Anonymous, doc.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentPrivate)
	assert.Empty(t, r.page)

	_, err = svc.Export(context.Background(), identity.Identity{UserID: "owner"}, doc.ID)
	assert.NoError(t, err)
}

func TestExportUnknownTemplateShowsError(t *testing.T) {
	r := &fakeRasterizer{}
	svc, s := newTestService(r)
	doc := s.AddDocument(domain.Document{UserID: "owner", Template: "okr", Title: "Goals", Status: domain.StatusPublic})

	_, err := svc.Export(context.Background(), identity.Anonymous, doc.ID)
	require.NoError(t, err)
	assert.Contains(t, r.page, "Unknown template type: okr")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "document-export.png", Filename(""))
	assert.Equal(t, "document-export.png", Filename("   "))
	assert.Equal(t, "Q3 plan.png", Filename(" Q3 plan "))
	name := Filename(`a/b\c"d`)
	assert.False(t, strings.ContainsAny(name, `/\"`))
	assert.Equal(t, "a_b_c_d.png", name)
}
