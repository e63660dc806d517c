package delivery

import (
	"errors"
	"net/http"

	authDelivery "mindmaker-backend/internal/auth/delivery"
	"mindmaker-backend/internal/board"
	"mindmaker-backend/internal/document/domain"
	"mindmaker-backend/internal/document/dto"
	"mindmaker-backend/internal/document/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type DocumentHandler struct {
	documentUsecase usecase.DocumentUsecase
}

func NewDocumentHandler(documentUsecase usecase.DocumentUsecase) *DocumentHandler {
	RegisterValidators()
	return &DocumentHandler{documentUsecase: documentUsecase}
}

// CreateDocument handles POST /api/documents
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.documentUsecase.Create(c.Request.Context(), authDelivery.IdentityFrom(c), &req)
	if err != nil {
		respondError(c, "create document", err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// UpdateDocument handles PATCH /api/documents
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.documentUsecase.Update(c.Request.Context(), authDelivery.IdentityFrom(c), &req)
	if err != nil {
		respondError(c, "update document", err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// ListDocuments handles GET /api/documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	docs, err := h.documentUsecase.List(c.Request.Context(), authDelivery.IdentityFrom(c))
	if err != nil {
		respondError(c, "list documents", err)
		return
	}

	if docs == nil {
		docs = []*domain.Document{}
	}
	c.JSON(http.StatusOK, docs)
}

// GetDocument handles GET /api/documents/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	view, err := h.documentUsecase.Open(c.Request.Context(), authDelivery.IdentityFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, "open document", err)
		return
	}
	defer view.Close()

	c.JSON(http.StatusOK, NewAggregateResponse(view))
}

// DeleteDocument handles DELETE /api/documents/:id
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	if err := h.documentUsecase.Delete(c.Request.Context(), authDelivery.IdentityFrom(c), c.Param("id")); err != nil {
		respondError(c, "delete document", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}

// CreateCard handles POST /api/documents/:id/cards and answers with the
// refreshed cards of the document.
func (h *DocumentHandler) CreateCard(c *gin.Context) {
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	view, err := h.documentUsecase.Open(ctx, authDelivery.IdentityFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, "open document", err)
		return
	}
	defer view.Close()

	card, err := view.CreateCard(ctx, req.ColumnID, req.Content)
	if err != nil {
		respondError(c, "create card", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"card":  card,
		"cards": nonNilCards(view.Snapshot().Cards),
	})
}

// DeleteCard handles DELETE /api/cards/:id
func (h *DocumentHandler) DeleteCard(c *gin.Context) {
	if err := h.documentUsecase.DeleteCard(c.Request.Context(), authDelivery.IdentityFrom(c), c.Param("id")); err != nil {
		respondError(c, "delete card", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "card deleted"})
}

// CreateComment handles POST /api/cards/:id/comments and answers with the
// refreshed comments of the document's cards.
func (h *DocumentHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	cardID := c.Param("id")
	view, err := h.documentUsecase.OpenForCard(ctx, authDelivery.IdentityFrom(c), cardID)
	if err != nil {
		respondError(c, "open document", err)
		return
	}
	defer view.Close()

	comment, err := view.CreateComment(ctx, cardID, req.Content)
	if err != nil {
		respondError(c, "create comment", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"comment":  comment,
		"comments": nonNilComments(view.Snapshot().Comments),
	})
}

// DeleteComment handles DELETE /api/comments/:id
func (h *DocumentHandler) DeleteComment(c *gin.Context) {
	if err := h.documentUsecase.DeleteComment(c.Request.Context(), authDelivery.IdentityFrom(c), c.Param("id")); err != nil {
		respondError(c, "delete comment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// DocumentPage handles GET /doc/:id with the interactive HTML layout. Requires
// the engine's HTML templates to be board.Templates().
func (h *DocumentHandler) DocumentPage(c *gin.Context) {
	view, err := h.documentUsecase.Open(c.Request.Context(), authDelivery.IdentityFrom(c), c.Param("id"))
	if err != nil {
		status, msg := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Str("component", "document").Msg("open document page failed")
		}
		c.String(status, msg)
		return
	}
	defer view.Close()

	c.HTML(http.StatusOK, "document_page", view.Render(board.ModeInteractive))
}

// NewAggregateResponse flattens an open view into its JSON shape.
func NewAggregateResponse(view *usecase.AggregateView) dto.AggregateResponse {
	snap := view.Snapshot()
	rendered := board.Render(snap.Document, snap.Cards, snap.Comments, board.ModeInteractive)

	resp := dto.AggregateResponse{
		Document:    snap.Document,
		Cards:       nonNilCards(snap.Cards),
		Comments:    nonNilComments(snap.Comments),
		Columns:     make([]dto.ColumnResponse, 0, len(rendered.Columns)),
		HiddenCards: rendered.Hidden,
		IsOwner:     view.IsOwner(),
		RenderError: rendered.ErrorMessage(),
	}
	for _, col := range rendered.Columns {
		cr := dto.ColumnResponse{
			ID:          col.ID,
			Title:       col.Title,
			Placeholder: col.Placeholder,
			Cards:       make([]dto.CardResponse, 0, len(col.Cards)),
		}
		for _, card := range col.Cards {
			cr.Cards = append(cr.Cards, dto.CardResponse{Card: card.Card, Comments: nonNilComments(card.Comments)})
		}
		resp.Columns = append(resp.Columns, cr)
	}
	return resp
}

// respondError maps usecase errors onto HTTP statuses. Unexpected errors are
// hidden behind a generic message and logged unless the view's notifier
// already did.
func respondError(c *gin.Context, action string, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError && !usecase.Reported(err) {
		log.Error().Err(err).Str("component", "document").Str("action", action).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": msg})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrDocumentPrivate):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrDocumentNotFound),
		errors.Is(err, domain.ErrCardNotFound),
		errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, board.ErrUnknownTemplate),
		errors.Is(err, domain.ErrUnknownColumn),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func nonNilCards(cards []domain.Card) []domain.Card {
	if cards == nil {
		return []domain.Card{}
	}
	return cards
}

func nonNilComments(comments []domain.Comment) []domain.Comment {
	if comments == nil {
		return []domain.Comment{}
	}
	return comments
}
