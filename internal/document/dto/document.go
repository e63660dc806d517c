package dto

import "mindmaker-backend/internal/document/domain"

type CreateDocumentRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Template    string `json:"template" binding:"required,template"`
	Status      string `json:"status" binding:"omitempty,doc_status"`
}

type UpdateDocumentRequest struct {
	ID     string  `json:"id" binding:"required"`
	Status *string `json:"status" binding:"omitempty,doc_status"`
	Title  *string `json:"title" binding:"omitempty,max=200"`
}

type CreateCardRequest struct {
	ColumnID string `json:"column_id" binding:"required"`
	Content  string `json:"content" binding:"required,max=5000"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// CardResponse is a card with its comments.
type CardResponse struct {
	domain.Card
	Comments []domain.Comment `json:"comments"`
}

// ColumnResponse is one template column with its cards in position order.
type ColumnResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Placeholder string         `json:"placeholder"`
	Cards       []CardResponse `json:"cards"`
}

// AggregateResponse is a document loaded with everything needed to display it.
// Cards and Comments are the raw rows; Columns is the template layout, empty
// when the template is unknown.
type AggregateResponse struct {
	Document    domain.Document  `json:"document"`
	Cards       []domain.Card    `json:"cards"`
	Comments    []domain.Comment `json:"comments"`
	Columns     []ColumnResponse `json:"columns"`
	HiddenCards int              `json:"hidden_cards"`
	IsOwner     bool             `json:"is_owner"`
	RenderError string           `json:"render_error,omitempty"`
}
