package domain

import (
	"errors"
	"time"
)

// Status is the visibility of a document.
type Status string

const (
	StatusPublic  Status = "public"
	StatusPrivate Status = "private"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPublic || s == StatusPrivate
}

// Toggled returns the opposite visibility.
func (s Status) Toggled() Status {
	if s == StatusPrivate {
		return StatusPublic
	}
	return StatusPrivate
}

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentPrivate  = errors.New("document is private")
	ErrCardNotFound     = errors.New("card not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrForbidden        = errors.New("not allowed to modify this document")
	ErrUnknownColumn    = errors.New("column does not belong to the document template")
	ErrEmptyContent     = errors.New("content cannot be empty")
	ErrInvalidStatus    = errors.New("status must be public or private")
	ErrEmptyTitle       = errors.New("title cannot be empty")
)

// Document is one business-analysis board built on a template.
type Document struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index;not null"`
	Template    string    `json:"template" gorm:"not null"`
	Title       string    `json:"title" gorm:"not null"`
	Status      Status    `json:"status" gorm:"type:varchar(16);not null;default:'public'"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether userID owns the document. An empty userID never does.
func (d *Document) IsOwnedBy(userID string) bool {
	return userID != "" && d.UserID == userID
}

// Card is a single piece of content in one column of a document.
type Card struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	DocumentID string    `json:"document_id" gorm:"index:idx_cards_document_column;not null"`
	ColumnID   string    `json:"column_id" gorm:"index:idx_cards_document_column;not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	Position   int       `json:"position" gorm:"not null;default:1"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Comment is attached to a card. Comments are listed oldest first.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CardID    string    `json:"card_id" gorm:"index;not null"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}
