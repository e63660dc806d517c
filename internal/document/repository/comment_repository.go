package repository

import (
	"context"
	"time"

	"mindmaker-backend/internal/document/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// commentRepository implements CommentRepository interface
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of commentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{
		db: db,
	}
}

// Create keeps a CreatedAt set by the caller.
func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) ListByCards(ctx context.Context, cardIDs []string) ([]domain.Comment, error) {
	if len(cardIDs) == 0 {
		return []domain.Comment{}, nil
	}

	var comments []domain.Comment
	err := r.db.WithContext(ctx).Where("card_id IN ?", cardIDs).Order("created_at ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) DeleteOwned(ctx context.Context, id, userID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Comment{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
