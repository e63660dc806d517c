package repository

import (
	"context"
	"errors"
	"time"

	"mindmaker-backend/internal/document/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// cardRepository implements CardRepository interface
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new instance of cardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{
		db: db,
	}
}

func (r *cardRepository) Create(ctx context.Context, card *domain.Card) error {
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	card.CreatedAt = time.Now()
	card.UpdatedAt = card.CreatedAt
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *cardRepository) FindByID(ctx context.Context, id string) (*domain.Card, error) {
	var card domain.Card
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) ListByDocument(ctx context.Context, documentID string) ([]domain.Card, error) {
	var cards []domain.Card
	err := r.db.WithContext(ctx).Where("document_id = ?", documentID).Order("created_at ASC").Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// MaxPosition reads the current maximum without locking; two concurrent
// callers can observe the same value.
func (r *cardRepository) MaxPosition(ctx context.Context, documentID, columnID string) (int, error) {
	var maxPosition int
	err := r.db.WithContext(ctx).Model(&domain.Card{}).
		Select("COALESCE(MAX(position), 0)").
		Where("document_id = ? AND column_id = ?", documentID, columnID).
		Scan(&maxPosition).Error
	if err != nil {
		return 0, err
	}
	return maxPosition, nil
}

func (r *cardRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Card{}).Error
	})
}
