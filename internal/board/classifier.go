package board

import (
	"sort"

	"mindmaker-backend/internal/document/domain"
)

// GroupByColumn buckets cards by column id, each bucket sorted by ascending
// position. Equal positions keep their input order. Cards are kept whatever
// their column id; layouts simply never read columns they do not define.
func GroupByColumn(cards []domain.Card) map[string][]domain.Card {
	grouped := make(map[string][]domain.Card)
	for _, card := range cards {
		grouped[card.ColumnID] = append(grouped[card.ColumnID], card)
	}

	for _, bucket := range grouped {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Position < bucket[j].Position
		})
	}

	return grouped
}

// GroupComments buckets comments by card id, oldest first.
func GroupComments(comments []domain.Comment) map[string][]domain.Comment {
	grouped := make(map[string][]domain.Comment)
	for _, comment := range comments {
		grouped[comment.CardID] = append(grouped[comment.CardID], comment)
	}

	for _, bucket := range grouped {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].CreatedAt.Before(bucket[j].CreatedAt)
		})
	}

	return grouped
}
