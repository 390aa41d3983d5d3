package app

import (
	"context"

	"review_copilot/internal/domain"
	"review_copilot/internal/search"
)

// topSimilarCount is how many neighbours a similarity lookup returns at most.
const topSimilarCount = 2

type SimilarityService struct {
	q *QueryService
}

func NewSimilarityService(q *QueryService) *SimilarityService {
	return &SimilarityService{q: q}
}

// FindSimilar ranks the whole corpus against the given review's text and
// returns the ids of the most similar reviews, best first, never including
// the query itself. A corpus with fewer than two reviews yields an empty
// result; an unknown id is ErrNotFound.
func (s *SimilarityService) FindSimilar(ctx context.Context, id string) ([]string, error) {
	rs, err := s.q.ListReviews(ctx)
	if err != nil {
		return nil, err
	}
	docs := make([]search.Document, len(rs))
	for i, rv := range rs {
		docs[i] = search.Document{ID: rv.ID, Text: rv.Text}
	}
	ids, err := search.TopSimilar(docs, id, topSimilarCount)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return ids, nil
}
